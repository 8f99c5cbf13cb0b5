// Package testutil provides shared test fixtures: temporary git
// repositories with scripted commit histories.
package testutil
