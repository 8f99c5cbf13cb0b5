// Package config loads and validates releaseflow.toml: the tracker and
// forge connections plus the workflow definitions. Credentials are never
// stored in the file; they come from environment variables.
package config
