// Package versionfile reads and writes the project version recorded in
// supported metadata files: Cargo.toml (package.version), pyproject.toml
// (tool.poetry.version), package.json (version), and Chart.yaml (version).
//
// Writes replace only the version value and leave the rest of the file
// untouched, so hand-maintained formatting and comments survive a bump.
package versionfile
