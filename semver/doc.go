// Package semver models semantic versions and the version-bump arithmetic
// used for releases.
//
// Core types:
//   - Version: major.minor.patch plus optional pre-release and metadata
//   - Bump: the ordered magnitude of change (none < patch < minor < major)
//
// Resolve maps a sequence of classified commits onto the single largest
// bump, Apply increments a version by a bump, and NextPrerelease continues
// a labeled pre-release series against the set of already-known versions.
// Everything here is a pure function over value types.
package semver
