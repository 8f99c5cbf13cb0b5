// Package release computes what the next release of a project should be.
//
// Compute orchestrates the pure core of the engine: it classifies the
// commits since the last release, resolves the semantic-version bump they
// imply, and renders the changelog entry for the resulting version. The
// only I/O is the read-only GitHistory collaborator; writing tags, files,
// or changelogs is the calling workflow step's responsibility.
//
// A run over commits that warrant no version change is not an error.
// Compute reports it as ErrNoReleaseNeeded so callers can distinguish
// "nothing to do" from failure.
package release
