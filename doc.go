// Package releaseflow automates developer release workflows. A Workflow is
// an ordered list of Steps from a closed vocabulary: selecting and
// transitioning tracker issues, switching and rebasing branches, bumping
// recorded versions, preparing a release (version bump plus changelog), and
// publishing it. A Runner executes the steps sequentially, threading an
// immutable State value from step to step; the first failure aborts the
// run. Dry-run mode reports what each mutating step would do without doing
// it.
//
// The release arithmetic itself lives in the commit, semver, changelog, and
// release packages; this package wires those to git, trackers, and forges.
package releaseflow
