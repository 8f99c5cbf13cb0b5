// Package git provides the git operations behind workflow steps: branch
// management, commits, tags, and the release history view that feeds
// version-bump computation.
//
// Core types:
//   - Context: repository handle exposing branch, commit, and tag operations
//   - CommandRunner: interface for executing git commands (with mock for testing)
//   - History: read-only release facts (tags, commits since last release),
//     implementing release.GitHistory
//
// Example usage:
//
//	gitCtx, err := git.NewContext(".")
//	result, err := release.Compute(gitCtx.History(), release.Options{})
package git
