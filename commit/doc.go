// Package commit parses raw commit messages into structured conventional
// commits.
//
// Parsing is a pure function with no I/O and never fails: messages that do
// not match the conventional-commit grammar are classified as unknown rather
// than rejected, so downstream version resolution can walk arbitrary history.
//
// Example usage:
//
//	c := commit.Parse(sha, "feat(parser)!: drop legacy syntax")
//	c.Type        // commit.TypeFeat
//	c.Scope       // "parser"
//	c.Breaking    // true
package commit
