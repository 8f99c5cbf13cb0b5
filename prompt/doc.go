// Package prompt handles interactive selection. Workflow steps depend on
// the Selector interface so tests can script choices; Terminal is the
// stdin/stdout implementation the CLI uses.
package prompt
