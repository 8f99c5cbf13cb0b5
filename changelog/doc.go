// Package changelog renders classified commits into a structured,
// human-readable changelog entry for one release version.
//
// Rendering is a pure text-formatting step over immutable inputs: the same
// commits, version, and date always produce byte-identical output. File
// placement is the caller's concern; Prepend is provided as a convenience
// for the common "newest entry first" changelog document layout.
package changelog
