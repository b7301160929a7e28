// Package snippet provides read-only access to the bundled code snippets.
// Each snippet is a single file named <id>.<ext>; the identifier doubles as
// the lookup key into the dependency table.
package snippet
