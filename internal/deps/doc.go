// Package deps holds the dependency table: a read-only mapping from snippet
// identifier to the ordered list of npm packages that snippet needs. The
// bundled table is embedded as YAML and validated against a JSON Schema when
// it is first loaded.
package deps
