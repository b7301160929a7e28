// Package materialize produces snippet files in a destination directory,
// either by copying a bundled snippet or by asking an AI backend to write
// one, and then installs the snippet's dependencies.
package materialize
