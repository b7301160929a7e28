// Package installer installs snippet dependencies by running a Node.js package
// manager (npm, pnpm, yarn, or bun) once with every package name as an
// argument, and classifies the outcome.
package installer
