// Package scaffold generates a new backend project from the embedded Express
// template tree. It powers the "create-project" command: files ending in .tmpl
// are rendered with text/template, everything else is copied verbatim, and a
// .gitignore is generated alongside.
package scaffold
