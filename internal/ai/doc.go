// Package ai turns a snippet identifier into generated source code by asking a
// hosted model. Each provider adapter makes a single non-streaming request and
// returns the response text unchanged.
package ai
