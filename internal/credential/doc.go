// Package credential resolves the API key used for AI snippet generation.
//
// The key is read from the tool-local config file; on a miss the user is
// prompted once and the answer is persisted in cleartext for later runs. A
// key is never rotated or expired by this package.
package credential
