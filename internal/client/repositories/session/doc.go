// Package session provides the SQLite-backed key/value repository behind
// the client's session storage.
//
// The table is created by the embedded goose migrations (see package
// migrations). Values are stored as text; callers serialize structured
// records (the cached user profile) as JSON themselves.
//
// Delete removes several keys in one transaction, so a session teardown
// never leaves a user record without its token or vice versa.
package session
