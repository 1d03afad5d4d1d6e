// Package sanitize defangs user-controlled input before it reaches the
// schema validator or the database.
//
// Strings are HTML-entity encoded, optionally stripped of markup tags that
// are not on the configured allow-list, cleared of control bytes and trimmed.
// Maps and slices produced by JSON decoding are cleaned recursively; any
// other value is returned unchanged.
package sanitize
