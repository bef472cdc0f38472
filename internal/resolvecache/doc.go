// Package resolvecache persists identity resolutions keyed by the raw input
// line, backed by SQLite.
//
// The cache is what makes resolution idempotent and crash-safe: a line that
// was resolved once is answered from the cache on every later run, so an
// interrupted run resumes without repeating network calls.
package resolvecache
