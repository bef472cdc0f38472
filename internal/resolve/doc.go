// Package resolve maps free-text game references to BGG numeric identifiers.
//
// A line containing a recognizable BGG URL yields its embedded id directly
// (verified against the thing endpoint). Anything else is cleaned of
// numbering, comments, and qualifiers, then searched. Matching is a fixed
// heuristic: exact case-insensitive equality wins (High confidence), then
// substring containment in either direction (Medium), then the first returned
// result (Low). Failures are recorded as row data, never raised.
//
// Resolutions are cached keyed by the raw input line, so repeated runs answer
// from the cache without network calls.
package resolve
