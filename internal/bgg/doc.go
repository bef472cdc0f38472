// Package bgg provides a client for the BoardGameGeek XML API v2.
//
// Two endpoints are wrapped: search (candidate items by name) and thing (one
// item's full metadata, including the suggested-player-count poll, weight
// statistics, and the primary image URL). The API is rate limited by the
// provider; the client retries 429 and transient transport failures with
// exponential backoff before giving up.
package bgg
