// Package services provides shared error classification markers and context
// helpers used across pipeline stages.
package services
