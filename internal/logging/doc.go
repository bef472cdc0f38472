// Package logging builds slog loggers for the CLI and pipeline.
//
// It provides a console handler ("TIMESTAMP LEVEL component: msg k=v"), an
// optional JSON handler, attribute helper functions, and context-derived
// fields (run id, stage, row line) so every stage logs with consistent keys.
package logging
