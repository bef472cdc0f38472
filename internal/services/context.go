package services

import "context"

type contextKey string

const (
	rowLineKey contextKey = "row_line"
	stageKey   contextKey = "stage"
	runIDKey   contextKey = "run_id"
)

// WithRowLine annotates context with the 1-based input line number of the row
// currently being processed.
func WithRowLine(ctx context.Context, line int) context.Context {
	if line <= 0 {
		return ctx
	}
	return context.WithValue(ctx, rowLineKey, line)
}

// RowLineFromContext extracts the row line number if present.
func RowLineFromContext(ctx context.Context) (int, bool) {
	if line, ok := ctx.Value(rowLineKey).(int); ok && line > 0 {
		return line, true
	}
	return 0, false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(stageKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRunID annotates context with a per-run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
