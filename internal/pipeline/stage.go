package pipeline

import (
	"context"
	"time"

	"boardshelf/internal/collection"
)

// Stage is one pass over the row table. Stages mutate rows in place and are
// responsible for skipping rows they already completed in a previous run.
type Stage interface {
	Name() string
	Execute(ctx context.Context, table *collection.Table) error
}

// Pace blocks for the stage's inter-request delay, returning early with the
// context error on cancellation. A non-positive delay is a no-op.
func Pace(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
