package collection

import (
	"log/slog"

	"boardshelf/internal/logging"
)

// IncrementalWriter persists partial progress at a fixed row interval so a
// long, rate-limited run never loses more than one interval's worth of work.
type IncrementalWriter struct {
	path     string
	interval int
	logger   *slog.Logger
	pending  int
}

// NewIncrementalWriter creates a writer that checkpoints the table to path
// after every interval processed rows and on Flush.
func NewIncrementalWriter(path string, interval int, logger *slog.Logger) *IncrementalWriter {
	if interval < 1 {
		interval = 1
	}
	return &IncrementalWriter{
		path:     path,
		interval: interval,
		logger:   logging.NewComponentLogger(logger, "writer"),
	}
}

// RowDone records one processed row and checkpoints when the interval is
// reached.
func (w *IncrementalWriter) RowDone(table *Table) error {
	w.pending++
	if w.pending < w.interval {
		return nil
	}
	return w.Flush(table)
}

// Flush unconditionally persists the table and resets the interval counter.
func (w *IncrementalWriter) Flush(table *Table) error {
	w.pending = 0
	if err := table.Write(w.path); err != nil {
		w.logger.Error("checkpoint failed", logging.String("path", w.path), logging.Error(err))
		return err
	}
	w.logger.Debug("progress saved", logging.String("path", w.path), logging.Int("rows", len(table.Rows)))
	return nil
}
