package resolve

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"boardshelf/internal/collection"
	"boardshelf/internal/logging"
	"boardshelf/internal/pipeline"
	"boardshelf/internal/services"
)

// Stage resolves every unprocessed row in the table. Rows carrying a settled
// status were handled in a previous run and are left untouched, which is what
// makes resolution resumable after an interrupt; rows that only failed on a
// transient search error are retried.
type Stage struct {
	resolver *Resolver
	writer   *collection.IncrementalWriter
	delay    time.Duration
	logger   *slog.Logger
}

// NewStage builds the resolution stage. delay is the pause between live API
// calls; cache hits do not pay it.
func NewStage(resolver *Resolver, writer *collection.IncrementalWriter, delay time.Duration, logger *slog.Logger) *Stage {
	return &Stage{
		resolver: resolver,
		writer:   writer,
		delay:    delay,
		logger:   logging.NewComponentLogger(logger, "resolve"),
	}
}

func (s *Stage) Name() string { return "resolve" }

func (s *Stage) Execute(ctx context.Context, table *collection.Table) error {
	for i, row := range table.Rows {
		rowCtx := services.WithRowLine(ctx, i+1)
		// A search failure is transient; everything else is settled.
		if row.Status != "" && row.Status != StatusSearchFailed {
			continue
		}

		res, cached, err := s.resolver.Resolve(rowCtx, row.OriginalLine)
		if err != nil {
			return err
		}
		Apply(res, row)

		if err := s.writer.RowDone(table); err != nil {
			return err
		}
		if !cached {
			if err := pipeline.Pace(ctx, s.delay); err != nil {
				return err
			}
		}
	}
	return nil
}

// NewTableFromList reads the input list and seeds one row per non-empty line.
// Blank lines are dropped; everything else, including comment-looking lines,
// becomes a row so the output accounts for every entry in the list.
func NewTableFromList(path string) (*collection.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open game list: %w", err)
	}
	defer file.Close()

	table := &collection.Table{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		table.Rows = append(table.Rows, &collection.Row{OriginalLine: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read game list %s: %w", path, err)
	}
	return table, nil
}
