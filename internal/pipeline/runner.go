package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"boardshelf/internal/collection"
	"boardshelf/internal/logging"
	"boardshelf/internal/services"
)

const lockFileName = ".boardshelf.lock"

// Runner executes stages in order against one table. Stages run strictly
// sequentially; the external API tolerates exactly one in-flight request.
type Runner struct {
	workspaceDir string
	writer       *collection.IncrementalWriter
	logger       *slog.Logger
	stages       []Stage
}

// NewRunner builds a runner over the given stages. The writer checkpoints the
// table between stages and after a failed stage, so partial progress survives.
func NewRunner(workspaceDir string, writer *collection.IncrementalWriter, logger *slog.Logger, stages ...Stage) *Runner {
	return &Runner{
		workspaceDir: workspaceDir,
		writer:       writer,
		logger:       logging.NewComponentLogger(logger, "pipeline"),
		stages:       stages,
	}
}

// Run acquires the workspace lock and drives every stage to completion. The
// table is flushed after each stage and before returning any stage error.
func (r *Runner) Run(ctx context.Context, table *collection.Table) error {
	if err := os.MkdirAll(r.workspaceDir, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "pipeline", "workspace", "create workspace directory", err)
	}
	lock := flock.New(filepath.Join(r.workspaceDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "pipeline", "lock", "acquire workspace lock", err)
	}
	if !locked {
		return services.Wrap(services.ErrValidation, "pipeline", "lock", "workspace is locked by another run", nil)
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)
	start := time.Now()
	logger.Info("run started", logging.Int("stages", len(r.stages)), logging.Int("rows", len(table.Rows)))

	for _, stage := range r.stages {
		stageCtx := services.WithStage(ctx, stage.Name())
		stageLogger := logging.WithContext(stageCtx, r.logger)
		stageStart := time.Now()
		stageLogger.Info("stage started")

		if err := stage.Execute(stageCtx, table); err != nil {
			if flushErr := r.writer.Flush(table); flushErr != nil {
				stageLogger.Error("checkpoint after failure lost", logging.Error(flushErr))
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return services.Wrap(services.ErrTransient, stage.Name(), "execute", "stage failed", err)
		}

		if err := r.writer.Flush(table); err != nil {
			return services.Wrap(services.ErrTransient, stage.Name(), "checkpoint", "persist table", err)
		}
		stageLogger.Info("stage finished", logging.Duration("elapsed", time.Since(stageStart)))
	}

	logger.Info("run finished", logging.Duration("elapsed", time.Since(start)))
	return nil
}
