package images

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"boardshelf/internal/bgg"
	"boardshelf/internal/collection"
	"boardshelf/internal/fileutil"
	"boardshelf/internal/logging"
	"boardshelf/internal/pipeline"
	"boardshelf/internal/services"
)

// Stage downloads box art for every resolved row that does not already have a
// cached file. Download failures are recorded in the image column and retried
// on the next run; a permanent "no image on BGG" answer is not retried.
type Stage struct {
	api    bgg.API
	dir    string
	writer *collection.IncrementalWriter
	delay  time.Duration
	logger *slog.Logger
}

func NewStage(api bgg.API, dir string, writer *collection.IncrementalWriter, delay time.Duration, logger *slog.Logger) *Stage {
	return &Stage{
		api:    api,
		dir:    dir,
		writer: writer,
		delay:  delay,
		logger: logging.NewComponentLogger(logger, "images"),
	}
}

func (s *Stage) Name() string { return "images" }

func (s *Stage) Execute(ctx context.Context, table *collection.Table) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	for i, row := range table.Rows {
		rowCtx := services.WithRowLine(ctx, i+1)
		logger := logging.WithContext(rowCtx, s.logger)

		if done := s.settleWithoutNetwork(logger, row); done {
			continue
		}

		paced, err := s.fetchRow(rowCtx, logger, row)
		if err != nil {
			return err
		}
		if err := s.writer.RowDone(table); err != nil {
			return err
		}
		if paced {
			if err := pipeline.Pace(ctx, s.delay); err != nil {
				return err
			}
		}
	}
	return nil
}

// settleWithoutNetwork handles every row whose image column can be decided
// from local state alone: unresolved rows inherit their id sentinel, cached
// files short-circuit, and permanent no-image answers stay settled.
func (s *Stage) settleWithoutNetwork(logger *slog.Logger, row *collection.Row) bool {
	id, resolved := row.ID()
	if !resolved {
		if row.ImageFilename == "" {
			if row.BGGID == collection.SentinelInvalidID {
				row.ImageFilename = collection.SentinelInvalidID
			} else {
				row.ImageFilename = collection.SentinelNoBGGID
			}
		}
		return true
	}

	if row.ImageFilename == collection.SentinelNoImage {
		return true
	}
	if row.HasImage() {
		if fileutil.FileExists(filepath.Join(s.dir, row.ImageFilename)) {
			return true
		}
		// Recorded file disappeared from disk; fall through to refetch.
		logger.Warn("cached image missing, refetching", logging.String("file", row.ImageFilename))
		return false
	}

	// First run for this row: a file from a manual or earlier download may
	// already exist under either extension.
	for _, ext := range []string{".jpg", ".png"} {
		name := FileName(row.DisplayName(), row.Year, id, ext)
		if fileutil.FileExists(filepath.Join(s.dir, name)) {
			row.ImageFilename = name
			logger.Debug("image already cached", logging.String("file", name))
			return true
		}
	}
	return false
}

// fetchRow resolves the image URL via the thing endpoint and downloads it.
// The returned paced flag reports whether a network call was made.
func (s *Stage) fetchRow(ctx context.Context, logger *slog.Logger, row *collection.Row) (bool, error) {
	id, _ := row.ID()
	thing, err := s.api.Thing(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return true, ctx.Err()
		}
		if errors.Is(err, bgg.ErrNotFound) {
			row.ImageFilename = collection.SentinelNoImage
			logger.Warn("item has no image metadata", logging.Int64("bgg_id", id))
		} else {
			row.ImageFilename = collection.SentinelDownloadFailed
			logger.Warn("image lookup failed", logging.Int64("bgg_id", id), logging.Error(err))
		}
		return true, nil
	}
	if thing.ImageURL == "" {
		row.ImageFilename = collection.SentinelNoImage
		logger.Info("no image on record", logging.Int64("bgg_id", id))
		return true, nil
	}

	name := FileName(row.DisplayName(), row.Year, id, thing.ImageURL)
	data, err := s.api.Download(ctx, thing.ImageURL)
	if err != nil {
		if ctx.Err() != nil {
			return true, ctx.Err()
		}
		row.ImageFilename = collection.SentinelDownloadFailed
		logger.Warn("image download failed", logging.Int64("bgg_id", id), logging.Error(err))
		return true, nil
	}
	if len(data) == 0 {
		row.ImageFilename = collection.SentinelDownloadFailed
		logger.Warn("image download returned empty body", logging.Int64("bgg_id", id))
		return true, nil
	}

	if err := fileutil.WriteFileAtomic(filepath.Join(s.dir, name), data, 0o644); err != nil {
		row.ImageFilename = collection.SentinelDownloadFailed
		logger.Warn("image write failed", logging.String("file", name), logging.Error(err))
		return true, nil
	}
	row.ImageFilename = name
	logger.Debug("image saved", logging.String("file", name), logging.Int("bytes", len(data)))
	return true, nil
}
