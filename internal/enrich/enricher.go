package enrich

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"boardshelf/internal/bgg"
	"boardshelf/internal/collection"
	"boardshelf/internal/logging"
	"boardshelf/internal/pipeline"
	"boardshelf/internal/services"
)

const (
	maxMechanics  = 5
	maxCategories = 3
)

// Apply copies a fetched item's details into the row.
func Apply(thing *bgg.Thing, row *collection.Row) {
	row.MinPlayers = strconv.Itoa(thing.MinPlayers)
	row.MaxPlayers = strconv.Itoa(thing.MaxPlayers)
	row.BestPlayerCount, row.RecommendedPlayerCount = classifyPlayerCounts(thing.PlayerPoll)
	row.PlayingTime = formatPlaytime(thing.MinPlaytime, thing.MaxPlaytime)
	row.ComplexityWeight = formatWeight(thing.AverageWeight)
	row.Mechanics = joinLeading(thing.Mechanics, maxMechanics)
	row.Categories = joinLeading(thing.Categories, maxCategories)
	if row.Year == "" {
		row.Year = thing.Year
	}
}

// Stage fetches detail data for every resolved, not-yet-enriched row. Fetch
// failures are logged and the row left untouched; the next run retries it.
type Stage struct {
	api    bgg.API
	writer *collection.IncrementalWriter
	delay  time.Duration
	logger *slog.Logger
}

func NewStage(api bgg.API, writer *collection.IncrementalWriter, delay time.Duration, logger *slog.Logger) *Stage {
	return &Stage{
		api:    api,
		writer: writer,
		delay:  delay,
		logger: logging.NewComponentLogger(logger, "enrich"),
	}
}

func (s *Stage) Name() string { return "enrich" }

func (s *Stage) Execute(ctx context.Context, table *collection.Table) error {
	for i, row := range table.Rows {
		id, ok := row.ID()
		if !ok || row.Enriched() {
			continue
		}
		rowCtx := services.WithRowLine(ctx, i+1)
		logger := logging.WithContext(rowCtx, s.logger)

		thing, err := s.api.Thing(rowCtx, id)
		switch {
		case err == nil:
			Apply(thing, row)
			logger.Debug("row enriched",
				logging.Int64("bgg_id", id),
				logging.String("playing_time", row.PlayingTime),
				logging.String("complexity_weight", row.ComplexityWeight))
		case rowCtx.Err() != nil:
			return rowCtx.Err()
		case errors.Is(err, bgg.ErrNotFound):
			logger.Warn("item vanished from the api", logging.Int64("bgg_id", id))
		default:
			logger.Warn("detail fetch failed", logging.Int64("bgg_id", id), logging.Error(err))
		}

		if err := s.writer.RowDone(table); err != nil {
			return err
		}
		if err := pipeline.Pace(ctx, s.delay); err != nil {
			return err
		}
	}
	return nil
}
