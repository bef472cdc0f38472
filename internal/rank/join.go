package rank

import (
	"context"
	"log/slog"

	"boardshelf/internal/collection"
	"boardshelf/internal/logging"
)

// Placeholder statistics for games the export does not list. The rank keeps
// unranked games at the bottom of numeric sorts.
const (
	unrankedRank = collection.RankUnranked
	zeroStat     = "0"
)

// Join fills one row's ranking columns. Rows without a usable id and rows the
// export does not know both receive the placeholder statistics, so every row
// leaves this function with a complete set of ranking columns.
func Join(ranks *Table, row *collection.Row) bool {
	id, ok := row.ID()
	if ok {
		if entry, found := ranks.Lookup(id); found {
			row.Name = entry.Name
			row.Rank = entry.Rank
			row.BayesAverage = entry.BayesAverage
			row.Average = entry.Average
			row.UsersRated = entry.UsersRated
			row.IsExpansion = entry.IsExpansion
			if row.Year == "" {
				row.Year = entry.YearPublished
			}
			if row.Rank == "" {
				row.Rank = unrankedRank
			}
			return true
		}
	}

	row.Name = row.DisplayName()
	row.Rank = unrankedRank
	row.BayesAverage = zeroStat
	row.Average = zeroStat
	row.UsersRated = zeroStat
	row.IsExpansion = zeroStat
	return false
}

// Stage joins the whole table against the ranking export. It is the one
// offline stage: a missing or malformed export fails the run instead of being
// recorded per row.
type Stage struct {
	ranksPath string
	logger    *slog.Logger
}

func NewStage(ranksPath string, logger *slog.Logger) *Stage {
	return &Stage{
		ranksPath: ranksPath,
		logger:    logging.NewComponentLogger(logger, "rank"),
	}
}

func (s *Stage) Name() string { return "rank" }

func (s *Stage) Execute(ctx context.Context, table *collection.Table) error {
	ranks, err := LoadTable(s.ranksPath)
	if err != nil {
		return err
	}
	logger := logging.WithContext(ctx, s.logger)
	logger.Info("ranking export loaded", logging.String("path", s.ranksPath), logging.Int("games", ranks.Len()))

	matched := 0
	for _, row := range table.Rows {
		if Join(ranks, row) {
			matched++
		}
	}
	logger.Info("join complete",
		logging.Int("rows", len(table.Rows)),
		logging.Int("matched", matched),
		logging.Int("unmatched", len(table.Rows)-matched))
	return nil
}
