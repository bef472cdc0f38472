package collection

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"boardshelf/internal/fileutil"
)

// columns is the persisted CSV schema, in order. Loading tolerates extra or
// reordered columns via the header row, but files written by this package
// always use this layout.
var columns = []string{
	"original_line",
	"game_name",
	"bgg_id",
	"matched_name",
	"year",
	"status",
	"confidence",
	"name",
	"rank",
	"bayesaverage",
	"average",
	"usersrated",
	"is_expansion",
	"image_filename",
	"min_players",
	"max_players",
	"best_player_count",
	"recommended_player_count",
	"playing_time",
	"complexity_weight",
	"mechanics",
	"categories",
}

// Columns returns a copy of the persisted CSV header.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// Table owns the full in-memory row set. Stages mutate rows in place; the
// table itself is passed by ownership through each stage function.
type Table struct {
	Rows []*Row
}

// Load reads a previously persisted collection CSV.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open collection file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse collection file %s: %w", path, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}

	table := &Table{Rows: make([]*Row, 0, len(records)-1)}
	for _, record := range records[1:] {
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		table.Rows = append(table.Rows, &Row{
			OriginalLine:           field("original_line"),
			GameName:               field("game_name"),
			BGGID:                  field("bgg_id"),
			MatchedName:            field("matched_name"),
			Year:                   field("year"),
			Status:                 field("status"),
			Confidence:             Confidence(field("confidence")),
			Name:                   field("name"),
			Rank:                   field("rank"),
			BayesAverage:           field("bayesaverage"),
			Average:                field("average"),
			UsersRated:             field("usersrated"),
			IsExpansion:            field("is_expansion"),
			ImageFilename:          field("image_filename"),
			MinPlayers:             field("min_players"),
			MaxPlayers:             field("max_players"),
			BestPlayerCount:        field("best_player_count"),
			RecommendedPlayerCount: field("recommended_player_count"),
			PlayingTime:            field("playing_time"),
			ComplexityWeight:       field("complexity_weight"),
			Mechanics:              field("mechanics"),
			Categories:             field("categories"),
		})
	}
	return table, nil
}

// Write persists the full row set to path. The file is replaced atomically so
// an interrupt mid-write never leaves a truncated table behind.
func (t *Table) Write(path string) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		record := []string{
			row.OriginalLine,
			row.GameName,
			row.BGGID,
			row.MatchedName,
			row.Year,
			row.Status,
			string(row.Confidence),
			row.Name,
			row.Rank,
			row.BayesAverage,
			row.Average,
			row.UsersRated,
			row.IsExpansion,
			row.ImageFilename,
			row.MinPlayers,
			row.MaxPlayers,
			row.BestPlayerCount,
			row.RecommendedPlayerCount,
			row.PlayingTime,
			row.ComplexityWeight,
			row.Mechanics,
			row.Categories,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// ResolvedRows returns the subset of rows carrying a usable BGG id, preserving
// order. The build pipeline operates on this subset the way the original
// collection only carried games with ids forward.
func (t *Table) ResolvedRows() *Table {
	out := &Table{Rows: make([]*Row, 0, len(t.Rows))}
	for _, row := range t.Rows {
		if row.Resolved() {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
