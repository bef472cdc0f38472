package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"boardshelf/internal/collection"
)

func newSummaryCommand(cctx *commandContext) *cobra.Command {
	var topFlag int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show collection statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			table, err := collection.Load(cfg.Paths.CollectionFile)
			if err != nil {
				return fmt.Errorf("load collection (run `boardshelf build` first): %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderCollectionSummary(table))
			if top := renderTopRanked(table, topFlag); top != "" {
				fmt.Fprintf(out, "\nTop ranked\n%s\n", top)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&topFlag, "top", 10, "How many top-ranked games to list")
	return cmd
}

func renderCollectionSummary(table *collection.Table) string {
	var resolved, enriched, withImage, unranked int
	byConfidence := map[collection.Confidence]int{}
	for _, row := range table.Rows {
		if row.Resolved() {
			resolved++
		}
		if row.Enriched() {
			enriched++
		}
		if row.HasImage() {
			withImage++
		}
		if row.Rank == collection.RankUnranked {
			unranked++
		}
		if row.Confidence != "" {
			byConfidence[row.Confidence]++
		}
	}

	rows := [][]string{
		{"Entries", strconv.Itoa(len(table.Rows))},
		{"Resolved", strconv.Itoa(resolved)},
		{"Unresolved", strconv.Itoa(len(table.Rows) - resolved)},
		{"Enriched", strconv.Itoa(enriched)},
		{"Images cached", strconv.Itoa(withImage)},
		{"Unranked", strconv.Itoa(unranked)},
	}
	for _, confidence := range []collection.Confidence{
		collection.ConfidenceHigh,
		collection.ConfidenceMedium,
		collection.ConfidenceLow,
		collection.ConfidenceNone,
	} {
		if count := byConfidence[confidence]; count > 0 {
			rows = append(rows, []string{fmt.Sprintf("Confidence %s", confidence), strconv.Itoa(count)})
		}
	}

	return renderTable(
		[]string{"Metric", "Count"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	) + "\n"
}

func renderTopRanked(table *collection.Table, limit int) string {
	if limit <= 0 {
		return ""
	}

	type ranked struct {
		rank int
		row  *collection.Row
	}
	var games []ranked
	for _, row := range table.Rows {
		rank, err := strconv.Atoi(strings.TrimSpace(row.Rank))
		if err != nil || rank <= 0 || row.Rank == collection.RankUnranked {
			continue
		}
		games = append(games, ranked{rank: rank, row: row})
	}
	if len(games) == 0 {
		return ""
	}
	sort.Slice(games, func(i, j int) bool { return games[i].rank < games[j].rank })
	if len(games) > limit {
		games = games[:limit]
	}

	rows := make([][]string, 0, len(games))
	for _, game := range games {
		rows = append(rows, []string{
			strconv.Itoa(game.rank),
			game.row.DisplayName(),
			game.row.Year,
			game.row.Average,
			game.row.ComplexityWeight,
			game.row.PlayingTime,
		})
	}
	return renderTable(
		[]string{"Rank", "Name", "Year", "Rating", "Weight", "Playtime"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}
