package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boardshelf/internal/bgg"
	"boardshelf/internal/collection"
	"boardshelf/internal/config"
	"boardshelf/internal/fileutil"
	"boardshelf/internal/resolve"
)

// signalContext cancels on Ctrl-C or SIGTERM. Stages treat cancellation like
// any other checkpoint boundary, so an interrupted run resumes cleanly.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newAPIClient(cfg *config.Config) (*bgg.Client, error) {
	return bgg.New(cfg.BGG.BaseURL,
		bgg.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.BGG.RequestTimeout) * time.Second}),
		bgg.WithRetryPolicy(cfg.BGG.MaxRetries, cfg.BGG.BackoffBaseDuration()),
	)
}

// loadTable seeds one row per list entry and overlays any state a previous
// run persisted to outputPath, keyed by the original line. Lines added to the
// list since the last run become fresh rows; lines removed from the list drop
// out of the table.
func loadTable(listPath, outputPath string) (*collection.Table, error) {
	table, err := resolve.NewTableFromList(listPath)
	if err != nil {
		return nil, err
	}
	if !fileutil.FileExists(outputPath) {
		return table, nil
	}

	existing, err := collection.Load(outputPath)
	if err != nil {
		return nil, err
	}
	byLine := make(map[string]*collection.Row, len(existing.Rows))
	for _, row := range existing.Rows {
		byLine[row.OriginalLine] = row
	}
	for i, row := range table.Rows {
		if prev, ok := byLine[row.OriginalLine]; ok {
			table.Rows[i] = prev
		}
	}
	return table, nil
}
