// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"boardshelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config rooted in a unique temp workspace per test,
// with request pacing reduced so tests never sleep.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkspaceDir = base
	cfg.Paths.ListFile = filepath.Join(base, "list.txt")
	cfg.Paths.RanksFile = filepath.Join(base, "boardgames_ranks.csv")
	cfg.Paths.IDsFile = filepath.Join(base, "boardgame_ids.csv")
	cfg.Paths.CollectionFile = filepath.Join(base, "collection.csv")
	cfg.Paths.ImagesDir = filepath.Join(base, "images")
	cfg.Paths.CacheDB = filepath.Join(base, "cache", "resolutions.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	// Zero means "use the default" after normalization, so pacing is set to
	// a value small enough that tests never visibly sleep.
	cfg.BGG.SearchDelay = 0.001
	cfg.BGG.DetailDelay = 0.001
	cfg.BGG.BackoffBase = 0.001
	cfg.Server.Bind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithBGGBaseURL points the config at a test server.
func WithBGGBaseURL(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.BGG.BaseURL = baseURL
	}
}

// WithCheckpointInterval overrides the checkpoint cadence.
func WithCheckpointInterval(interval int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Pipeline.CheckpointInterval = interval
	}
}
