package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBGG()
	c.normalizeServer()
	c.normalizeLogging()
	if c.Pipeline.CheckpointInterval == 0 {
		c.Pipeline.CheckpointInterval = defaultCheckpointInterval
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkspaceDir) == "" {
		c.Paths.WorkspaceDir = defaultWorkspaceDir
	}
	if c.Paths.WorkspaceDir, err = expandPath(c.Paths.WorkspaceDir); err != nil {
		return fmt.Errorf("paths.workspace_dir: %w", err)
	}
	if c.Paths.ListFile, err = c.resolveWorkspacePath(c.Paths.ListFile, defaultListFile); err != nil {
		return fmt.Errorf("paths.list_file: %w", err)
	}
	if c.Paths.RanksFile, err = c.resolveWorkspacePath(c.Paths.RanksFile, defaultRanksFile); err != nil {
		return fmt.Errorf("paths.ranks_file: %w", err)
	}
	if c.Paths.IDsFile, err = c.resolveWorkspacePath(c.Paths.IDsFile, defaultIDsFile); err != nil {
		return fmt.Errorf("paths.ids_file: %w", err)
	}
	if c.Paths.CollectionFile, err = c.resolveWorkspacePath(c.Paths.CollectionFile, defaultCollectionFile); err != nil {
		return fmt.Errorf("paths.collection_file: %w", err)
	}
	if c.Paths.ImagesDir, err = c.resolveWorkspacePath(c.Paths.ImagesDir, defaultImagesDir); err != nil {
		return fmt.Errorf("paths.images_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDB) == "" {
		c.Paths.CacheDB = defaultCacheDB
	}
	if c.Paths.CacheDB, err = expandPath(c.Paths.CacheDB); err != nil {
		return fmt.Errorf("paths.cache_db: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// resolveWorkspacePath expands entries that look like full paths and joins
// bare file names onto the workspace directory.
func (c *Config) resolveWorkspacePath(value, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	if filepath.IsAbs(value) || strings.HasPrefix(value, "~") {
		return expandPath(value)
	}
	return filepath.Join(c.Paths.WorkspaceDir, value), nil
}

func (c *Config) normalizeBGG() {
	c.BGG.BaseURL = strings.TrimRight(strings.TrimSpace(c.BGG.BaseURL), "/")
	if c.BGG.BaseURL == "" {
		c.BGG.BaseURL = defaultBGGBaseURL
	}
	if c.BGG.RequestTimeout == 0 {
		c.BGG.RequestTimeout = defaultRequestTimeout
	}
	if c.BGG.SearchDelay == 0 {
		c.BGG.SearchDelay = defaultSearchDelay
	}
	if c.BGG.DetailDelay == 0 {
		c.BGG.DetailDelay = defaultDetailDelay
	}
	if c.BGG.MaxRetries == 0 {
		c.BGG.MaxRetries = defaultMaxRetries
	}
	if c.BGG.BackoffBase == 0 {
		c.BGG.BackoffBase = defaultBackoffBase
	}
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
