package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the workspace layout. File entries may be bare names, in
// which case they are resolved relative to the workspace directory during
// normalization.
type Paths struct {
	WorkspaceDir   string `toml:"workspace_dir"`
	ListFile       string `toml:"list_file"`
	RanksFile      string `toml:"ranks_file"`
	IDsFile        string `toml:"ids_file"`
	CollectionFile string `toml:"collection_file"`
	ImagesDir      string `toml:"images_dir"`
	CacheDB        string `toml:"cache_db"`
	LogDir         string `toml:"log_dir"`
}

// BGG contains configuration for the BoardGameGeek XML API.
type BGG struct {
	BaseURL        string  `toml:"base_url"`
	RequestTimeout int     `toml:"request_timeout"`
	SearchDelay    float64 `toml:"search_delay"`
	DetailDelay    float64 `toml:"detail_delay"`
	MaxRetries     int     `toml:"max_retries"`
	BackoffBase    float64 `toml:"backoff_base"`
}

// SearchDelayDuration returns the pause between search requests.
func (b BGG) SearchDelayDuration() time.Duration {
	return time.Duration(b.SearchDelay * float64(time.Second))
}

// DetailDelayDuration returns the pause between detail requests.
func (b BGG) DetailDelayDuration() time.Duration {
	return time.Duration(b.DetailDelay * float64(time.Second))
}

// BackoffBaseDuration returns the initial 429 backoff delay.
func (b BGG) BackoffBaseDuration() time.Duration {
	return time.Duration(b.BackoffBase * float64(time.Second))
}

// Pipeline contains checkpoint cadence configuration.
type Pipeline struct {
	CheckpointInterval int `toml:"checkpoint_interval"`
}

// Server contains configuration for the local preview server.
type Server struct {
	Bind string `toml:"bind"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for boardshelf.
//
// Configuration sections by subsystem:
//   - Paths: workspace directory and the files inside it
//   - BGG: API base URL, request pacing, and retry policy
//   - Pipeline: checkpoint cadence for long runs
//   - Server: local preview server bind address
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	BGG      BGG      `toml:"bgg"`
	Pipeline Pipeline `toml:"pipeline"`
	Server   Server   `toml:"server"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/boardshelf/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and resolved against the workspace.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("boardshelf.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the workspace, image, cache, and log directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.WorkspaceDir,
		c.Paths.ImagesDir,
		c.Paths.LogDir,
		filepath.Dir(c.Paths.CacheDB),
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
