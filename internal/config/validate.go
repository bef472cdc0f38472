package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBGG(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBGG() error {
	if c.BGG.BaseURL == "" {
		return errors.New("bgg.base_url must be set")
	}
	if c.BGG.RequestTimeout < 1 {
		return errors.New("bgg.request_timeout must be at least 1 second")
	}
	if c.BGG.SearchDelay < 0 || c.BGG.DetailDelay < 0 {
		return errors.New("bgg request delays must not be negative")
	}
	if c.BGG.MaxRetries < 0 {
		return errors.New("bgg.max_retries must not be negative")
	}
	if c.BGG.BackoffBase <= 0 {
		return errors.New("bgg.backoff_base must be positive")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.CheckpointInterval < 1 {
		return errors.New("pipeline.checkpoint_interval must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
