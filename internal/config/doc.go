// Package config loads, normalizes, and validates boardshelf configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and resolves workspace-relative file names to
// absolute paths. The Config type centralizes every knob the CLI needs: the
// workspace layout, BGG API pacing, checkpoint cadence, server bind address,
// and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths and clear validation errors.
package config
