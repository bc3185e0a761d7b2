// Package config loads, normalizes, and validates retrace configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Resolution order: an explicit --config
// path, then ~/.config/retrace/config.toml, then ./retrace.toml. Missing
// files fall back to defaults; a present file only needs to set the values it
// changes.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
