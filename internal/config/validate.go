package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateLedger(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	m := c.Matching
	if m.FactorThreshold < 1 || m.FactorThreshold > 4 {
		return errors.New("matching.factor_threshold must be between 1 and 4")
	}
	if m.DateToleranceDays < 0 {
		return errors.New("matching.date_tolerance_days must be >= 0")
	}
	if m.RatingEpsilon <= 0 {
		return errors.New("matching.rating_epsilon must be positive")
	}
	if m.SimilarityFloor <= 0 || m.SimilarityFloor >= 1 {
		return errors.New("matching.similarity_floor must be between 0 and 1")
	}
	if m.SimilarityTieMargin < 0 || m.SimilarityTieMargin >= 1 {
		return errors.New("matching.similarity_tie_margin must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLedger() error {
	switch c.Ledger.Backend {
	case "sqlite":
		return nil
	case "redis":
		if strings.TrimSpace(c.Ledger.RedisAddr) == "" {
			return errors.New("ledger.redis_addr must be set when ledger.backend is redis")
		}
		return nil
	default:
		return fmt.Errorf("ledger.backend: unsupported value %q (expected sqlite or redis)", c.Ledger.Backend)
	}
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
