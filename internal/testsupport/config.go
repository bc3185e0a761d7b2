// Package testsupport provides shared helpers for package tests: temp-backed
// configs, store constructors, and snapshot fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"retrace/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithLedgerBackend overrides the ledger backend on the test config.
func WithLedgerBackend(backend, redisAddr string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Ledger.Backend = backend
		cfg.Ledger.RedisAddr = redisAddr
	}
}
