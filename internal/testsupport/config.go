// Package testsupport provides shared fixtures: a config builder seeded with
// per-test temp directories and deterministic fake normalization backends.
package testsupport

import (
	"path/filepath"
	"testing"

	"winnow/internal/config"
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
	cfg.Paths.TrashDir = filepath.Join(base, "trash")
	cfg.Scan.Jobs = 2

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAction overrides the default disposition on the test config.
func WithAction(action string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scan.Action = action
	}
}

// WithJobs overrides worker concurrency on the test config.
func WithJobs(jobs int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scan.Jobs = jobs
	}
}
