// Package testsupport provides shared fixtures for package tests: canned
// repository clients, field writers, and config builders seeded with per-test
// temp directories.
package testsupport

import (
	"path/filepath"
	"testing"

	"scantidy/internal/config"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a validated config seeded with unique temp paths.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.XNAT.BaseURL = "https://xnat.test.invalid"
	cfg.XNAT.Project = "CUTTING"
	cfg.XNAT.Token = "test-token"
	cfg.Rules.DBPath = filepath.Join(base, "rules.db")
	cfg.Logging.Dir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithExpectations sets modality frame expectations on the test config.
func WithExpectations(expectations map[string]int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Expectations = expectations
	}
}

// WithProject overrides the repository project on the test config.
func WithProject(project string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.XNAT.Project = project
	}
}
