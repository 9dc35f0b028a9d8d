// Package testsupport provides shared helpers for package tests: temp-dir
// configs, store setup, and dataset seeding.
package testsupport

import (
	"path/filepath"
	"testing"

	"furrow/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DatasetDir = filepath.Join(base, "plots")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Server.Bind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithRoster sets the annotator roster on the test config.
func WithRoster(entries ...config.Annotator) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Annotators = entries
	}
}

// WithNtfyTopic points notifications at a test receiver.
func WithNtfyTopic(topic string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Notifications.NtfyTopic = topic
	}
}
