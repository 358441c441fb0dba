// Package testsupport provides shared helpers for package tests: temp-backed
// configs, fast protocol timing, and slot store plumbing.
package testsupport

import (
	"path/filepath"
	"testing"

	"shuttle/internal/config"
	"shuttle/internal/slot"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test
// and protocol timing fast enough for unit tests.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "channels")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Protocol.PollIntervalMillis = 5
	cfg.Protocol.TimeoutSeconds = 2

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithBackend overrides the slot store backend on the test config.
func WithBackend(backend string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Store.Backend = backend
	}
}

// MustOpenStore opens the configured slot store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) slot.Store {
	t.Helper()

	store, err := slot.Open(cfg)
	if err != nil {
		t.Fatalf("slot.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
