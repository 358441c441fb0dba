package slot

import (
	"context"
	"fmt"

	"shuttle/internal/config"
)

// Store provides access to named durable byte slots.
//
// Read returns nil content for an absent or empty slot; absence and emptiness
// are indistinguishable by design. Write replaces the slot content whole and
// must never expose a partial write to concurrent readers. Clear resets the
// slot to empty without removing it. Touch creates the slot empty if it does
// not exist yet and leaves existing content alone.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, content []byte) error
	Clear(ctx context.Context, name string) error
	Touch(ctx context.Context, name string) error
	Close() error
}

// Open constructs the slot store selected by the configuration.
func Open(cfg *config.Config) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("slot store requires config")
	}
	switch cfg.Store.Backend {
	case "file":
		return NewFileStore(cfg.Paths.DataDir)
	case "sqlite":
		return OpenSQLite(cfg.SQLitePath())
	default:
		return nil, fmt.Errorf("slot store: unsupported backend %q", cfg.Store.Backend)
	}
}
