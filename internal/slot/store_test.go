package slot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shuttle/internal/config"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	sqliteStore, err := OpenSQLite(filepath.Join(t.TempDir(), "slots.db"))
	if err != nil {
		t.Fatalf("sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = sqliteStore.Close() })
	return map[string]Store{
		"file":   fileStore,
		"sqlite": sqliteStore,
		"memory": NewMemoryStore(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			data, err := store.Read(ctx, "rng_request.txt")
			if err != nil {
				t.Fatalf("read absent: %v", err)
			}
			if data != nil {
				t.Fatalf("expected nil content for absent slot, got %q", data)
			}

			if err := store.Write(ctx, "rng_request.txt", []byte(`{"items":[1]}`)); err != nil {
				t.Fatalf("write: %v", err)
			}
			data, err = store.Read(ctx, "rng_request.txt")
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(data) != `{"items":[1]}` {
				t.Fatalf("unexpected content: %q", data)
			}

			// Overwrite replaces, never appends.
			if err := store.Write(ctx, "rng_request.txt", []byte("x")); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			data, _ = store.Read(ctx, "rng_request.txt")
			if string(data) != "x" {
				t.Fatalf("expected overwrite, got %q", data)
			}

			if err := store.Clear(ctx, "rng_request.txt"); err != nil {
				t.Fatalf("clear: %v", err)
			}
			data, err = store.Read(ctx, "rng_request.txt")
			if err != nil {
				t.Fatalf("read cleared: %v", err)
			}
			if data != nil {
				t.Fatalf("expected empty slot after clear, got %q", data)
			}
		})
	}
}

func TestTouchPreservesContent(t *testing.T) {
	ctx := context.Background()
	for name, store := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Touch(ctx, "output.csv"); err != nil {
				t.Fatalf("touch new: %v", err)
			}
			data, err := store.Read(ctx, "output.csv")
			if err != nil || data != nil {
				t.Fatalf("expected empty slot, got %q err=%v", data, err)
			}

			if err := store.Write(ctx, "output.csv", []byte("word,3")); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := store.Touch(ctx, "output.csv"); err != nil {
				t.Fatalf("touch existing: %v", err)
			}
			data, _ = store.Read(ctx, "output.csv")
			if string(data) != "word,3" {
				t.Fatalf("touch must preserve content, got %q", data)
			}
		})
	}
}

func TestFileStoreRejectsPathEscapes(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	// Base name extraction keeps slot files inside the data directory.
	if err := store.Write(context.Background(), "../escape.txt", []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), "escape.txt")); err != nil {
		t.Fatalf("expected slot inside store dir: %v", err)
	}
}

func TestFileStoreClearKeepsFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	ctx := context.Background()
	if err := store.Write(ctx, "input.txt", []byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Clear(ctx, "input.txt"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	info, err := os.Stat(filepath.Join(store.Dir(), "input.txt"))
	if err != nil {
		t.Fatalf("slot file should survive clear: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected truncated slot, size=%d", info.Size())
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()

	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("open file backend: %v", err)
	}
	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("expected FileStore, got %T", store)
	}

	cfg.Store.Backend = "sqlite"
	store, err = Open(&cfg)
	if err != nil {
		t.Fatalf("open sqlite backend: %v", err)
	}
	sqliteStore, ok := store.(*SQLiteStore)
	if !ok {
		t.Fatalf("expected SQLiteStore, got %T", store)
	}
	_ = sqliteStore.Close()

	cfg.Store.Backend = "redis"
	if _, err := Open(&cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
