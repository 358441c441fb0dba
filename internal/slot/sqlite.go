package slot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps every slot as a row in a single slots table. It serves
// deployments where the shared medium is a database file rather than a
// directory of text files.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS slots (
    name       TEXT PRIMARY KEY,
    content    BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`

// OpenSQLite initializes or connects to the slot database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Read(ctx context.Context, name string) ([]byte, error) {
	var content []byte
	err := s.db.QueryRowContext(ctx, `SELECT content FROM slots WHERE name = ?`, name).Scan(&content)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("read slot %s: %w", name, err)
	}
	if len(content) == 0 {
		return nil, nil
	}
	return content, nil
}

func (s *SQLiteStore) Write(ctx context.Context, name string, content []byte) error {
	if content == nil {
		content = []byte{}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (name, content, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(name) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		name, content, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, name string) error {
	return s.Write(ctx, name, nil)
}

func (s *SQLiteStore) Touch(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO slots (name, content, updated_at) VALUES (?, ?, ?)`,
		name, []byte{}, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("touch slot %s: %w", name, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
