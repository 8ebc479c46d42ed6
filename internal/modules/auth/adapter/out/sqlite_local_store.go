package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"logbook/internal/modules/auth/domain"
	authout "logbook/internal/modules/auth/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteLocalStore is the persistent key/value store that survives restarts,
// the terminal counterpart of browser localStorage.
type SQLiteLocalStore struct {
	db *sql.DB
}

func NewSQLiteLocalStore(dbPath string) (*SQLiteLocalStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteLocalStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

var _ authout.CredentialStore = (*SQLiteLocalStore)(nil)

func (s *SQLiteLocalStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS local_storage (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create local_storage table: %w", err)
	}
	return nil
}

func (s *SQLiteLocalStore) Kind() domain.StoreKind { return domain.StoreLocal }

func (s *SQLiteLocalStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read local storage %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteLocalStore) Set(ctx context.Context, key, value string) error {
	const stmt = `
INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
`
	if _, err := s.db.ExecContext(ctx, stmt, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write local storage %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteLocalStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM local_storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete local storage %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteLocalStore) Close() error {
	return s.db.Close()
}
