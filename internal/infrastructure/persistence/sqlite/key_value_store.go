// Package sqlite provides a SQLite-backed key-value store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reglet-dev/envseal/internal/application/ports"

	_ "modernc.org/sqlite"
)

// Ensure interface compliance
var _ ports.KeyValueStore = (*KeyValueStore)(nil)

const schema = `CREATE TABLE IF NOT EXISTS store_entries (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// KeyValueStore persists entries in a SQLite database.
// Each operation is a single statement.
type KeyValueStore struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string) (*KeyValueStore, error) {
	if path != ":memory:" {
		//nolint:gosec // G301: 0o700 keeps the store directory private
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create store table: %w", err)
	}
	return &KeyValueStore{db: db}, nil
}

// Close releases the database handle.
func (s *KeyValueStore) Close() error {
	return s.db.Close()
}

// GetItem returns the value stored under key.
func (s *KeyValueStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM store_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query store entry: %w", err)
	}
	return value, true, nil
}

// SetItem upserts value under key. Overwriting keeps the original row.
func (s *KeyValueStore) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO store_entries (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert store entry: %w", err)
	}
	return nil
}

// RemoveItem deletes key.
func (s *KeyValueStore) RemoveItem(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM store_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete store entry: %w", err)
	}
	return nil
}

// All returns every entry in insertion order.
func (s *KeyValueStore) All(ctx context.Context) ([]ports.StoreEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM store_entries ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list store entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []ports.StoreEntry
	for rows.Next() {
		var e ports.StoreEntry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("failed to scan store entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list store entries: %w", err)
	}
	return entries, nil
}
