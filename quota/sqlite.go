package quota

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// usageKey namespaces the quota record inside the client_state table so
// the database file can hold other client state without collisions.
const usageKey = "smartreply_api_usage"

// SQLiteBackend persists the record in a local SQLite database.
type SQLiteBackend struct {
	db *sql.DB
}

var _ Backend = (*SQLiteBackend)(nil)

// NewSQLiteBackend opens or creates a SQLite database at the given path.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("quota: create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("quota: open db: %w", err)
	}

	b := &SQLiteBackend{db: db}
	if err := b.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("quota: migrate: %w", err)
	}
	return b, nil
}

func (b *SQLiteBackend) migrate() error {
	_, err := b.db.Exec(`
	CREATE TABLE IF NOT EXISTS client_state (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`)
	return err
}

func (b *SQLiteBackend) Load() ([]byte, error) {
	var value []byte
	err := b.db.QueryRow(`SELECT value FROM client_state WHERE key = ?`, usageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (b *SQLiteBackend) Save(data []byte) error {
	_, err := b.db.Exec(`
	INSERT INTO client_state (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`, usageKey, data)
	return err
}

// Close releases the underlying database handle.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
