// Package store persists named JSON snapshots in a local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned by Get when the slot has never been written.
var ErrNotFound = errors.New("slot not found")

// DB is a SQLite-backed key/value slot store.
type DB struct {
	db *sql.DB
}

// DefaultPath returns $XDG_DATA_HOME/bplan/bplan.db, falling back to
// ~/.local/share when XDG_DATA_HOME is unset.
func DefaultPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "bplan", "bplan.db")
}

// Open opens or creates the database at dbPath and migrates it.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := migrateSchema(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Get returns the raw value stored under key.
func (d *DB) Get(key string) ([]byte, error) {
	var value string
	err := d.db.QueryRow("SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", key, err)
	}
	return []byte(value), nil
}

// Put overwrites the value stored under key.
func (d *DB) Put(key string, value []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := d.db.Exec(`INSERT OR REPLACE INTO slots (key, value, updated_at) VALUES (?, ?, ?)`,
		key, string(value), now)
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	return nil
}

// UpdatedAt reports when key was last written.
func (d *DB) UpdatedAt(key string) (time.Time, error) {
	var ts string
	err := d.db.QueryRow("SELECT updated_at FROM slots WHERE key = ?", key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, ts)
}

// Memory is an in-process slot store. The zero value is ready to use.
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value under key.
func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slots == nil {
		m.slots = make(map[string][]byte)
	}
	m.slots[key] = append([]byte(nil), value...)
	return nil
}
