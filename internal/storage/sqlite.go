package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// LocalStore keeps client state in a single SQLite file under the user's
// state directory. One table, plain key-value rows.
type LocalStore struct {
	db *sql.DB
}

// Open opens (or creates) the state file and makes sure the schema exists
func Open(dbPath string) (*LocalStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}

	store := &LocalStore{db: db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *LocalStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS local_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create state schema: %w", err)
	}
	return nil
}

// Get returns the stored value for a key, or ErrNotFound
func (s *LocalStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// Set writes a single key, replacing any previous value
func (s *LocalStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO local_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// SetMany writes all entries inside one transaction so a crash or error can
// never leave only some of them on disk
func (s *LocalStore) SetMany(entries map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin state write: %w", err)
	}

	for key, value := range entries {
		if _, err := tx.Exec(
			`INSERT INTO local_state (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to write key %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state write: %w", err)
	}
	return nil
}

// Delete removes the given keys in one transaction. Keys that were never
// written are not an error.
func (s *LocalStore) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin state delete: %w", err)
	}

	for _, key := range keys {
		if _, err := tx.Exec(`DELETE FROM local_state WHERE key = ?`, key); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete key %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state delete: %w", err)
	}
	return nil
}

// Close closes the underlying database handle
func (s *LocalStore) Close() error {
	return s.db.Close()
}
