// Package persist stores the on-disk copies of persist.-prefixed
// properties in a sqlite database.
package persist

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS properties (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store is the persisted property store. It implements
// prop.PersistedStore.
type Store struct {
	db *sql.DB
}

// Open creates or opens the persisted property database at path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call on an existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the persisted value for name. found is false when no
// entry exists; a stored empty value returns ("", true, nil).
func (s *Store) Get(name string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM properties WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get persisted [%s]: %w", name, err)
	}
	return value, true, nil
}

// Put stores name=value, replacing any existing entry.
func (s *Store) Put(name, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO properties (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, name, value)
	if err != nil {
		return fmt.Errorf("put persisted [%s]: %w", name, err)
	}
	return nil
}

// Delete removes the entry for name and reports whether an entry was
// actually removed.
func (s *Store) Delete(name string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM properties WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("delete persisted [%s]: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete persisted [%s]: %w", name, err)
	}
	return n > 0, nil
}

// Foreach visits every persisted entry, ordered by name so iteration
// is deterministic across runs.
func (s *Store) Foreach(visit func(name, value string)) error {
	rows, err := s.db.Query(`SELECT name, value FROM properties ORDER BY name ASC`)
	if err != nil {
		return fmt.Errorf("query persisted properties: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return fmt.Errorf("scan persisted property: %w", err)
		}
		visit(name, value)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate persisted properties: %w", err)
	}
	return nil
}
