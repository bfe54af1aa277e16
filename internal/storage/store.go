// Package storage manages the SQLite database holding journal chunks and
// their embeddings.
package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/mfenderov/journal42/internal/storage/migrations"
)

// Store manages the SQLite database for journal chunk storage.
type Store struct {
	db   *sqlx.DB
	path string
}

// NewStore opens (creating if needed) the database at path and brings the
// schema up to date.
func NewStore(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &Store{db: db, path: path}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies the embedded goose migrations.
func (s *Store) migrate() error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(s.db.DB, ".")
}

// SchemaVersion returns the current goose migration version.
func (s *Store) SchemaVersion() (int64, error) {
	return goose.GetDBVersion(s.db.DB)
}

// ListTables returns all table names in the database.
func (s *Store) ListTables() []string {
	var tables []string
	err := s.db.Select(&tables, `
		SELECT name FROM sqlite_master
		WHERE type='table' OR type='virtual table'
		ORDER BY name
	`)
	if err != nil {
		return nil
	}
	return tables
}
