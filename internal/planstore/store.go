// Package planstore persists plan documents. Each plan is a single JSON
// document row; grading writes go through optimistic-versioned transactions
// so concurrent graders serialize instead of losing updates.
//
// Two drivers are supported: SQLite (the default, pure Go) for local and
// single-tenant setups, and Postgres for server deployments.
package planstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Database drivers.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store is a plan document store over a SQL database.
type Store struct {
	db     *sqlx.DB
	driver string

	// staleReads makes the next n transactional reads report an out-of-date
	// version, as if a concurrent writer committed while fn ran; tests drive
	// the optimistic-retry path with it.
	staleReads int
}

// Open connects to the database, applies driver tuning, and ensures the
// schema exists.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, driver: driver}
	if driver == DriverSQLite {
		if err := s.applyPragmas(); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
		// SQLite serializes writers; one connection avoids busy errors.
		db.SetMaxOpenConns(1)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// applyPragmas configures SQLite for reliable single-writer performance.
func (s *Store) applyPragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates the plans table if needed. The document column holds the
// serialized plan JSON; version backs the optimistic concurrency check.
func (s *Store) migrate() error {
	ddl := `CREATE TABLE IF NOT EXISTS plans (
		id         TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		version    INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("create plans table: %w", err)
	}
	return nil
}

// DefaultDBPath resolves the SQLite database path in priority order:
// 1. GLOSSA_DB environment variable
// 2. $XDG_DATA_HOME/glossa/glossa.db
// 3. ~/.local/share/glossa/glossa.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("GLOSSA_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "glossa", "glossa.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
