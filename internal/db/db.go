// Package db opens the SQLite database that holds the booking collection and
// the per-session reminder state.
package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// BusyTimeout is how long, in milliseconds, a connection waits for another
// gr process to release its lock. Several terminals may run gr against the
// same file; without it the second writer fails at once with SQLITE_BUSY.
const BusyTimeout = 5000

// DefaultPath returns the default database path: ~/.guest-room/bookings.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".guest-room", "bookings.db"), nil
}

// dsn builds the driver connection string. Pragmas go in the DSN so every
// pooled connection gets them, not just the first.
func dsn(path string) string {
	params := url.Values{}
	params.Set("_busy_timeout", fmt.Sprint(BusyTimeout))
	params.Set("_journal_mode", "WAL")
	params.Set("_txlock", "immediate")
	return path + "?" + params.Encode()
}

// Open opens (or creates) the database at path and runs migrations.
// The pool is limited to one connection: a gr command is a short,
// single-threaded process and the whole collection is written at once.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("running migrations: %w (also failed to close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
