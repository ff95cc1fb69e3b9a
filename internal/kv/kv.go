// Package kv provides the key/value stores that hold the persisted booking
// collection and the per-session reminder dismissals.
package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LocalNamespace holds values that survive restarts.
const LocalNamespace = "local"

// SQLite is a namespaced key/value store backed by the kv table.
// Values written with a non-zero TTL stop being visible once they expire.
type SQLite struct {
	db        *sql.DB
	namespace string
	ttl       time.Duration
	now       func() time.Time
}

// NewSQLite creates a durable store scoped to namespace.
func NewSQLite(db *sql.DB, namespace string) *SQLite {
	return &SQLite{db: db, namespace: namespace, now: time.Now}
}

// NewSession creates a store scoped to one session. Every write extends the
// value's lifetime to ttl from now; a zero ttl never expires.
func NewSession(db *sql.DB, sessionID string, ttl time.Duration) *SQLite {
	return &SQLite{db: db, namespace: "session/" + sessionID, ttl: ttl, now: time.Now}
}

// Namespace returns the namespace the store reads and writes.
func (s *SQLite) Namespace() string {
	return s.namespace
}

// Get returns the value stored under key and whether it was present.
func (s *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM kv
		 WHERE namespace = ? AND key = ? AND (expires_at IS NULL OR expires_at > ?)`,
		s.namespace, key, s.now().UTC(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s/%s: %w", s.namespace, key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLite) Set(key, value string) error {
	var expiresAt interface{}
	if s.ttl > 0 {
		expiresAt = s.now().UTC().Add(s.ttl)
	}

	if _, err := s.db.Exec(
		`INSERT INTO kv (namespace, key, value, expires_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (namespace, key) DO UPDATE SET
		     value = excluded.value,
		     expires_at = excluded.expires_at,
		     updated_at = CURRENT_TIMESTAMP`,
		s.namespace, key, value, expiresAt,
	); err != nil {
		return fmt.Errorf("writing %s/%s: %w", s.namespace, key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SQLite) Delete(key string) error {
	if _, err := s.db.Exec(
		"DELETE FROM kv WHERE namespace = ? AND key = ?",
		s.namespace, key,
	); err != nil {
		return fmt.Errorf("deleting %s/%s: %w", s.namespace, key, err)
	}
	return nil
}

// Cleanup removes expired values from every namespace and reports how many
// were deleted.
func Cleanup(db *sql.DB, now time.Time) (int64, error) {
	result, err := db.Exec(
		"DELETE FROM kv WHERE expires_at IS NOT NULL AND expires_at <= ?",
		now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("cleaning up expired values: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}
