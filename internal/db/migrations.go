package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
//
// kv holds one string value per (namespace, key). The "local" namespace
// keeps the booking collection; "session/<id>" namespaces keep reminder
// dismissals, which expire at expires_at. A NULL expires_at never expires.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		namespace  TEXT     NOT NULL,
		key        TEXT     NOT NULL,
		value      TEXT     NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		expires_at DATETIME,
		PRIMARY KEY (namespace, key)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_kv_expires_at ON kv(expires_at) WHERE expires_at IS NOT NULL`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
