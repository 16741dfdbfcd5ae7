package db

import (
	"database/sql"
	"fmt"
)

// Persisted state is a set of named slots holding whole JSON documents.
// Every save overwrites the slot's entire value; there is no per-row
// schema to migrate beyond the table itself.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
