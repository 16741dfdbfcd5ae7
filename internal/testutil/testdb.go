package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/taskflowhq/taskflow/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied. The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// CorruptSlot writes unparseable content into a slot, bypassing the
// slot store, to exercise corruption fallbacks.
func CorruptSlot(t *testing.T, database *sql.DB, key string) {
	t.Helper()
	query := `INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := database.Exec(query, key, `{"this is": not json`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		t.Fatalf("failed to corrupt slot %s: %v", key, err)
	}
}
