// Package storage persists named slots: each slot holds one whole JSON
// document, and every save overwrites the previous value entirely.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/taskflowhq/taskflow/internal/db"
)

// Slot keys for persisted application state.
const (
	SlotTasks         = "taskflow_tasks"
	SlotProjects      = "taskflow_projects"
	SlotUser          = "taskflow_user"
	SlotNotifications = "taskflow_notifications"
	SlotSessions      = "taskflow_sessions"
)

// SlotStore reads and writes named JSON slots. It accepts a db.DBTX so
// callers can scope a store to a transaction for multi-slot operations.
type SlotStore struct {
	db db.DBTX
}

// NewSlotStore creates a SlotStore over the given database handle.
func NewSlotStore(dbtx db.DBTX) *SlotStore {
	return &SlotStore{db: dbtx}
}

// Load reads a slot into dest and reports whether it succeeded. A
// missing slot leaves dest untouched and returns false. A slot that no
// longer decodes does the same — corruption degrades to the caller's
// fallback, it never fails the caller.
func (s *SlotStore) Load(ctx context.Context, key string, dest any) bool {
	var raw string
	row := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key)
	if err := row.Scan(&raw); err != nil {
		if err != sql.ErrNoRows {
			log.Warn().Err(err).Str("slot", key).Msg("reading slot")
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Warn().Err(err).Str("slot", key).Msg("slot holds undecodable data, falling back to defaults")
		return false
	}
	return true
}

// Save serializes value and overwrites the slot's prior content
// entirely. There is no partial merge.
func (s *SlotStore) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding slot %s: %w", key, err)
	}

	query := `INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, string(raw), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	return nil
}

// Delete erases the slot. Deleting a slot that does not exist is not
// an error.
func (s *SlotStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting slot %s: %w", key, err)
	}
	return nil
}
