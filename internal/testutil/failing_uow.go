package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taskflowhq/taskflow/internal/db"
)

// FailOnNthExecUoW is a test UoW that injects an error on the Nth
// ExecContext call within a transaction. It drives rollback tests for
// multi-slot operations such as the bulk user-data clear: when one of
// the slot erasures fails, everything must roll back.
//
// ExecContext calls are counted starting at 1. Reads (QueryContext,
// QueryRowContext) pass through uncounted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	faulty := &execCounter{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, faulty); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

// execCounter wraps a transaction, counting writes until the
// configured one, which it fails instead of forwarding. The unit of
// work runs the callback on a single goroutine, so a plain counter
// suffices.
type execCounter struct {
	db.DBTX
	calls  int
	failOn int
	err    error
}

func (c *execCounter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.calls++
	if c.calls == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
