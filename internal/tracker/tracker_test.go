package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflowhq/taskflow/internal/storage"
	"github.com/taskflowhq/taskflow/internal/store"
	"github.com/taskflowhq/taskflow/internal/testutil"
)

// newTestTracker returns a tracker whose scheduled tick never fires on
// its own (the tests drive ticks directly), over a store with one
// pending task.
func newTestTracker(t *testing.T) (*Tracker, *store.Store, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	s := store.New(storage.NewSlotStore(database), testutil.NewTestUoW(database))
	require.NoError(t, s.Reload(context.Background()))

	task, err := s.CreateTask(context.Background(), store.TaskInput{Title: "Deep work"})
	require.NoError(t, err)

	tr := New(s)
	tr.interval = time.Hour
	return tr, s, task.ID
}

// advance fires n ticks as the scheduled callback would.
func advance(tr *Tracker, n int) {
	for i := 0; i < n; i++ {
		tr.mu.Lock()
		gen := tr.gen
		tr.mu.Unlock()
		tr.tick(gen)
	}
}

func TestStart_Validation(t *testing.T) {
	tr, _, taskID := newTestTracker(t)

	assert.ErrorIs(t, tr.Start(""), ErrNoTask)
	assert.ErrorIs(t, tr.Start("no-such-task"), ErrUnknownTask)
	assert.Equal(t, StateIdle, tr.State())

	require.NoError(t, tr.Start(taskID))
	assert.Equal(t, StateRunning, tr.State())
	assert.ErrorIs(t, tr.Start(taskID), ErrAlreadyRunning)
}

func TestStop_CommitsElapsedTime(t *testing.T) {
	tr, s, taskID := newTestTracker(t)

	require.NoError(t, tr.Start(taskID))
	advance(tr, 65)
	assert.Equal(t, 65, tr.Elapsed())

	session, err := tr.Stop(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, taskID, session.TaskID)
	assert.Equal(t, "Deep work", session.TaskTitle)
	assert.Equal(t, 65, session.Duration)

	task := s.GetTaskByID(taskID)
	require.NotNil(t, task)
	assert.Equal(t, 65, task.TrackedTime)

	assert.Equal(t, StateIdle, tr.State())
	assert.Zero(t, tr.Elapsed())
	assert.Empty(t, tr.TaskID())
	require.Len(t, tr.Sessions(), 1)
}

func TestStop_IsAdditive(t *testing.T) {
	tr, s, taskID := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.Start(taskID))
	advance(tr, 40)
	_, err := tr.Stop(ctx)
	require.NoError(t, err)

	require.NoError(t, tr.Start(taskID))
	advance(tr, 20)
	_, err = tr.Stop(ctx)
	require.NoError(t, err)

	assert.Equal(t, 60, s.GetTaskByID(taskID).TrackedTime, "commits accumulate, not overwrite")
	assert.Len(t, tr.Sessions(), 2)
}

func TestPauseResume_KeepsAccumulatedTime(t *testing.T) {
	tr, s, taskID := newTestTracker(t)

	require.NoError(t, tr.Start(taskID))
	advance(tr, 30)
	require.NoError(t, tr.Pause())
	assert.Equal(t, StatePaused, tr.State())
	assert.Equal(t, 30, tr.Elapsed(), "pause stops the clock, not the accumulated value")

	// A stale tick from before the pause must not fire.
	tr.tick(0)
	assert.Equal(t, 30, tr.Elapsed())

	require.NoError(t, tr.Resume())
	advance(tr, 15)

	session, err := tr.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 45, session.Duration)
	assert.Equal(t, 45, s.GetTaskByID(taskID).TrackedTime)
}

func TestStart_ResumesFromPaused(t *testing.T) {
	tr, _, taskID := newTestTracker(t)

	require.NoError(t, tr.Start(taskID))
	advance(tr, 5)
	require.NoError(t, tr.Pause())

	// Re-entering through Start with the bound task resumes.
	require.NoError(t, tr.Start(taskID))
	assert.Equal(t, StateRunning, tr.State())
	assert.Equal(t, 5, tr.Elapsed())
}

func TestStart_RejectsDifferentTaskWhilePaused(t *testing.T) {
	tr, s, taskID := newTestTracker(t)

	other, err := s.CreateTask(context.Background(), store.TaskInput{Title: "Other"})
	require.NoError(t, err)

	require.NoError(t, tr.Start(taskID))
	require.NoError(t, tr.Pause())
	assert.ErrorIs(t, tr.Start(other.ID), ErrSessionActive)
}

func TestPause_OnlyFromRunning(t *testing.T) {
	tr, _, taskID := newTestTracker(t)

	assert.ErrorIs(t, tr.Pause(), ErrNotRunning)

	require.NoError(t, tr.Start(taskID))
	require.NoError(t, tr.Pause())
	assert.ErrorIs(t, tr.Pause(), ErrNotRunning)
}

func TestReset_DiscardsWithoutCommit(t *testing.T) {
	tr, s, taskID := newTestTracker(t)

	require.NoError(t, tr.Start(taskID))
	advance(tr, 30)
	tr.Reset()

	assert.Equal(t, StateIdle, tr.State())
	assert.Zero(t, tr.Elapsed())
	assert.Zero(t, s.GetTaskByID(taskID).TrackedTime, "reset must not commit")
	assert.Empty(t, tr.Sessions(), "reset creates no session")

	// The cancelled generation's tick is a no-op.
	tr.tick(0)
	assert.Zero(t, tr.Elapsed())
}

func TestStop_WithZeroElapsed(t *testing.T) {
	tr, s, taskID := newTestTracker(t)

	require.NoError(t, tr.Start(taskID))
	session, err := tr.Stop(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session, "nothing accumulated means no session")
	assert.Zero(t, s.GetTaskByID(taskID).TrackedTime)

	// Stop while idle is a no-op, not an error.
	session, err = tr.Stop(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestStop_TaskDeletedMidSession(t *testing.T) {
	tr, s, taskID := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.Start(taskID))
	advance(tr, 10)

	removed, err := s.DeleteTask(ctx, taskID)
	require.NoError(t, err)
	require.True(t, removed)

	session, err := tr.Stop(ctx)
	require.NoError(t, err)
	require.NotNil(t, session, "the session log keeps its record")
	assert.Equal(t, "Deep work", session.TaskTitle, "title was snapshotted at start")
}
