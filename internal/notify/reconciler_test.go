package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflowhq/taskflow/internal/domain"
	"github.com/taskflowhq/taskflow/internal/testutil"
)

var now = time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

func TestReconcile_Synthesis(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTask("late by three", testutil.WithDueDate(now.AddDate(0, 0, -3))),
		testutil.NewTask("late by one", testutil.WithDueDate(now.AddDate(0, 0, -1))),
		testutil.NewTask("due today", testutil.WithDueDate(now)),
		testutil.NewTask("due tomorrow", testutil.WithDueDate(now.AddDate(0, 0, 1))),
		testutil.NewTask("late but done", testutil.Completed(), testutil.WithDueDate(now.AddDate(0, 0, -5))),
		testutil.NewTask("undated"),
	}

	r := NewReconciler()
	r.Reconcile(tasks, now)

	all := r.All()
	require.Len(t, all, 3)

	// Overdue first, most recently overdue leading, then due-today.
	assert.Equal(t, domain.NotificationOverdue, all[0].Kind)
	assert.Equal(t, tasks[1].ID, all[0].TaskID, "one day late outranks three days late")
	assert.Equal(t, tasks[0].ID, all[1].TaskID)
	assert.Equal(t, domain.NotificationToday, all[2].Kind)
	assert.Equal(t, tasks[2].ID, all[2].TaskID)

	for _, n := range all {
		assert.False(t, n.Read, "fresh notifications start unread")
		assert.True(t, n.CreatedAt.Equal(now))
		assert.Equal(t, domain.NotificationID(n.Kind, n.TaskID), n.ID)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTask("late", testutil.WithDueDate(now.AddDate(0, 0, -2))),
		testutil.NewTask("today", testutil.WithDueDate(now)),
	}

	r := NewReconciler()
	r.Reconcile(tasks, now)
	require.True(t, r.MarkRead(domain.NotificationID(domain.NotificationToday, tasks[1].ID)))
	before := r.All()

	r.Reconcile(tasks, now.Add(2*time.Hour))

	assert.Equal(t, before, r.All(), "no task changes means an identical set")
}

func TestReconcile_PreservesReadStateAndCreatedAt(t *testing.T) {
	task := testutil.NewTask("late", testutil.WithDueDate(now.AddDate(0, 0, -1)))
	id := domain.NotificationID(domain.NotificationOverdue, task.ID)

	r := NewReconciler()
	r.Reconcile([]domain.Task{task}, now)
	require.True(t, r.MarkRead(id))

	later := now.Add(26 * time.Hour)
	r.Reconcile([]domain.Task{task}, later)

	all := r.All()
	require.Len(t, all, 1)
	assert.True(t, all[0].Read, "acknowledgment survives reconciliation")
	assert.True(t, all[0].CreatedAt.Equal(now), "original CreatedAt survives")
}

func TestReconcile_PrunesResolvedConditions(t *testing.T) {
	task := testutil.NewTask("late", testutil.WithDueDate(now.AddDate(0, 0, -1)))

	r := NewReconciler()
	r.Reconcile([]domain.Task{task}, now)
	require.Len(t, r.All(), 1)

	t.Run("task completed", func(t *testing.T) {
		done := task
		done.Completed = true
		r.Reconcile([]domain.Task{done}, now)
		assert.Empty(t, r.All())
	})

	t.Run("task deleted", func(t *testing.T) {
		r.Reconcile([]domain.Task{task}, now)
		require.Len(t, r.All(), 1)
		r.Reconcile(nil, now)
		assert.Empty(t, r.All())
	})

	t.Run("date moved forward changes kind", func(t *testing.T) {
		r.Reconcile([]domain.Task{task}, now)
		moved := task
		d := now
		moved.Date = &d
		r.Reconcile([]domain.Task{moved}, now)

		all := r.All()
		require.Len(t, all, 1)
		assert.Equal(t, domain.NotificationToday, all[0].Kind, "overdue entry pruned, today entry created")
		assert.False(t, all[0].Read)
	})
}

func TestReconcile_NewCandidatesPrepend(t *testing.T) {
	old := testutil.NewTask("old alert", testutil.WithDueDate(now.AddDate(0, 0, -1)))

	r := NewReconciler()
	r.Reconcile([]domain.Task{old}, now)

	fresh := testutil.NewTask("fresh alert", testutil.WithDueDate(now))
	r.Reconcile([]domain.Task{old, fresh}, now.Add(time.Hour))

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, fresh.ID, all[0].TaskID, "newest synthesis first")
	assert.Equal(t, old.ID, all[1].TaskID)
}

func TestMarkAllRead_AndUnreadCount(t *testing.T) {
	var tasks []domain.Task
	for i := 0; i < 3; i++ {
		tasks = append(tasks, testutil.NewTask(fmt.Sprintf("late %d", i), testutil.WithDueDate(now.AddDate(0, 0, -1-i))))
	}

	r := NewReconciler()
	r.Reconcile(tasks, now)
	assert.Equal(t, 3, r.UnreadCount())

	r.MarkAllRead()
	assert.Equal(t, 0, r.UnreadCount())
	assert.Len(t, r.All(), 3, "acknowledgment does not affect membership")
}

func TestMarkRead_UnknownID(t *testing.T) {
	r := NewReconciler()
	assert.False(t, r.MarkRead("overdue-ghost"))
}

func TestVisible_Window(t *testing.T) {
	var tasks []domain.Task
	for i := 0; i < 6; i++ {
		tasks = append(tasks, testutil.NewTask(fmt.Sprintf("late %d", i), testutil.WithDueDate(now.AddDate(0, 0, -1-i))))
	}

	r := NewReconciler()
	r.Reconcile(tasks, now)

	assert.Len(t, r.Visible(false), VisibleLimit)
	assert.Len(t, r.Visible(true), 6)
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	task := testutil.NewTask("late", testutil.WithDueDate(now.AddDate(0, 0, -1)))

	r := NewReconciler()
	r.Reconcile([]domain.Task{task}, now)
	require.True(t, r.MarkRead(domain.NotificationID(domain.NotificationOverdue, task.ID)))

	restored := NewReconciler()
	restored.Restore(r.Snapshot())
	assert.Equal(t, r.All(), restored.All())

	// A reconcile after restore still prunes resolved conditions.
	restored.Reconcile(nil, now)
	assert.Empty(t, restored.All())
}
