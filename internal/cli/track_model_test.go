package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskflowhq/taskflow/internal/auth"
	"github.com/taskflowhq/taskflow/internal/notify"
	"github.com/taskflowhq/taskflow/internal/stats"
	"github.com/taskflowhq/taskflow/internal/storage"
	"github.com/taskflowhq/taskflow/internal/store"
	"github.com/taskflowhq/taskflow/internal/teatest"
	"github.com/taskflowhq/taskflow/internal/testutil"
	"github.com/taskflowhq/taskflow/internal/tracker"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	slots := storage.NewSlotStore(database)
	s := store.New(slots, testutil.NewTestUoW(database))
	require.NoError(t, s.Reload(context.Background()))

	return &App{
		Store:         s,
		Notifications: notify.NewReconciler(),
		Tracker:       tracker.New(s),
		Identity:      auth.NewLocalProvider(context.Background(), slots),
		Slots:         slots,
		IsInteractive: func() bool { return true },
	}
}

func newTrackDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	pending := stats.Pending(app.Store.GetAllTasks())
	d := teatest.New(t, newTrackModel(app, pending))
	d.DrainInit()
	return d
}

func TestTrackModelPickerListsPendingTasks(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	_, err := app.Store.CreateTask(ctx, store.TaskInput{Title: "Write report"})
	require.NoError(t, err)
	done, err := app.Store.CreateTask(ctx, store.TaskInput{Title: "Old chore"})
	require.NoError(t, err)
	_, err = app.Store.ToggleComplete(ctx, done.ID)
	require.NoError(t, err)

	d := newTrackDriver(t, app)
	view := d.View()
	require.Contains(t, view, "Write report")
	require.NotContains(t, view, "Old chore")
}

func TestTrackModelStartsTrackingOnEnter(t *testing.T) {
	app := newTestApp(t)
	task, err := app.Store.CreateTask(context.Background(), store.TaskInput{Title: "Deep work"})
	require.NoError(t, err)

	d := newTrackDriver(t, app)
	d.PressEnter()

	require.Equal(t, tracker.StateRunning, app.Tracker.State())
	require.Equal(t, task.ID, app.Tracker.TaskID())
	require.Contains(t, d.View(), "Deep work")
	require.Contains(t, d.View(), "00:00:00")
	require.Contains(t, d.View(), "recording")
}

func TestTrackModelPauseAndResume(t *testing.T) {
	app := newTestApp(t)
	_, err := app.Store.CreateTask(context.Background(), store.TaskInput{Title: "Deep work"})
	require.NoError(t, err)

	d := newTrackDriver(t, app)
	d.PressEnter()

	d.PressKey(' ')
	require.Equal(t, tracker.StatePaused, app.Tracker.State())
	require.Contains(t, d.View(), "paused")

	d.PressKey('p')
	require.Equal(t, tracker.StateRunning, app.Tracker.State())
}

func TestTrackModelStopReturnsToPicker(t *testing.T) {
	app := newTestApp(t)
	_, err := app.Store.CreateTask(context.Background(), store.TaskInput{Title: "Deep work"})
	require.NoError(t, err)

	d := newTrackDriver(t, app)
	d.PressEnter()
	d.PressKey('s')

	// No full second elapsed, so nothing was committed.
	require.Equal(t, tracker.StateIdle, app.Tracker.State())
	require.Contains(t, d.View(), "Nothing to log.")
	require.Contains(t, d.View(), "TRACK TIME")
	require.Empty(t, app.Tracker.Sessions())
}

func TestTrackModelEscDiscardsSession(t *testing.T) {
	app := newTestApp(t)
	_, err := app.Store.CreateTask(context.Background(), store.TaskInput{Title: "Deep work"})
	require.NoError(t, err)

	d := newTrackDriver(t, app)
	d.PressEnter()
	d.PressEsc()

	require.Equal(t, tracker.StateIdle, app.Tracker.State())
	require.Contains(t, d.View(), "TRACK TIME")
}

func TestTrackModelQuitsFromPicker(t *testing.T) {
	app := newTestApp(t)
	d := newTrackDriver(t, app)
	d.PressKey('q')
	require.True(t, d.Quitting)
}
