package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/auth"
	"github.com/taskflowhq/taskflow/internal/domain"
	"github.com/taskflowhq/taskflow/internal/notify"
	"github.com/taskflowhq/taskflow/internal/storage"
	"github.com/taskflowhq/taskflow/internal/store"
	"github.com/taskflowhq/taskflow/internal/tracker"
)

// Identity is the provider surface the CLI needs: the consumed
// Provider interface plus local sign-in.
type Identity interface {
	auth.Provider
	SignIn(ctx context.Context, name, email string) (*auth.User, error)
}

// App holds references to the core components used by CLI commands.
type App struct {
	Store         *store.Store
	Notifications *notify.Reconciler
	Tracker       *tracker.Tracker
	Identity      Identity
	Slots         *storage.SlotStore

	// IsInteractive reports whether stdin is a terminal; interactive
	// forms and confirms are skipped when it is not.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// refreshNotifications restores the logged notification state, folds
// in a fresh reconciliation against the current task snapshot, and
// logs the result back.
func (a *App) refreshNotifications(ctx context.Context) error {
	var saved []domain.Notification
	a.Slots.Load(ctx, storage.SlotNotifications, &saved)
	a.Notifications.Restore(saved)
	a.Notifications.Reconcile(a.Store.GetAllTasks(), time.Now())
	return a.Slots.Save(ctx, storage.SlotNotifications, a.Notifications.Snapshot())
}

// NewRootCmd creates the top-level "taskflow" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskflow",
		Short:         "Personal task manager with projects, analytics and time tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTaskCmd(app),
		newProjectCmd(app),
		newStatsCmd(app),
		newWeekCmd(app),
		newPrioritiesCmd(app),
		newNotifyCmd(app),
		newTrackCmd(app),
		newAccountCmd(app),
		newResetCmd(app),
	)

	return root
}

// resolveTaskID accepts a full task id or an unambiguous prefix.
func resolveTaskID(app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	tasks := app.Store.GetAllTasks()
	for i := range tasks {
		if tasks[i].ID == input {
			return input, nil
		}
	}

	var matches []string
	for i := range tasks {
		if strings.HasPrefix(tasks[i].ID, input) {
			matches = append(matches, tasks[i].ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
