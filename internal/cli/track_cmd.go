package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/cli/formatter"
	"github.com/taskflowhq/taskflow/internal/domain"
	"github.com/taskflowhq/taskflow/internal/stats"
	"github.com/taskflowhq/taskflow/internal/storage"
)

// saveSessions logs the tracker's session history to its slot.
func (a *App) saveSessions(ctx context.Context) error {
	return a.Slots.Save(ctx, storage.SlotSessions, a.Tracker.Sessions())
}

// restoreSessions loads previously logged sessions into the tracker.
func (a *App) restoreSessions(ctx context.Context) {
	var sessions []domain.TimerSession
	if a.Slots.Load(ctx, storage.SlotSessions, &sessions) {
		a.Tracker.RestoreSessions(sessions)
	}
}

func newTrackCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Track time with a stopwatch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the stopwatch needs an interactive terminal; use \"track log\" to view sessions")
			}
			app.restoreSessions(cmd.Context())

			pending := stats.Pending(app.Store.GetAllTasks())
			model := newTrackModel(app, pending)
			_, err := tea.NewProgram(model).Run()
			return err
		},
	}
	cmd.AddCommand(newTrackLogCmd(app))
	return cmd
}

func newTrackLogCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show logged stopwatch sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.restoreSessions(cmd.Context())
			sessions := app.Tracker.Sessions()

			now := time.Now()
			if !all {
				today := domain.StartOfDay(now)
				var todays []domain.TimerSession
				for _, s := range sessions {
					if !s.Timestamp.Before(today) {
						todays = append(todays, s)
					}
				}
				sessions = todays
			}

			if len(sessions) == 0 {
				fmt.Println(formatter.Dim("No sessions logged."))
				return nil
			}

			fmt.Println(formatter.Header("Time log"))
			rows := make([][]string, 0, len(sessions))
			var total int
			for _, s := range sessions {
				total += s.Duration
				rows = append(rows, []string{
					formatter.HumanTimestamp(s.Timestamp, now),
					s.TaskTitle,
					formatter.FormatDuration(s.Duration),
				})
			}
			fmt.Println(formatter.RenderTable([]string{"WHEN", "TASK", "DURATION"}, rows))
			fmt.Println(formatter.Dim("Total: " + formatter.FormatDuration(total)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include sessions from previous days")
	return cmd
}
