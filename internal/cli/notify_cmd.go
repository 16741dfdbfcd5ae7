package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/cli/formatter"
	"github.com/taskflowhq/taskflow/internal/domain"
	"github.com/taskflowhq/taskflow/internal/storage"
)

func newNotifyCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Show due-date notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.refreshNotifications(cmd.Context()); err != nil {
				return err
			}

			visible := app.Notifications.Visible(all)
			if len(visible) == 0 {
				fmt.Println("No notifications.")
				return nil
			}

			now := time.Now()
			for _, n := range visible {
				fmt.Println(renderNotification(n, now))
			}

			total := len(app.Notifications.All())
			if !all && total > len(visible) {
				fmt.Println(formatter.Dim(fmt.Sprintf("…and %d more (use --all)", total-len(visible))))
			}
			if unread := app.Notifications.UnreadCount(); unread > 0 {
				fmt.Println(formatter.Dim(fmt.Sprintf("%d unread", unread)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show every notification, not just the first few")

	cmd.AddCommand(
		newNotifyReadCmd(app),
		newNotifyReadAllCmd(app),
	)

	return cmd
}

func newNotifyReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.refreshNotifications(cmd.Context()); err != nil {
				return err
			}
			if !app.Notifications.MarkRead(args[0]) {
				return fmt.Errorf("notification not found: %q", args[0])
			}
			return app.saveNotifications(cmd.Context())
		},
	}
}

func newNotifyReadAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.refreshNotifications(cmd.Context()); err != nil {
				return err
			}
			app.Notifications.MarkAllRead()
			return app.saveNotifications(cmd.Context())
		},
	}
}

func (a *App) saveNotifications(ctx context.Context) error {
	return a.Slots.Save(ctx, storage.SlotNotifications, a.Notifications.Snapshot())
}

func renderNotification(n domain.Notification, now time.Time) string {
	marker := formatter.StyleHeader.Render("●")
	if n.Read {
		marker = formatter.Dim("○")
	}

	kind := formatter.StyleYellow.Render("due today")
	if n.Kind == domain.NotificationOverdue {
		kind = formatter.StyleRed.Render("overdue")
	}

	// The full id is shown so it can be passed to "notify read".
	return fmt.Sprintf("%s %s  %s  %s %s",
		marker, kind, n.Text,
		formatter.Dim(formatter.HumanTimestamp(n.CreatedAt, now)),
		formatter.Dim(n.ID))
}
