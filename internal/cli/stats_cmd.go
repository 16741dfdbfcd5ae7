package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/cli/formatter"
	"github.com/taskflowhq/taskflow/internal/stats"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := stats.Compute(app.Store.GetAllTasks(), time.Now())

			var b strings.Builder
			fmt.Fprintf(&b, "%-12s %d\n", "Total", s.Total)
			fmt.Fprintf(&b, "%-12s %d\n", "Completed", s.Completed)
			fmt.Fprintf(&b, "%-12s %d\n", "Pending", s.Pending)
			fmt.Fprintf(&b, "%-12s %s\n", "Overdue", overdueCell(s.Overdue))
			fmt.Fprintf(&b, "%-12s %s\n", "Tracked", formatter.FormatDuration(s.TotalTrackedSeconds))
			fmt.Fprintf(&b, "\n%s %s", formatter.Dim("Productivity"),
				formatter.RenderProgress(float64(s.Productivity)/100, 20))

			fmt.Println(formatter.RenderBox("Statistics", b.String()))
			return nil
		},
	}
}

func overdueCell(n int) string {
	if n > 0 {
		return formatter.StyleRed.Render(fmt.Sprintf("%d", n))
	}
	return "0"
}

func newWeekCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show tasks created and completed over the last 7 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			week := stats.Weekly(app.Store.GetAllTasks(), time.Now())

			max := 0
			for _, day := range week {
				if day.Created > max {
					max = day.Created
				}
			}

			headers := []string{"DAY", "CREATED", "", "COMPLETED"}
			rows := make([][]string, 0, len(week))
			for _, day := range week {
				rows = append(rows, []string{
					day.Label,
					fmt.Sprintf("%d", day.Created),
					formatter.StyleBlue.Render(formatter.SparkBar(day.Created, max, 12)),
					fmt.Sprintf("%d", day.Completed),
				})
			}
			fmt.Println(formatter.Header("Last 7 days"))
			fmt.Println(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newPrioritiesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "priorities",
		Short: "Show the task count per priority",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := stats.PriorityDistribution(app.Store.GetAllTasks())
			total := d.High + d.Medium + d.Low

			row := func(label string, count int, style func(string) string) string {
				pct := 0.0
				if total > 0 {
					pct = float64(count) / float64(total)
				}
				return fmt.Sprintf("%-8s %3d  %s", style(label), count,
					formatter.RenderProgress(pct, 16))
			}

			fmt.Println(formatter.Header("Priorities"))
			fmt.Println(row("high", d.High, func(s string) string { return formatter.StyleRed.Render(s) }))
			fmt.Println(row("medium", d.Medium, func(s string) string { return formatter.StyleYellow.Render(s) }))
			fmt.Println(row("low", d.Low, func(s string) string { return formatter.StyleGreen.Render(s) }))
			return nil
		},
	}
}
