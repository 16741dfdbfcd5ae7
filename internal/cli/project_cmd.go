package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/cli/formatter"
	"github.com/taskflowhq/taskflow/internal/domain"
	"github.com/taskflowhq/taskflow/internal/stats"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project (id derives from the name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := app.Store.CreateProject(cmd.Context(), args[0], domain.ProjectColor(color))
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s (%s)\n", project.Name, project.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Presentation color: blue, green, purple, orange or pink")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects := app.Store.GetAllProjects()
			tasks := app.Store.GetAllTasks()

			headers := []string{"ID", "NAME", "COLOR", "TASKS", "PENDING"}
			rows := make([][]string, 0, len(projects))
			for i := range projects {
				p := projects[i]
				inProject := stats.ByProject(tasks, p.ID)
				rows = append(rows, []string{
					p.ID,
					formatter.ProjectChip(&p),
					string(p.Color),
					fmt.Sprintf("%d", len(inProject)),
					fmt.Sprintf("%d", len(stats.Pending(inProject))),
				})
			}
			fmt.Println(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}
