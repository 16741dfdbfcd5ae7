package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskflowhq/taskflow/internal/cli/formatter"
	"github.com/taskflowhq/taskflow/internal/domain"
	"github.com/taskflowhq/taskflow/internal/stats"
	"github.com/taskflowhq/taskflow/internal/store"
)

const dateLayout = "2006-01-02"

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
		newTaskEditCmd(app),
		newTaskRemoveCmd(app),
		newTaskSearchCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, description, date, timeOfDay, priority, project string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a new task",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				title = args[0]
			}

			// With no title and a terminal attached, collect the
			// fields through a form instead.
			if title == "" && app.interactive() {
				var err error
				title, description, date, timeOfDay, priority, project, err = runTaskForm(app)
				if err != nil {
					return err
				}
			}

			input := store.TaskInput{
				Title:       title,
				Description: description,
				TimeOfDay:   timeOfDay,
				Priority:    domain.Priority(priority),
				Project:     project,
			}
			if date != "" {
				d, err := time.Parse(dateLayout, date)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
				}
				input.Date = &d
			}

			task, err := app.Store.CreateTask(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Printf("Created task %s: %s\n", formatter.TruncID(task.ID), task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "Task description")
	cmd.Flags().StringVar(&date, "date", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "Due time of day (HH:MM)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: high, medium or low")
	cmd.Flags().StringVar(&project, "project", "", "Project id")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project string
	var completed, pending, overdue bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := app.Store.GetAllTasks()
			now := time.Now()

			switch {
			case project != "":
				tasks = stats.ByProject(tasks, project)
			case completed:
				tasks = stats.Completed(tasks)
			case pending:
				tasks = stats.Pending(tasks)
			case overdue:
				var late []domain.Task
				for i := range tasks {
					if tasks[i].Overdue(now) {
						late = append(late, tasks[i])
					}
				}
				tasks = late
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}
			fmt.Println(renderTaskTable(app, tasks, now))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only tasks in this project")
	cmd.Flags().BoolVar(&completed, "completed", false, "Only completed tasks")
	cmd.Flags().BoolVar(&pending, "pending", false, "Only pending tasks")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only overdue tasks")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}
			task, err := app.Store.ToggleComplete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("task not found: %q", args[0])
			}
			if task.Completed {
				fmt.Printf("Completed: %s\n", task.Title)
			} else {
				fmt.Printf("Reopened: %s\n", task.Title)
			}
			return nil
		},
	}
}

func newTaskEditCmd(app *App) *cobra.Command {
	var title, description, date, timeOfDay, priority, project string
	var clearDate bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}

			patch := store.TaskPatch{ClearDate: clearDate}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("time") {
				patch.TimeOfDay = &timeOfDay
			}
			if cmd.Flags().Changed("priority") {
				p := domain.Priority(priority)
				if !domain.ValidPriorities[p] {
					return fmt.Errorf("invalid priority %q", priority)
				}
				patch.Priority = &p
			}
			if cmd.Flags().Changed("project") {
				patch.Project = &project
			}
			if cmd.Flags().Changed("date") {
				d, err := time.Parse(dateLayout, date)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
				}
				patch.Date = &d
			}

			task, err := app.Store.UpdateTask(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("task not found: %q", args[0])
			}
			fmt.Printf("Updated task %s\n", formatter.TruncID(task.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "desc", "", "New description")
	cmd.Flags().StringVar(&date, "date", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDate, "clear-date", false, "Remove the due date")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "New due time of day (HH:MM)")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&project, "project", "", "New project id")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}

			if !force && app.interactive() {
				task := app.Store.GetTaskByID(id)
				ok, err := runConfirm(fmt.Sprintf("Delete task %q?", task.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
			}

			removed, err := app.Store.DeleteTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("task not found: %q", args[0])
			}
			fmt.Println("Task deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	return cmd
}

func newTaskSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search tasks by title and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hits := stats.Search(app.Store.GetAllTasks(), args[0])
			if len(hits) == 0 {
				fmt.Println("No matching tasks.")
				return nil
			}
			fmt.Println(renderTaskTable(app, hits, time.Now()))
			return nil
		},
	}
}

func renderTaskTable(app *App, tasks []domain.Task, now time.Time) string {
	headers := []string{"ID", "", "TITLE", "PRIORITY", "DUE", "PROJECT", "TRACKED"}
	rows := make([][]string, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]

		check := " "
		if t.Completed {
			check = formatter.StyleGreen.Render("✓")
		}

		due := ""
		if t.Date != nil {
			due = formatter.HumanDate(*t.Date, now)
			if t.TimeOfDay != "" {
				due += " · " + formatter.FormatTimeOfDay(t.TimeOfDay)
			}
			if t.Overdue(now) {
				due = formatter.StyleRed.Render("Overdue · " + due)
			}
		}

		tracked := ""
		if t.TrackedTime > 0 {
			tracked = formatter.FormatDuration(t.TrackedTime)
		}

		rows = append(rows, []string{
			formatter.TruncID(t.ID),
			check,
			t.Title,
			formatter.PriorityBadge(t.Priority),
			due,
			formatter.ProjectChip(app.Store.GetProjectByID(t.Project)),
			tracked,
		})
	}
	return formatter.RenderTable(headers, rows)
}
