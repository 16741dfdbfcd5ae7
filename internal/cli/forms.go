package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflowhq/taskflow/internal/cli/formatter"
	"github.com/taskflowhq/taskflow/internal/domain"
)

// taskflowHuhTheme returns a huh theme using the existing palette.
func taskflowHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("want YYYY-MM-DD")
	}
	return nil
}

func validateOptionalClock(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("want HH:MM")
	}
	return nil
}

// runTaskForm collects the fields for a new task interactively.
func runTaskForm(app *App) (title, description, date, timeOfDay, priority, project string, err error) {
	projectOpts := make([]huh.Option[string], 0, 4)
	for _, p := range app.Store.GetAllProjects() {
		projectOpts = append(projectOpts, huh.NewOption(p.Name, p.ID))
	}

	priority = string(domain.PriorityMedium)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs doing?").
				Value(&title).
				Validate(validateRequired),
			huh.NewInput().
				Title("Description (optional)").
				Value(&description),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Due date (YYYY-MM-DD, blank for none)").
				Placeholder("2026-06-30").
				Value(&date).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Due time (HH:MM, blank for none)").
				Placeholder("14:30").
				Value(&timeOfDay).
				Validate(validateOptionalClock),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("High", string(domain.PriorityHigh)),
					huh.NewOption("Medium", string(domain.PriorityMedium)),
					huh.NewOption("Low", string(domain.PriorityLow)),
				).
				Value(&priority),
			huh.NewSelect[string]().
				Title("Project").
				Options(projectOpts...).
				Value(&project),
		),
	).WithTheme(taskflowHuhTheme()).WithShowHelp(false)

	err = form.Run()
	return
}

// runConfirm asks a yes/no question, defaulting to no.
func runConfirm(title string) (bool, error) {
	var result bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&result),
		),
	).WithTheme(taskflowHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return false, err
	}
	return result, nil
}
