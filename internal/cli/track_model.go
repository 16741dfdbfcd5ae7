package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflowhq/taskflow/internal/cli/formatter"
	"github.com/taskflowhq/taskflow/internal/domain"
	"github.com/taskflowhq/taskflow/internal/tracker"
)

type trackMode int

const (
	trackModePick trackMode = iota
	trackModeWatch
)

// clockTickMsg redraws the stopwatch once per second. The tracker keeps
// its own time; this tick only refreshes the view.
type clockTickMsg struct{}

// sessionSavedMsg reports the outcome of committing a stopped session.
type sessionSavedMsg struct {
	session *domain.TimerSession
	err     error
}

// trackModel is the stopwatch TUI: a pending-task picker followed by a
// running clock bound to the chosen task.
type trackModel struct {
	app   *App
	mode  trackMode
	tasks []domain.Task

	cursor int
	status string
	err    error

	quitting bool
}

func newTrackModel(app *App, pending []domain.Task) *trackModel {
	m := &trackModel{app: app, tasks: pending}
	// A session survives from a previous run only in-process; a fresh
	// CLI invocation always starts at the picker.
	if app.Tracker.State() != tracker.StateIdle {
		m.mode = trackModeWatch
	}
	return m
}

func (m *trackModel) Init() tea.Cmd {
	if m.mode == trackModeWatch {
		return clockTick()
	}
	return nil
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return clockTickMsg{}
	})
}

func (m *trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clockTickMsg:
		if m.mode == trackModeWatch && !m.quitting {
			return m, clockTick()
		}
		return m, nil

	case sessionSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.session != nil {
			m.status = fmt.Sprintf("Logged %s on %q.",
				formatter.FormatDuration(msg.session.Duration), msg.session.TaskTitle)
		} else {
			m.status = "Nothing to log."
		}
		m.mode = trackModePick
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.app.Tracker.Reset()
			m.quitting = true
			return m, tea.Quit
		}
		if m.mode == trackModePick {
			return m.updatePick(msg)
		}
		return m.updateWatch(msg)
	}
	return m, nil
}

func (m *trackModel) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.tasks) {
			if err := m.app.Tracker.Start(m.tasks[m.cursor].ID); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.status = ""
			m.mode = trackModeWatch
			return m, clockTick()
		}
	}
	return m, nil
}

func (m *trackModel) updateWatch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "p":
		switch m.app.Tracker.State() {
		case tracker.StateRunning:
			if err := m.app.Tracker.Pause(); err != nil {
				m.err = err
			}
		case tracker.StatePaused:
			if err := m.app.Tracker.Resume(); err != nil {
				m.err = err
			}
		}
	case "s", "enter":
		return m, m.stopAndSave()
	case "r":
		taskID := m.app.Tracker.TaskID()
		m.app.Tracker.Reset()
		if err := m.app.Tracker.Start(taskID); err != nil {
			m.err = err
			m.mode = trackModePick
		}
	case "q", "esc":
		// Leaving the stopwatch discards the unsaved session.
		m.app.Tracker.Reset()
		m.status = ""
		m.mode = trackModePick
	}
	return m, nil
}

func (m *trackModel) stopAndSave() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		session, err := app.Tracker.Stop(ctx)
		if err != nil {
			return sessionSavedMsg{err: err}
		}
		if session != nil {
			if err := app.saveSessions(ctx); err != nil {
				return sessionSavedMsg{err: err}
			}
		}
		return sessionSavedMsg{session: session}
	}
}

func (m *trackModel) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == trackModePick {
		return m.viewPick()
	}
	return m.viewWatch()
}

func (m *trackModel) viewPick() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.Header("Track time") + "\n\n")

	if len(m.tasks) == 0 {
		b.WriteString("  " + formatter.Dim("No pending tasks to track.") + "\n")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		line := fmt.Sprintf("  %s%s %s", cursor, formatter.PriorityBadge(t.Priority), t.Title)
		if t.TrackedTime > 0 {
			line += " " + formatter.Dim("("+formatter.FormatDuration(t.TrackedTime)+" tracked)")
		}
		b.WriteString(line + "\n")
	}

	if m.status != "" {
		b.WriteString("\n  " + formatter.StyleGreen.Render(m.status) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n  " + renderHelp(m.pickBindings()) + "\n")
	return b.String()
}

func (m *trackModel) pickBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (m *trackModel) watchBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/resume")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop & save")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
	}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return formatter.Dim(strings.Join(parts, " · "))
}

func (m *trackModel) viewWatch() string {
	title := m.taskTitle()
	clock := formatter.FormatClock(m.app.Tracker.Elapsed())

	var stateLabel string
	switch m.app.Tracker.State() {
	case tracker.StateRunning:
		stateLabel = formatter.StyleGreen.Render("● recording")
	case tracker.StatePaused:
		stateLabel = formatter.StyleYellow.Render("⏸ paused")
	default:
		stateLabel = formatter.Dim("idle")
	}

	clockStyle := lipgloss.NewStyle().Foreground(formatter.ColorFg).Bold(true)
	content := fmt.Sprintf("%s\n\n%s  %s",
		formatter.Bold(title),
		clockStyle.Render(clock),
		stateLabel,
	)

	var b strings.Builder
	b.WriteString("\n" + formatter.RenderBox("Stopwatch", content) + "\n")
	if m.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n  " + renderHelp(m.watchBindings()) + "\n")
	return b.String()
}

func (m *trackModel) taskTitle() string {
	if task := m.app.Store.GetTaskByID(m.app.Tracker.TaskID()); task != nil {
		return task.Title
	}
	return formatter.Dim("(deleted task)")
}
