package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflowhq/taskflow/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityStyle returns the style for a task priority.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityLow:
		return StyleGreen
	default:
		return StyleYellow
	}
}

// PriorityBadge returns a colored priority marker such as "● high".
func PriorityBadge(p domain.Priority) string {
	return PriorityStyle(p).Render("● " + string(p))
}

// ProjectStyle maps a project's presentation color onto the palette.
// Unknown colors (including the dangling-reference fallback) render
// blue, matching the hosted app's default chip.
func ProjectStyle(c domain.ProjectColor) lipgloss.Style {
	switch c {
	case domain.ColorGreen:
		return StyleGreen
	case domain.ColorPurple:
		return StylePurple
	case domain.ColorOrange:
		return lipgloss.NewStyle().Foreground(ColorOrange)
	case domain.ColorPink:
		return StylePurple
	default:
		return StyleBlue
	}
}

// ProjectChip renders a project name with its color dot.
func ProjectChip(p *domain.Project) string {
	if p == nil {
		return ""
	}
	return ProjectStyle(p.Color).Render("•") + " " + StyleDim.Render(p.Name)
}
