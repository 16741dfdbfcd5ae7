package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// TruncID shortens an id for table display.
func TruncID(id string) string {
	if len(id) > 12 {
		id = id[:12]
	}
	return StyleDim.Render(id)
}

// HumanDate returns a human-friendly absolute date relative to now.
func HumanDate(t time.Time, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	tomorrow := now.AddDate(0, 0, 1)
	if y3, m3, d3 := tomorrow.Date(); y2 == y3 && m2 == m3 && d2 == d3 {
		return "Tomorrow"
	}
	yesterday := now.AddDate(0, 0, -1)
	if y3, m3, d3 := yesterday.Date(); y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a relative timestamp such as "5m ago".
func HumanTimestamp(t time.Time, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return HumanDate(t, now)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t, now)
	}
}

// FormatClock renders elapsed seconds as a stopwatch face, hh:mm:ss.
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatDuration renders seconds compactly: "2h 5m" above an hour,
// "5m 12s" below.
func FormatDuration(totalSeconds int) string {
	if totalSeconds <= 0 {
		return "0m 0s"
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm %ds", m, totalSeconds%60)
}

// FormatTimeOfDay converts a 24h "HH:MM" string to "3:04 PM" display.
// Unparseable input is returned as-is.
func FormatTimeOfDay(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}
