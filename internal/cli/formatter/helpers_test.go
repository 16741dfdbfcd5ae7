package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{65, "00:01:05"},
		{3600, "01:00:00"},
		{3723, "01:02:03"},
		{-5, "00:00:00"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatClock(tc.seconds))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0m 0s"},
		{312, "5m 12s"},
		{3900, "1h 5m"},
		{7200, "2h 0m"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatDuration(tc.seconds))
	}
}

func TestHumanDate(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", HumanDate(now.Add(5*time.Hour), now))
	assert.Equal(t, "Tomorrow", HumanDate(now.AddDate(0, 0, 1), now))
	assert.Equal(t, "Yesterday", HumanDate(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "Mar 20, 2026", HumanDate(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), now))
}

func TestFormatTimeOfDay(t *testing.T) {
	assert.Equal(t, "2:30 PM", FormatTimeOfDay("14:30"))
	assert.Equal(t, "12:05 AM", FormatTimeOfDay("00:05"))
	assert.Equal(t, "bogus", FormatTimeOfDay("bogus"))
}

func TestHeader_UnderlineMatchesDisplayWidth(t *testing.T) {
	// Multibyte text must not inflate the rule: the underline goes by
	// display cells, not bytes.
	out := Header("Überblick")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(lines[1]))
}

func TestRenderTable_Alignment(t *testing.T) {
	out := RenderTable([]string{"ID", "TITLE"}, [][]string{
		{"a1", "Buy groceries"},
		{"b2", "Ship"},
	})
	assert.Contains(t, out, "Buy groceries")
	assert.Contains(t, out, "─")
}
