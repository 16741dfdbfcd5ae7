package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestTask_Overdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"due yesterday, incomplete", Task{Date: datePtr(yesterday)}, true},
		{"due today, incomplete", Task{Date: datePtr(now)}, false},
		{"due today earlier hour", Task{Date: datePtr(StartOfDay(now))}, false},
		{"due tomorrow", Task{Date: datePtr(tomorrow)}, false},
		{"due yesterday, completed", Task{Date: datePtr(yesterday), Completed: true}, false},
		{"no due date", Task{}, false},
		{"due last week late at night", Task{Date: datePtr(now.AddDate(0, 0, -7).Add(8 * time.Hour))}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.task.Overdue(now))
		})
	}
}

func TestTask_DueToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"due this afternoon", Task{Date: datePtr(now.Add(6 * time.Hour))}, true},
		{"due at midnight today", Task{Date: datePtr(StartOfDay(now))}, true},
		{"due yesterday", Task{Date: datePtr(now.AddDate(0, 0, -1))}, false},
		{"due tomorrow", Task{Date: datePtr(now.AddDate(0, 0, 1))}, false},
		{"completed today", Task{Date: datePtr(now), Completed: true}, false},
		{"no due date", Task{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.task.DueToday(now))
		})
	}
}

// Due dates are parsed as UTC midnight while the clock runs in the
// local zone. Classification must go by calendar day in each value's
// own location, not by comparing truncated instants.
func TestTask_DayClassificationAcrossZones(t *testing.T) {
	utcDue := datePtr(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name        string
		now         time.Time
		wantOverdue bool
		wantToday   bool
	}{
		{
			"west of UTC, same calendar day",
			time.Date(2026, 8, 28, 9, 0, 0, 0, time.FixedZone("UTC-4", -4*3600)),
			false, true,
		},
		{
			"east of UTC, same calendar day",
			time.Date(2026, 8, 28, 9, 0, 0, 0, time.FixedZone("UTC+12", 12*3600)),
			false, true,
		},
		{
			"west of UTC, next calendar day",
			time.Date(2026, 8, 29, 9, 0, 0, 0, time.FixedZone("UTC-4", -4*3600)),
			true, false,
		},
		{
			"east of UTC, previous calendar day",
			time.Date(2026, 8, 27, 23, 0, 0, 0, time.FixedZone("UTC+12", 12*3600)),
			false, false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := Task{Date: utcDue}
			assert.Equal(t, tc.wantOverdue, task.Overdue(tc.now), "overdue")
			assert.Equal(t, tc.wantToday, task.DueToday(tc.now), "due today")
		})
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}
