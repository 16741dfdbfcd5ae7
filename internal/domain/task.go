package domain

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[Priority]bool{
	PriorityHigh: true, PriorityMedium: true, PriorityLow: true,
}

// Task is a user-created to-do item. JSON tags follow the persisted
// slot layout, so existing data decodes unchanged.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date,omitempty"`
	TimeOfDay   string     `json:"time,omitempty"`
	Priority    Priority   `json:"priority"`
	Project     string     `json:"project"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	TrackedTime int        `json:"trackedTime"`
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// calendarDay collapses a timestamp to a comparable day ordinal,
// read in the timestamp's own location. Comparing ordinals instead of
// truncated instants keeps day classification correct when the due
// date and the clock carry different zones (parsed dates are UTC
// midnight, now is local).
func calendarDay(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// Overdue reports whether the task is incomplete with a due date
// strictly before the current calendar day. Time-of-day is ignored.
func (t *Task) Overdue(now time.Time) bool {
	if t.Completed || t.Date == nil {
		return false
	}
	return calendarDay(*t.Date) < calendarDay(now)
}

// DueToday reports whether the task is incomplete and due on the
// current calendar day.
func (t *Task) DueToday(now time.Time) bool {
	if t.Completed || t.Date == nil {
		return false
	}
	return calendarDay(*t.Date) == calendarDay(now)
}
