// Package stats computes derived views over a store snapshot. All
// functions are pure and O(n) in task count: aggregates are recomputed
// on demand rather than maintained incrementally, trading recompute
// cost for zero risk of drift. Personal task counts are small and
// every mutation already triggers a full refresh.
package stats

import (
	"math"
	"strings"
	"time"

	"github.com/taskflowhq/taskflow/internal/domain"
)

// Stats is the dashboard aggregate.
type Stats struct {
	Total               int
	Completed           int
	Pending             int
	Overdue             int
	TotalTrackedSeconds int
	Productivity        int // round(100*completed/total), 0 when total is 0
}

// DayBucket is one day of the weekly series.
type DayBucket struct {
	Day       time.Time // midnight of the bucketed day
	Label     string    // weekday abbreviation, e.g. "Mon"
	Created   int
	Completed int
}

// Distribution counts tasks per priority.
type Distribution struct {
	High   int
	Medium int
	Low    int
}

// Compute aggregates the snapshot relative to now.
func Compute(tasks []domain.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for i := range tasks {
		t := &tasks[i]
		if t.Completed {
			s.Completed++
		}
		if t.Overdue(now) {
			s.Overdue++
		}
		s.TotalTrackedSeconds += t.TrackedTime
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.Productivity = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}

// Weekly buckets tasks by creation day over the last 7 calendar days,
// oldest first with today last. A task counts toward the day its
// CreatedAt falls in [day, day+1).
func Weekly(tasks []domain.Task, now time.Time) []DayBucket {
	buckets := make([]DayBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		day := domain.StartOfDay(now.AddDate(0, 0, -i))
		next := day.AddDate(0, 0, 1)

		b := DayBucket{Day: day, Label: day.Format("Mon")}
		for j := range tasks {
			created := tasks[j].CreatedAt
			if !created.Before(day) && created.Before(next) {
				b.Created++
				if tasks[j].Completed {
					b.Completed++
				}
			}
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// PriorityDistribution counts tasks per priority enum value.
func PriorityDistribution(tasks []domain.Task) Distribution {
	var d Distribution
	for i := range tasks {
		switch tasks[i].Priority {
		case domain.PriorityHigh:
			d.High++
		case domain.PriorityMedium:
			d.Medium++
		case domain.PriorityLow:
			d.Low++
		}
	}
	return d
}

// ByProject filters the snapshot to tasks referencing the project id.
func ByProject(tasks []domain.Task, projectID string) []domain.Task {
	return filter(tasks, func(t *domain.Task) bool { return t.Project == projectID })
}

// Completed filters the snapshot to completed tasks.
func Completed(tasks []domain.Task) []domain.Task {
	return filter(tasks, func(t *domain.Task) bool { return t.Completed })
}

// Pending filters the snapshot to incomplete tasks.
func Pending(tasks []domain.Task) []domain.Task {
	return filter(tasks, func(t *domain.Task) bool { return !t.Completed })
}

// Search returns tasks whose title or description contains the query,
// case-insensitively.
func Search(tasks []domain.Task, query string) []domain.Task {
	q := strings.ToLower(query)
	return filter(tasks, func(t *domain.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q)
	})
}

func filter(tasks []domain.Task, keep func(*domain.Task) bool) []domain.Task {
	var out []domain.Task
	for i := range tasks {
		if keep(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}
