package testutil

import (
	"time"

	"github.com/taskflowhq/taskflow/internal/domain"
)

// Task options

type TaskOption func(*domain.Task)

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.Date = &d
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithProject(id string) TaskOption {
	return func(t *domain.Task) {
		t.Project = id
	}
}

func WithDescription(desc string) TaskOption {
	return func(t *domain.Task) {
		t.Description = desc
	}
}

func Completed() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

func WithCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = at
	}
}

func WithTrackedTime(seconds int) TaskOption {
	return func(t *domain.Task) {
		t.TrackedTime = seconds
	}
}

// NewTask builds a task fixture with sane defaults, customized through
// options. The id is fresh on every call.
func NewTask(title string, opts ...TaskOption) domain.Task {
	task := domain.Task{
		ID:        domain.NewID(),
		Title:     title,
		Priority:  domain.PriorityMedium,
		Project:   "personal",
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&task)
	}
	return task
}

// NewProject builds a project fixture whose id derives from its name.
func NewProject(name string, color domain.ProjectColor) domain.Project {
	return domain.Project{
		ID:    domain.DeriveProjectID(name),
		Name:  name,
		Color: color,
	}
}
