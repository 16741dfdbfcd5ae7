package store

import (
	"errors"
	"time"

	"github.com/taskflowhq/taskflow/internal/domain"
)

// Validation errors, rejected at the boundary before any mutation.
// User-facing messaging is the presentation layer's job.
var (
	ErrEmptyTitle      = errors.New("task title must not be empty")
	ErrEmptyName       = errors.New("project name must not be empty")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidColor    = errors.New("invalid project color")
)

// TaskInput carries the caller-supplied fields for task creation.
// Everything except Title is optional and defaulted by CreateTask.
type TaskInput struct {
	Title       string
	Description string
	Date        *time.Time
	TimeOfDay   string
	Priority    domain.Priority
	Project     string
}

// TaskPatch describes a shallow merge over an existing task. Nil
// fields are left unchanged. ClearDate removes the due date; it wins
// over Date when both are set.
type TaskPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	ClearDate   bool
	TimeOfDay   *string
	Priority    *domain.Priority
	Project     *string
	Completed   *bool
	TrackedTime *int
}

func (p TaskPatch) apply(t *domain.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ClearDate {
		t.Date = nil
	} else if p.Date != nil {
		d := *p.Date
		t.Date = &d
	}
	if p.TimeOfDay != nil {
		t.TimeOfDay = *p.TimeOfDay
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Project != nil {
		t.Project = *p.Project
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.TrackedTime != nil {
		t.TrackedTime = *p.TrackedTime
	}
}
