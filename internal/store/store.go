// Package store owns the authoritative task and project collections.
// All reads by other components go through a Store snapshot; every
// mutation persists to the slot store before returning, so a read
// immediately following a write observes that write.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/taskflowhq/taskflow/internal/db"
	"github.com/taskflowhq/taskflow/internal/domain"
	"github.com/taskflowhq/taskflow/internal/storage"
)

// Store holds the in-memory collections backed by named slots. It is
// an owned instance with an explicit lifecycle: construct, Reload once
// before any read, then use. Independent instances never share state,
// which keeps tests isolated.
type Store struct {
	mu    sync.Mutex
	slots *storage.SlotStore
	uow   db.UnitOfWork

	// Injectable for tests.
	now   func() time.Time
	newID func() string

	tasks    []domain.Task
	projects []domain.Project
}

// New creates a Store over the given slot store. The unit of work is
// used only by ClearAllUserData, which must erase multiple slots
// atomically.
func New(slots *storage.SlotStore, uow db.UnitOfWork) *Store {
	return &Store{
		slots: slots,
		uow:   uow,
		now:   time.Now,
		newID: domain.NewID,
	}
}

// Reload re-reads both collections from the slot store, discarding any
// in-memory state. A missing or undecodable slot degrades to an empty
// task list or the seeded default projects; it never fails the caller.
// Called once at startup before any other read.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = nil
	s.slots.Load(ctx, storage.SlotTasks, &s.tasks)

	s.projects = nil
	s.slots.Load(ctx, storage.SlotProjects, &s.projects)

	// The project collection is never empty: reseed and persist the
	// defaults so later loads see them too.
	if len(s.projects) == 0 {
		s.projects = domain.DefaultProjects()
		if err := s.slots.Save(ctx, storage.SlotProjects, s.projects); err != nil {
			return fmt.Errorf("seeding default projects: %w", err)
		}
	}
	return nil
}

// ── Tasks ────────────────────────────────────────────────────────────────────

// CreateTask assigns an id and creation timestamp, applies defaults,
// prepends the task (list views rely on newest-first order) and
// persists. Returns the created task.
func (s *Store) CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if !domain.ValidPriorities[input.Priority] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, input.Priority)
	}
	if input.Project == "" {
		input.Project = "personal"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := domain.Task{
		ID:          s.newID(),
		Title:       input.Title,
		Description: input.Description,
		TimeOfDay:   input.TimeOfDay,
		Priority:    input.Priority,
		Project:     input.Project,
		CreatedAt:   s.now(),
	}
	if input.Date != nil {
		d := *input.Date
		task.Date = &d
	}

	s.tasks = append([]domain.Task{task}, s.tasks...)
	if err := s.persistTasks(ctx); err != nil {
		return nil, err
	}

	out := cloneTask(task)
	return &out, nil
}

// GetAllTasks returns a snapshot copy, newest first. Mutating the
// result does not affect the store.
func (s *Store) GetAllTasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = cloneTask(t)
	}
	return out
}

// GetTaskByID returns a copy of the task, or nil when unknown.
func (s *Store) GetTaskByID(id string) *domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			out := cloneTask(s.tasks[i])
			return &out
		}
	}
	return nil
}

// UpdateTask shallow-merges patch over the existing record and
// persists. Returns nil (not an error) when the id is unknown.
func (s *Store) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		patch.apply(&s.tasks[i])
		if err := s.persistTasks(ctx); err != nil {
			return nil, err
		}
		out := cloneTask(s.tasks[i])
		return &out, nil
	}
	return nil, nil
}

// ToggleComplete flips the task's completed flag and persists.
// Returns nil when the id is unknown.
func (s *Store) ToggleComplete(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks[i].Completed = !s.tasks[i].Completed
		if err := s.persistTasks(ctx); err != nil {
			return nil, err
		}
		out := cloneTask(s.tasks[i])
		return &out, nil
	}
	return nil, nil
}

// DeleteTask removes the task and persists. Reports whether a row was
// removed.
func (s *Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		if err := s.persistTasks(ctx); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// ── Projects ─────────────────────────────────────────────────────────────────

// CreateProject derives the id from the name and persists. Projects
// append oldest-first; they are never reordered. A name deriving an id
// that already exists replaces that project in place (last write wins,
// position preserved), which makes the collision behavior
// deterministic.
func (s *Store) CreateProject(ctx context.Context, name string, color domain.ProjectColor) (*domain.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if color == "" {
		color = domain.ColorBlue
	}
	if !domain.ValidProjectColors[color] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project := domain.Project{
		ID:    domain.DeriveProjectID(name),
		Name:  name,
		Color: color,
	}

	replaced := false
	for i := range s.projects {
		if s.projects[i].ID == project.ID {
			s.projects[i] = project
			replaced = true
			break
		}
	}
	if !replaced {
		s.projects = append(s.projects, project)
	}

	if err := s.slots.Save(ctx, storage.SlotProjects, s.projects); err != nil {
		return nil, fmt.Errorf("persisting projects: %w", err)
	}

	out := project
	return &out, nil
}

// GetAllProjects returns a snapshot copy, oldest first.
func (s *Store) GetAllProjects() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// GetProjectByID returns a copy of the project, or nil when unknown.
// Renderers tolerate nil: a task whose project was rewritten away
// falls back to no project chip.
func (s *Store) GetProjectByID(id string) *domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID == id {
			out := s.projects[i]
			return &out
		}
	}
	return nil
}

// ── Bulk operations ──────────────────────────────────────────────────────────

// ClearAllUserData resets tasks to empty and projects to the seeded
// defaults, erasing every persisted user-data slot (tasks, projects,
// the session log and notification state) in one transaction. On
// failure nothing is erased and the in-memory state is untouched; the
// caller asks the user to retry. This is the sole destructive bulk
// operation and must run before account deletion so no orphaned data
// outlives the account.
func (s *Store) ClearAllUserData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSlots := storage.NewSlotStore(tx)
		for _, key := range []string{
			storage.SlotTasks,
			storage.SlotProjects,
			storage.SlotSessions,
			storage.SlotNotifications,
		} {
			if err := txSlots.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clearing user data: %w", err)
	}

	s.tasks = nil
	s.projects = domain.DefaultProjects()
	log.Debug().Msg("cleared all user data")
	return nil
}

func (s *Store) persistTasks(ctx context.Context) error {
	if err := s.slots.Save(ctx, storage.SlotTasks, s.tasks); err != nil {
		return fmt.Errorf("persisting tasks: %w", err)
	}
	return nil
}

func cloneTask(t domain.Task) domain.Task {
	if t.Date != nil {
		d := *t.Date
		t.Date = &d
	}
	return t
}
