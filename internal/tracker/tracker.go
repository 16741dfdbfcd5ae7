// Package tracker implements the stopwatch: an Idle/Running/Paused
// state machine that accumulates elapsed seconds against one bound
// task and commits them into the task's tracked time on stop.
package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/taskflowhq/taskflow/internal/domain"
	"github.com/taskflowhq/taskflow/internal/store"
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

var (
	ErrNoTask         = errors.New("no task selected")
	ErrUnknownTask    = errors.New("task does not exist")
	ErrAlreadyRunning = errors.New("tracker is already running")
	ErrSessionActive  = errors.New("another task's session is paused")
	ErrNotRunning     = errors.New("tracker is not running")
)

// TaskStore is the narrow store surface the tracker needs: resolving
// the bound task and committing accumulated time.
type TaskStore interface {
	GetTaskByID(id string) *domain.Task
	UpdateTask(ctx context.Context, id string, patch store.TaskPatch) (*domain.Task, error)
}

// Tracker is the stopwatch. The per-second tick is a rearming
// scheduled callback guarded by a generation counter: every transition
// away from Running bumps the generation, so a callback that fires
// after cancellation is a no-op.
type Tracker struct {
	mu    sync.Mutex
	tasks TaskStore

	state     State
	taskID    string
	taskTitle string
	elapsed   int // seconds accumulated, committed only on Stop

	gen      int
	timer    *time.Timer
	interval time.Duration
	now      func() time.Time

	sessions []domain.TimerSession // newest first
}

// New creates an idle tracker over the given task store.
func New(tasks TaskStore) *Tracker {
	return &Tracker{
		tasks:    tasks,
		state:    StateIdle,
		interval: time.Second,
		now:      time.Now,
	}
}

// Start binds a task and begins counting. From Paused it resumes the
// counter instead, accepting an empty id or the already-bound id.
func (t *Tracker) Start(taskID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case StateRunning:
		return ErrAlreadyRunning
	case StatePaused:
		if taskID != "" && taskID != t.taskID {
			return ErrSessionActive
		}
		t.state = StateRunning
		t.schedule()
		return nil
	}

	if taskID == "" {
		return ErrNoTask
	}
	task := t.tasks.GetTaskByID(taskID)
	if task == nil {
		return ErrUnknownTask
	}

	t.taskID = taskID
	t.taskTitle = task.Title
	t.elapsed = 0
	t.state = StateRunning
	t.schedule()
	return nil
}

// Resume continues a paused session.
func (t *Tracker) Resume() error {
	return t.Start("")
}

// Pause halts the counter without resetting it. Valid only while
// running.
func (t *Tracker) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning {
		return ErrNotRunning
	}
	t.cancelTick()
	t.state = StatePaused
	return nil
}

// Stop ends the session. When any time accumulated it appends a
// session record and commits the elapsed seconds into the bound
// task's tracked time (additive). Time spent before a pause counts;
// pause stops the clock, not the accumulated value. Returns the
// committed session, or nil when nothing accumulated. Stopping an
// idle tracker is a no-op.
func (t *Tracker) Stop(ctx context.Context) (*domain.TimerSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateIdle {
		return nil, nil
	}
	t.cancelTick()

	var session *domain.TimerSession
	if t.elapsed > 0 {
		s := domain.TimerSession{
			ID:        uuid.New().String(),
			TaskID:    t.taskID,
			TaskTitle: t.taskTitle,
			Duration:  t.elapsed,
			Timestamp: t.now(),
		}
		t.sessions = append([]domain.TimerSession{s}, t.sessions...)
		session = &s

		// The task may have been deleted mid-session; the session
		// record survives on its own, the commit is simply skipped.
		if task := t.tasks.GetTaskByID(t.taskID); task != nil {
			total := task.TrackedTime + t.elapsed
			if _, err := t.tasks.UpdateTask(ctx, t.taskID, store.TaskPatch{TrackedTime: &total}); err != nil {
				return nil, err
			}
		} else {
			log.Debug().Str("task", t.taskID).Msg("bound task gone, session logged without commit")
		}
	}

	t.elapsed = 0
	t.taskID = ""
	t.taskTitle = ""
	t.state = StateIdle
	return session, nil
}

// Reset discards the accumulated counter without committing and
// without creating a session. Valid in any state.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancelTick()
	t.elapsed = 0
	t.taskID = ""
	t.taskTitle = ""
	t.state = StateIdle
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Elapsed returns the uncommitted seconds accumulated so far.
func (t *Tracker) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

// TaskID returns the bound task id, empty when idle.
func (t *Tracker) TaskID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.taskID
}

// Sessions returns a copy of the committed session log, newest first.
func (t *Tracker) Sessions() []domain.TimerSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.TimerSession, len(t.sessions))
	copy(out, t.sessions)
	return out
}

// RestoreSessions seeds the session log, oldest last, from an
// explicitly persisted log.
func (t *Tracker) RestoreSessions(sessions []domain.TimerSession) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sessions = make([]domain.TimerSession, len(sessions))
	copy(t.sessions, sessions)
}

// schedule arms the next tick. Caller holds the lock.
func (t *Tracker) schedule() {
	gen := t.gen
	t.timer = time.AfterFunc(t.interval, func() { t.tick(gen) })
}

// tick advances the counter by one second and rearms. A tick from a
// cancelled generation does nothing.
func (t *Tracker) tick(gen int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen || t.state != StateRunning {
		return
	}
	t.elapsed++
	t.schedule()
}

// cancelTick invalidates any scheduled callback. Caller holds the
// lock. Unconditional on every transition away from Running.
func (t *Tracker) cancelTick() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
