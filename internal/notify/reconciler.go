// Package notify derives due-date alerts from the task collection and
// merges each fresh computation into the alert state the user has
// already interacted with. Reconciliation is what makes the alert set
// safe to recompute on every refresh: acknowledged alerts stay
// acknowledged, resolved ones disappear, and nothing duplicates.
package notify

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/taskflowhq/taskflow/internal/domain"
)

// VisibleLimit is how many notifications the collapsed view exposes.
const VisibleLimit = 4

// Reconciler owns the live notification collection. Notifications are
// keyed by their derived id, so membership checks and merges are O(1)
// and recomputing twice in a row is a no-op.
type Reconciler struct {
	mu    sync.Mutex
	byID  map[string]*domain.Notification
	order []string // newest synthesis first
}

// NewReconciler creates an empty reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{
		byID: make(map[string]*domain.Notification),
	}
}

// Reconcile scans the snapshot for overdue and due-today tasks and
// folds the candidates into the existing collection:
//
//   - ids no longer backed by a live condition are dropped,
//   - new ids are prepended unread with a fresh CreatedAt,
//   - existing ids are left untouched, preserving their read state
//     and original CreatedAt.
func (r *Reconciler) Reconcile(tasks []domain.Task, now time.Time) {
	candidates := synthesize(tasks, now)

	r.mu.Lock()
	defer r.mu.Unlock()

	live := make(map[string]bool, len(candidates))
	for i := range candidates {
		live[candidates[i].ID] = true
	}

	// Prune entries whose condition resolved: task completed, date
	// moved, or task deleted.
	kept := r.order[:0]
	for _, id := range r.order {
		if live[id] {
			kept = append(kept, id)
		} else {
			delete(r.byID, id)
		}
	}
	r.order = kept

	// Prepend new candidates, newest synthesis first. Walking the
	// candidate list in reverse keeps its order among themselves.
	for i := len(candidates) - 1; i >= 0; i-- {
		c := candidates[i]
		if _, exists := r.byID[c.ID]; exists {
			continue
		}
		n := c
		n.CreatedAt = now
		r.byID[n.ID] = &n
		r.order = append([]string{n.ID}, r.order...)
	}
}

// MarkRead acknowledges one notification. Reports whether the id was
// found. Membership is unaffected.
func (r *Reconciler) MarkRead(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.byID[id]
	if !ok {
		return false
	}
	n.Read = true
	return true
}

// MarkAllRead acknowledges every notification.
func (r *Reconciler) MarkAllRead() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range r.byID {
		n.Read = true
	}
}

// UnreadCount returns the number of unacknowledged notifications, for
// badge display.
func (r *Reconciler) UnreadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, n := range r.byID {
		if !n.Read {
			count++
		}
	}
	return count
}

// Visible returns the notifications to display: all of them when
// expanded, otherwise the first VisibleLimit.
func (r *Reconciler) Visible(expanded bool) []domain.Notification {
	all := r.All()
	if expanded || len(all) <= VisibleLimit {
		return all
	}
	return all[:VisibleLimit]
}

// All returns a copy of the full collection, newest synthesis first.
func (r *Reconciler) All() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Notification, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}

// Snapshot exports the collection for explicit logging between
// process runs. Same ordering as All.
func (r *Reconciler) Snapshot() []domain.Notification {
	return r.All()
}

// Restore replaces the collection with a previously-logged snapshot.
// A later Reconcile prunes any entries whose condition has since
// resolved.
func (r *Reconciler) Restore(notifications []domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[string]*domain.Notification, len(notifications))
	r.order = r.order[:0]
	for i := range notifications {
		n := notifications[i]
		if _, exists := r.byID[n.ID]; exists {
			continue
		}
		r.byID[n.ID] = &n
		r.order = append(r.order, n.ID)
	}
}

// synthesize emits overdue candidates (most recently overdue first),
// then due-today candidates, scanning incomplete tasks only.
func synthesize(tasks []domain.Task, now time.Time) []domain.Notification {
	var overdue, today []domain.Notification

	for i := range tasks {
		t := &tasks[i]
		switch {
		case t.Overdue(now):
			overdue = append(overdue, domain.Notification{
				ID:     domain.NotificationID(domain.NotificationOverdue, t.ID),
				TaskID: t.ID,
				Kind:   domain.NotificationOverdue,
				Text:   fmt.Sprintf("%q is overdue", t.Title),
				Icon:   "alert-triangle",
			})
		case t.DueToday(now):
			today = append(today, domain.Notification{
				ID:     domain.NotificationID(domain.NotificationToday, t.ID),
				TaskID: t.ID,
				Kind:   domain.NotificationToday,
				Text:   fmt.Sprintf("%q is due today", t.Title),
				Icon:   "clock",
			})
		}
	}

	// Most recently overdue first. The due date lives on the source
	// task; index back into the snapshot by task id.
	dueOf := make(map[string]time.Time, len(tasks))
	for i := range tasks {
		if tasks[i].Date != nil {
			dueOf[tasks[i].ID] = *tasks[i].Date
		}
	}
	sort.SliceStable(overdue, func(i, j int) bool {
		return dueOf[overdue[i].TaskID].After(dueOf[overdue[j].TaskID])
	})

	return append(overdue, today...)
}
