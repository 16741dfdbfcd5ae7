package domain

import "time"

type NotificationKind string

const (
	NotificationOverdue NotificationKind = "overdue"
	NotificationToday   NotificationKind = "today"
)

// Notification is a derived alert about a single task. Its id is a
// pure function of kind and task id, so recomputing the alert set is
// idempotent and identity-stable across refreshes.
type Notification struct {
	ID        string           `json:"id"`
	TaskID    string           `json:"taskId"`
	Kind      NotificationKind `json:"type"`
	Text      string           `json:"text"`
	Icon      string           `json:"icon"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NotificationID derives the stable id for an alert about a task,
// e.g. "overdue-k2f9x-3a1b".
func NotificationID(kind NotificationKind, taskID string) string {
	return string(kind) + "-" + taskID
}
