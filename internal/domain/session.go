package domain

import "time"

// TimerSession is one committed stopwatch interval against a task.
// TaskTitle is snapshotted when the session starts so the log
// survives later edits or deletion of the task.
type TimerSession struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	TaskTitle string    `json:"taskTitle"`
	Duration  int       `json:"duration"` // seconds
	Timestamp time.Time `json:"timestamp"`
}
