// Package todo holds the task list domain: tasks, filters and the store that owns them.
package todo

import (
	"errors"
	"time"
)

// DefaultTimestampLayout renders creation times the way the pt-BR locale does
// ("18/10/2026, 14:03:05").
const DefaultTimestampLayout = "02/01/2006, 15:04:05"

var (
	// ErrEmptyText is returned when a task text is empty after trimming.
	ErrEmptyText = errors.New("task text required")

	// ErrUnknownFilter is returned for filter names outside all/completed/pending.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrPersist wraps failures of the persistence adapter. The in-memory
	// mutation has already been applied when it is returned.
	ErrPersist = errors.New("persist tasks")
)

// Task is a single to-do item.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// Counts summarizes the task collection for display.
type Counts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Pending returns the number of tasks not yet completed.
func (c Counts) Pending() int {
	return c.Total - c.Completed
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time
