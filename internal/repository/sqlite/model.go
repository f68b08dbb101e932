package sqlite

import "time"

// Task represents a row in the tasks table.
// Deadline is a calendar date; the time component is always midnight UTC.
type Task struct {
	ID       int64
	Name     string
	Deadline time.Time
}
