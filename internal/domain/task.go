package domain

import (
	"time"
)

// DeadlineFormat is the calendar date layout used everywhere a deadline
// crosses a boundary: the HTTP API, the bot dialogue, and the inspect output.
const DeadlineFormat = "02.01.2006"

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID       int64
	Name     string
	Deadline time.Time
}

// NewTask creates a new Task with the given name and deadline.
func NewTask(name string, deadline time.Time) Task {
	return Task{
		Name:     name,
		Deadline: deadline,
	}
}

// FormattedDeadline returns the deadline rendered as DD.MM.YYYY.
func (t Task) FormattedDeadline() string {
	return t.Deadline.Format(DeadlineFormat)
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.Name != "" && !t.Deadline.IsZero()
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}

// ParseDeadline parses a DD.MM.YYYY string into a calendar date.
// The parse is strict: any other separator or layout is rejected.
func ParseDeadline(value string) (time.Time, error) {
	return time.Parse(DeadlineFormat, value)
}
