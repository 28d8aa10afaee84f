package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status filter values used by the list view.
const (
	StatusAll       = "all"
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// DateLayout is the day-only form used by the edit form and accepted on input.
const DateLayout = "2006-01-02"

// deadlineLayouts are tried in order when decoding a deadline from JSON.
var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	DateLayout,
}

// Task is a unit of work with a title, description, deadline, and
// completion flag. It is the only persisted entity.
type Task struct {
	// ID is assigned by the store on creation and never changes.
	ID int64 `json:"taskId" db:"id"`

	// Title is the short human-readable summary.
	Title string `json:"title" db:"title"`

	// Description is the free-text body.
	Description string `json:"description" db:"description"`

	// Deadline is the due date. It travels as an ISO-8601 date-time string.
	Deadline time.Time `json:"deadline" db:"deadline"`

	// IsCompleted is false until the task is marked done.
	IsCompleted bool `json:"isCompleted" db:"is_completed"`
}

// Status returns the status filter value this task belongs to.
func (t Task) Status() string {
	if t.IsCompleted {
		return StatusCompleted
	}
	return StatusPending
}

// UnmarshalJSON accepts RFC 3339 deadlines as well as the zone-less and
// day-only forms browsers and date pickers send.
func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	aux := struct {
		*alias
		Deadline *string `json:"deadline"`
	}{alias: (*alias)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Deadline == nil {
		return nil
	}

	deadline, err := ParseDeadline(*aux.Deadline)
	if err != nil {
		return err
	}
	t.Deadline = deadline
	return nil
}

// ParseDeadline parses a deadline string. Values without a zone are UTC.
// An empty string yields the zero time.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range deadlineLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid deadline %q: use an ISO-8601 date or date-time", s)
}
