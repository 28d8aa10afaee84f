package store

import (
	"context"
	"errors"

	"github.com/nhle/tasktracker/internal/model"
)

// ErrTaskNotFound is returned when no task exists for the requested ID.
var ErrTaskNotFound = errors.New("task not found")

// Store defines the persistence interface for tasks. Writes are
// last-writer-wins: there is no version column or conflict detection.
type Store interface {
	// ListTasks returns every task in insertion order. It never returns
	// a nil slice.
	ListTasks(ctx context.Context) ([]model.Task, error)

	// GetTask returns a single task or ErrTaskNotFound.
	GetTask(ctx context.Context, id int64) (*model.Task, error)

	// CreateTask stores a new task under a freshly assigned ID. Any ID on
	// the argument is ignored.
	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)

	// ReplaceTask overwrites every field of an existing task. It does not
	// insert: an unknown ID yields ErrTaskNotFound.
	ReplaceTask(ctx context.Context, id int64, task model.Task) (*model.Task, error)

	// Ping verifies the database connection is alive.
	Ping(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close() error
}
