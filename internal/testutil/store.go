package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/store"
)

// NewTestStore creates an in-memory SQLStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SeedTask inserts a task directly through the store and returns the
// stored record.
func SeedTask(t *testing.T, s store.Store, title string, deadline time.Time, completed bool) model.Task {
	t.Helper()

	created, err := s.CreateTask(context.Background(), model.Task{
		Title:       title,
		Description: title + " description",
		Deadline:    deadline,
		IsCompleted: completed,
	})
	if err != nil {
		t.Fatalf("seeding task %q: %v", title, err)
	}
	return *created
}
