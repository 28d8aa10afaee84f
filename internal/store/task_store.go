package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nhle/tasktracker/internal/model"
)

const taskColumns = "id, title, description, deadline, is_completed"

// ListTasks returns all tasks ordered by ID, which is insertion order.
func (s *SQLStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	tasks := []model.Task{}
	err := s.db.SelectContext(ctx, &tasks,
		"SELECT "+taskColumns+" FROM tasks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	for i := range tasks {
		tasks[i].Deadline = tasks[i].Deadline.UTC()
	}
	return tasks, nil
}

// GetTask retrieves a single task by ID.
func (s *SQLStore) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := s.db.GetContext(ctx, &task,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	task.Deadline = task.Deadline.UTC()
	return &task, nil
}

// CreateTask inserts a new task and returns it with the assigned ID.
func (s *SQLStore) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (title, description, deadline, is_completed)
		VALUES (?, ?, ?, ?)`,
		task.Title, task.Description, task.Deadline.UTC(), task.IsCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading assigned task id: %w", err)
	}

	task.ID = id
	task.Deadline = task.Deadline.UTC()
	return &task, nil
}

// ReplaceTask overwrites every mutable column of the task with the given ID
// and returns the stored record.
func (s *SQLStore) ReplaceTask(ctx context.Context, id int64, task model.Task) (*model.Task, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, description = ?, deadline = ?, is_completed = ?
		WHERE id = ?`,
		task.Title, task.Description, task.Deadline.UTC(), task.IsCompleted,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating task %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("reading rows affected for task %d: %w", id, err)
	}
	if rows == 0 {
		return nil, ErrTaskNotFound
	}

	return s.GetTask(ctx, id)
}
