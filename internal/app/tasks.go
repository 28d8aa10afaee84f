package app

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasktracker/internal/model"
)

// TaskService is the slice of the Task API the UI needs. *client.Client
// satisfies it.
type TaskService interface {
	FetchTasks(ctx context.Context) ([]model.Task, error)
	UpdateTask(ctx context.Context, id int64, task model.Task) (*model.Task, error)
	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
}

// taskSavedMsg is sent after an update or create request returns.
type taskSavedMsg struct {
	task   *model.Task
	create bool
	err    error
}

// updateTask sends the edited task to the server.
func (m *Model) updateTask(task model.Task) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		updated, err := svc.UpdateTask(context.Background(), task.ID, task)
		if err != nil {
			log.Printf("update task %d: %v", task.ID, err)
		}
		return taskSavedMsg{task: updated, err: err}
	}
}

// createTask posts a new task to the server.
func (m *Model) createTask(task model.Task) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		created, err := svc.CreateTask(context.Background(), task)
		if err != nil {
			log.Printf("create task: %v", err)
		}
		return taskSavedMsg{task: created, create: true, err: err}
	}
}
