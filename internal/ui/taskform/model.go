package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/theme"
)

// UpdateFailedText is shown inline when saving an edit fails.
const UpdateFailedText = "Failed to update task. Please try again."

// CreateFailedText is shown inline when saving a new task fails.
const CreateFailedText = "Failed to create task. Please try again."

// TaskSubmittedMsg is dispatched when the form is submitted. Create is
// false for edits, in which case Task.ID is the edited task's ID.
type TaskSubmittedMsg struct {
	Task   model.Task
	Create bool
}

// TaskFormCancelMsg is dispatched when the user cancels the form.
type TaskFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	deadline    string
	completed   bool
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	createMode bool
	original   model.Task
	submitting bool
	errMsg     string
	now        func() time.Time
	width      int
	height     int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		now:    time.Now,
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new task. The deadline defaults
// to today.
func (m *Model) StartCreate() tea.Cmd {
	m.createMode = true
	m.original = model.Task{}
	m.submitting = false
	m.errMsg = ""
	m.fb.title = ""
	m.fb.description = ""
	m.fb.deadline = m.now().Format(model.DateLayout)
	m.fb.completed = false
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form from the task's current values.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.createMode = false
	m.original = task
	m.submitting = false
	m.errMsg = ""
	m.fb.title = task.Title
	m.fb.description = task.Description
	m.fb.deadline = ""
	if !task.Deadline.IsZero() {
		m.fb.deadline = task.Deadline.Format(model.DateLayout)
	}
	m.fb.completed = task.IsCompleted
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError reopens the form with the current bindings and an inline
// failure message.
func (m *Model) SetError(text string) tea.Cmd {
	m.submitting = false
	m.errMsg = text
	m.form = m.buildForm()
	return m.form.Init()
}

// Reset clears edit state after a successful save.
func (m *Model) Reset() {
	m.form = nil
	m.original = model.Task{}
	m.submitting = false
	m.errMsg = ""
}

// Editing reports the ID of the task being edited, or 0 when creating.
func (m Model) Editing() int64 {
	if m.createMode {
		return 0
	}
	return m.original.ID
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.submitting {
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitting = true
		return m, m.submit()
	case huh.StateAborted:
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Edit Task"
	if m.createMode {
		titleText = "New Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections := []string{titleStyle.Render(titleText)}
	if m.errMsg != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errMsg))
	}
	if m.submitting {
		sections = append(sections, theme.HelpStyle.Render("Saving..."))
	} else {
		sections = append(sections, m.form.View())
	}

	return theme.FormPanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Details...").
			Value(&m.fb.description).
			Validate(validateRequired("Description")),
		huh.NewInput().
			Title("Deadline").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.deadline).
			Validate(validateDate),
		huh.NewConfirm().
			Title("Completed").
			Affirmative("Yes").
			Negative("No").
			Value(&m.fb.completed),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// submit builds the task from the bindings. An unchanged deadline day
// keeps the original time of day.
func (m Model) submit() tea.Cmd {
	task := model.Task{
		Title:       strings.TrimSpace(m.fb.title),
		Description: strings.TrimSpace(m.fb.description),
		IsCompleted: m.fb.completed,
	}

	day := strings.TrimSpace(m.fb.deadline)
	if !m.createMode && !m.original.Deadline.IsZero() &&
		day == m.original.Deadline.Format(model.DateLayout) {
		task.Deadline = m.original.Deadline
	} else if d, err := time.Parse(model.DateLayout, day); err == nil {
		task.Deadline = d
	}

	create := m.createMode
	if !create {
		task.ID = m.original.ID
	}
	return func() tea.Msg { return TaskSubmittedMsg{Task: task, Create: create} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("Deadline is required")
	}
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
