package taskform

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasktracker/internal/model"
)

func sample() model.Task {
	return model.Task{
		ID:          3,
		Title:       "A",
		Description: "d",
		Deadline:    time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		IsCompleted: false,
	}
}

func submitted(t *testing.T, m Model) TaskSubmittedMsg {
	t.Helper()
	cmd := m.submit()
	require.NotNil(t, cmd)
	msg, ok := cmd().(TaskSubmittedMsg)
	require.True(t, ok)
	return msg
}

func TestStartEdit_PrefillsBindings(t *testing.T) {
	m := New(80, 24)
	m.StartEdit(sample())

	assert.Equal(t, "A", m.fb.title)
	assert.Equal(t, "d", m.fb.description)
	assert.Equal(t, "2024-01-01", m.fb.deadline)
	assert.False(t, m.fb.completed)
	assert.Equal(t, int64(3), m.Editing())
	assert.Contains(t, m.View(), "Edit Task")
}

func TestStartCreate_DefaultsDeadlineToToday(t *testing.T) {
	m := New(80, 24)
	m.now = func() time.Time { return time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC) }
	m.StartCreate()

	assert.Empty(t, m.fb.title)
	assert.Equal(t, "2025-07-04", m.fb.deadline)
	assert.Equal(t, int64(0), m.Editing())
	assert.Contains(t, m.View(), "New Task")
}

func TestSubmit_EditCarriesIDAndFields(t *testing.T) {
	m := New(80, 24)
	m.StartEdit(sample())
	m.fb.title = " B "
	m.fb.completed = true
	m.fb.deadline = "2024-02-15"

	msg := submitted(t, m)
	assert.False(t, msg.Create)
	assert.Equal(t, int64(3), msg.Task.ID)
	assert.Equal(t, "B", msg.Task.Title)
	assert.True(t, msg.Task.IsCompleted)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), msg.Task.Deadline)
}

func TestSubmit_UnchangedDeadlineKeepsTimeOfDay(t *testing.T) {
	m := New(80, 24)
	m.StartEdit(sample())

	msg := submitted(t, m)
	assert.Equal(t, sample().Deadline, msg.Task.Deadline)
}

func TestSubmit_Create(t *testing.T) {
	m := New(80, 24)
	m.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	m.StartCreate()
	m.fb.title = "A"
	m.fb.description = "d"

	msg := submitted(t, m)
	assert.True(t, msg.Create)
	assert.Zero(t, msg.Task.ID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), msg.Task.Deadline)
}

func TestSetError_KeepsBindingsAndShowsMessage(t *testing.T) {
	m := New(80, 24)
	m.StartEdit(sample())
	m.fb.title = "edited"
	m.submitting = true

	m.SetError(UpdateFailedText)

	assert.False(t, m.submitting)
	assert.Equal(t, "edited", m.fb.title, "edits survive a failed save")
	assert.Equal(t, int64(3), m.Editing())
	assert.Contains(t, m.View(), UpdateFailedText)
}

func TestEscCancels(t *testing.T) {
	m := New(80, 24)
	m.StartEdit(sample())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(TaskFormCancelMsg)
	assert.True(t, ok)
}

func TestUpdate_IgnoredWhileSubmitting(t *testing.T) {
	m := New(80, 24)
	m.StartEdit(sample())
	m.submitting = true

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Saving...")
}

func TestReset(t *testing.T) {
	m := New(80, 24)
	m.StartEdit(sample())
	m.Reset()

	assert.Empty(t, m.View())
	assert.Equal(t, int64(0), m.original.ID)
}

func TestValidators(t *testing.T) {
	assert.Error(t, validateRequired("Title")("  "))
	assert.NoError(t, validateRequired("Title")("x"))

	assert.Error(t, validateDate(""))
	assert.Error(t, validateDate("01/02/2024"))
	assert.NoError(t, validateDate("2024-01-02"))
}
