package tasklist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns the task body for the list.
func (i TaskItem) Description() string { return i.Task.Description }

// TaskDelegate implements list.ItemDelegate for rendering task lines.
type TaskDelegate struct {
	// now is injectable for overdue checks in tests.
	now func() time.Time
}

// Height returns the number of lines each item takes: the task line and
// its description.
func (d TaskDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d TaskDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d TaskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a task row: status, title, deadline, then the description.
func (d TaskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.renderLine(ti.Task, index == m.Index(), m.Width()))
}

func (d TaskDelegate) renderLine(t model.Task, isSelected bool, width int) string {
	// ✓ for complete, ○ for pending
	prefix := "○"
	if t.IsCompleted {
		prefix = "✓"
	}

	statusBadge := theme.StatusStyle(t.Status()).Render(t.Status())

	deadline := ""
	if !t.Deadline.IsZero() {
		deadline = theme.DeadlineStyle.Render(" " + t.Deadline.Format(model.DateLayout))
	}

	overdue := ""
	if d.isOverdue(t) {
		overdue = theme.OverdueStyle.Render(" OVERDUE")
	}

	line := fmt.Sprintf("%s %s %s%s%s", prefix, statusBadge, t.Title, deadline, overdue)

	if t.IsCompleted {
		line = theme.DimmedStyle.Render(line)
	}

	desc := theme.DescriptionStyle
	if width > 4 {
		desc = desc.MaxWidth(width - 4)
	}
	block := line + "\n" + desc.Render(firstLine(t.Description))

	if isSelected {
		return theme.SelectedItemStyle.Render(block)
	}
	return theme.ListItemStyle.Render(block)
}

// firstLine returns s up to its first line break.
func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// isOverdue reports a pending task whose deadline day is before today.
func (d TaskDelegate) isOverdue(t model.Task) bool {
	if t.IsCompleted || t.Deadline.IsZero() {
		return false
	}
	now := time.Now
	if d.now != nil {
		now = d.now
	}
	today := now().UTC().Truncate(24 * time.Hour)
	return t.Deadline.Before(today)
}

// toItems converts tasks into list items, preserving order.
func toItems(tasks []model.Task) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = TaskItem{Task: t}
	}
	return items
}
