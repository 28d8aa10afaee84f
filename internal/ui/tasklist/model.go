package tasklist

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktracker/internal/keys"
	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/theme"
)

// LoadFailedText is the only thing rendered after a failed load.
const LoadFailedText = "Failed to load tasks."

// Loader fetches the authoritative task list.
type Loader interface {
	FetchTasks(ctx context.Context) ([]model.Task, error)
}

// TasksLoadedMsg carries the result of a load. Err is set on failure.
type TasksLoadedMsg struct {
	Tasks []model.Task
	Err   error
}

// EditTaskMsg is sent when the user picks a task to edit.
type EditTaskMsg struct {
	Task model.Task
}

// Model is the task list view component.
type Model struct {
	state       State
	list        list.Model
	spinner     spinner.Model
	loader      Loader
	keys        *keys.KeyMap
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new task list model.
func New(l Loader, k *keys.KeyMap, width, height int) Model {
	lst := list.New([]list.Item{}, TaskDelegate{}, width, height-2)
	lst.Title = "Tasks"
	lst.SetShowStatusBar(false)
	lst.SetShowHelp(false)
	lst.SetFilteringEnabled(false)
	lst.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search title or description..."
	si.Prompt = "/ "
	si.Width = width - 4

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	st := NewState()
	st.LoadStarted()

	return Model{
		state:       st,
		list:        lst,
		spinner:     sp,
		loader:      l,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init starts the initial load. New already put the state into loading.
func (m Model) Init() tea.Cmd {
	return m.fetch()
}

// LoadTasks moves the state into loading and returns the fetch command.
func (m *Model) LoadTasks() tea.Cmd {
	m.state.LoadStarted()
	return m.fetch()
}

// fetch returns the load command together with the spinner tick.
func (m Model) fetch() tea.Cmd {
	loader := m.loader
	load := func() tea.Msg {
		tasks, err := loader.FetchTasks(context.Background())
		return TasksLoadedMsg{Tasks: tasks, Err: err}
	}
	return tea.Batch(load, m.spinner.Tick)
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		if msg.Err != nil {
			log.Printf("tasklist: load failed: %v", msg.Err)
			m.state.LoadFailed(msg.Err)
			m.list.SetItems(nil)
			return m, nil
		}
		m.state.LoadSucceeded(msg.Tasks)
		return m, m.refresh()

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.state.Failed() || m.state.Loading() {
			return m, nil
		}
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode. The query is
// applied on every keystroke.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.searchInput.Blur()
		f := m.state.Filter()
		f.Query = ""
		m.state.FilterChanged(f)
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	f := m.state.Filter()
	f.Query = m.searchInput.Value()
	m.state.FilterChanged(f)
	return m, tea.Batch(cmd, m.refresh())
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(TaskItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return EditTaskMsg{Task: item.Task}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.state.Filter().Query)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Back):
		if m.state.Filter().Query == "" {
			return m, nil
		}
		m.searchInput.Reset()
		f := m.state.Filter()
		f.Query = ""
		m.state.FilterChanged(f)
		return m, m.refresh()

	case key.Matches(msg, m.keys.CycleStatus):
		f := m.state.Filter()
		f.Status = NextStatus(f.Status)
		m.state.FilterChanged(f)
		return m, m.refresh()

	case key.Matches(msg, m.keys.CycleSort):
		f := m.state.Filter()
		f.Sort = NextSort(f.Sort)
		m.state.FilterChanged(f)
		return m, m.refresh()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// refresh rebuilds the list items from the derived view.
func (m *Model) refresh() tea.Cmd {
	return m.list.SetItems(toItems(m.state.Visible()))
}

// ApplyUpdate merges a saved task into the authoritative list.
func (m *Model) ApplyUpdate(task model.Task) tea.Cmd {
	m.state.UpdateSucceeded(task)
	return m.refresh()
}

// UpdateFailed records a failed save without touching the list.
func (m *Model) UpdateFailed(err error) {
	m.state.UpdateFailed(err)
}

// SetFilter replaces the derived-view controls, e.g. from the command palette.
func (m *Model) SetFilter(f Filter) tea.Cmd {
	m.state.FilterChanged(f)
	m.searchInput.SetValue(f.Query)
	return m.refresh()
}

// State returns a copy of the view state.
func (m Model) State() State {
	return m.state
}

// InSearchMode reports whether key presses are going to the search box.
func (m Model) InSearchMode() bool {
	return m.searchMode
}

// FilterSummary describes the active controls for the status bar.
func (m Model) FilterSummary() string {
	f := m.state.Filter()
	s := fmt.Sprintf("status: %s | sort: %s", f.Status, f.Sort)
	if f.Query != "" {
		s += fmt.Sprintf(" | search: %q", f.Query)
	}
	return s
}

// View renders the task list view.
func (m Model) View() string {
	switch {
	case m.state.Loading():
		return lipgloss.NewStyle().Padding(1, 2).
			Render(m.spinner.View() + " Loading tasks...")
	case m.state.Failed():
		return lipgloss.NewStyle().Padding(1, 2).
			Render(theme.ErrorStyle.Render(LoadFailedText))
	}

	c := m.state.Counters()
	summary := theme.SummaryStyle.Render(fmt.Sprintf(
		"Total: %d  Completed: %d  Pending: %d", c.Total, c.Completed, c.Pending,
	))

	sections := []string{summary}
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		sections = append(sections, searchBar)
	}

	if len(m.list.Items()) == 0 {
		sections = append(sections, m.renderEmptyState())
	} else {
		sections = append(sections, m.list.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderEmptyState shows guidance text when nothing is visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.state.Counters().Total > 0 {
		return style.Render("No matching tasks.\nTry adjusting your filters.")
	}
	return style.Render("No tasks yet.\n\nPress n to create one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
