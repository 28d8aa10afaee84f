package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasktracker/internal/keys"
	"github.com/nhle/tasktracker/internal/theme"
	"github.com/nhle/tasktracker/internal/ui"
	"github.com/nhle/tasktracker/internal/ui/command"
	helpview "github.com/nhle/tasktracker/internal/ui/help"
	"github.com/nhle/tasktracker/internal/ui/taskform"
	"github.com/nhle/tasktracker/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewForm
	ViewHelp
	ViewCommand
)

// Options carries the display settings the root model needs.
type Options struct {
	// ServerURL is shown in the header.
	ServerURL string
	// Theme is one of theme.ModeAuto, theme.ModeDark or theme.ModeLight.
	Theme string
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and calls to the Task API.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	service      TaskService
	keys         *keys.KeyMap
	taskList     tasklist.Model
	taskForm     taskform.Model
	helpView     helpview.Model
	commandView  command.Model
	serverURL    string
	themeMode    string
	flash        string
	ready        bool
}

// New creates a new root application model backed by svc.
func New(svc TaskService, opts Options) Model {
	k := keys.DefaultKeyMap()

	mode := opts.Theme
	if mode == "" {
		mode = theme.ModeAuto
	}
	theme.Apply(mode)

	return Model{
		currentView: ViewList,
		service:     svc,
		keys:        k,
		taskList:    tasklist.New(svc, k, 80, 24),
		taskForm:    taskform.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.NewModel(80, 24),
		serverURL:   opts.ServerURL,
		themeMode:   mode,
	}
}

// Init starts the initial task load.
func (m Model) Init() tea.Cmd {
	return m.taskList.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.taskForm.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case tasklist.TasksLoadedMsg:
		// Loads finish in the background whatever view is active.
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd

	case tasklist.EditTaskMsg:
		m.flash = ""
		m.previousView = m.currentView
		m.currentView = ViewForm
		return m, m.taskForm.StartEdit(msg.Task)

	case taskform.TaskSubmittedMsg:
		if msg.Create {
			return m, m.createTask(msg.Task)
		}
		return m, m.updateTask(msg.Task)

	case taskform.TaskFormCancelMsg:
		m.taskForm.Reset()
		m.currentView = ViewList
		return m, nil

	case taskSavedMsg:
		return m.handleSaved(msg)

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(command.Command(msg))

	case tea.KeyMsg:
		if next, cmd, handled := m.handleGlobalKeys(msg); handled {
			return next, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that apply regardless of the focused
// component. handled is false when the key should fall through.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}

	switch m.currentView {
	case ViewHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, false

	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, false

	case ViewForm:
		// Keys belong to the form fields.
		return m, nil, false
	}

	// List view: leave keys alone while the search box has focus.
	if m.taskList.InSearchMode() {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus(), true

	case key.Matches(msg, m.keys.Refresh):
		m.flash = ""
		return m, m.taskList.LoadTasks(), true

	case key.Matches(msg, m.keys.New):
		return m, m.startCreate(), true

	case key.Matches(msg, m.keys.ToggleTheme):
		m.themeMode = theme.Toggle()
		return m, nil, true
	}

	return m, nil, false
}

// handleSaved applies the result of an update or create request.
func (m Model) handleSaved(msg taskSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.taskList.UpdateFailed(msg.err)
		text := taskform.UpdateFailedText
		if msg.create {
			text = taskform.CreateFailedText
		}
		return m, m.taskForm.SetError(text)
	}

	var cmd tea.Cmd
	if m.taskList.State().Phase() == tasklist.PhaseLoaded {
		cmd = m.taskList.ApplyUpdate(*msg.task)
	} else {
		cmd = m.taskList.LoadTasks()
	}
	m.taskForm.Reset()
	m.currentView = ViewList
	if msg.create {
		m.flash = fmt.Sprintf("Created task #%d", msg.task.ID)
	} else {
		m.flash = fmt.Sprintf("Saved task #%d", msg.task.ID)
	}
	return m, cmd
}

// startCreate opens an empty form. It is a no-op until a load succeeds.
func (m *Model) startCreate() tea.Cmd {
	if m.taskList.State().Phase() != tasklist.PhaseLoaded {
		return nil
	}
	m.flash = ""
	m.previousView = ViewList
	m.currentView = ViewForm
	return m.taskForm.StartCreate()
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Task Tracker", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewForm:
		return m.taskForm.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// headerStatus shows the server and the active colour mode.
func (m Model) headerStatus() string {
	if m.serverURL == "" {
		return m.themeMode
	}
	return fmt.Sprintf("%s | %s", m.serverURL, m.themeMode)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewForm:
		return "tab next field | enter submit | esc cancel"
	}

	if m.taskList.InSearchMode() {
		return "type to search | enter keep | esc clear"
	}
	hints := m.taskList.FilterSummary() + " | n new | / search | s status | tab sort | ? help"
	if m.flash != "" {
		return m.flash + " | " + hints
	}
	return hints
}
