package command

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktracker/internal/theme"
)

// Command names understood by the palette.
const (
	Refresh = "refresh"
	New     = "new"
	Filter  = "filter"
	Sort    = "sort"
	Theme   = "theme"
	Quit    = "quit"
)

// argChoices lists the accepted argument for commands that take one.
var argChoices = map[string][]string{
	Filter: {"all", "pending", "completed"},
	Sort:   {"deadline", "title", "status"},
}

// aliases maps shorthand to the canonical command name.
var aliases = map[string]string{
	"r":      Refresh,
	"reload": Refresh,
	"q":      Quit,
	"n":      New,
	"create": New,
}

// Command is a parsed palette entry.
type Command struct {
	Name string
	Arg  string
}

// CommandMsg is emitted when the user executes a valid command.
type CommandMsg Command

// Parse turns palette input into a Command.
func Parse(input string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	name := fields[0]
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}

	choices, takesArg := argChoices[name]
	switch {
	case takesArg:
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: %s %s", name, strings.Join(choices, "|"))
		}
		for _, c := range choices {
			if c == fields[1] {
				return Command{Name: name, Arg: c}, nil
			}
		}
		return Command{}, fmt.Errorf("unknown %s %q: use %s", name, fields[1], strings.Join(choices, "|"))

	case name == Refresh, name == New, name == Theme, name == Quit:
		if len(fields) > 1 {
			return Command{}, fmt.Errorf("%s takes no argument", name)
		}
		return Command{Name: name}, nil
	}

	return Command{}, fmt.Errorf("unknown command %q", fields[0])
}

// suggestions lists every full command line for tab completion.
func suggestions() []string {
	out := []string{Refresh, New, Theme, Quit}
	for _, name := range []string{Filter, Sort} {
		for _, arg := range argChoices[name] {
			out = append(out, name+" "+arg)
		}
	}
	return out
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	errMsg string
	width  int
	height int
}

// NewModel creates a new command palette model.
func NewModel(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "refresh | new | filter pending | sort title | theme | quit"
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(suggestions())
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			raw := strings.TrimSpace(m.input.Value())
			if raw == "" {
				return m, nil
			}
			parsed, err := Parse(raw)
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.input.Reset()
			m.errMsg = ""
			return m, func() tea.Msg {
				return CommandMsg(parsed)
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections := []string{titleStyle.Render("Command Palette"), m.input.View()}
	if m.errMsg != "" {
		sections = append(sections, theme.ErrorStyle.Render(m.errMsg))
	}

	return theme.BorderStyle.
		Padding(1, 2).
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus clears any previous error and gives keyboard focus to the input.
func (m *Model) Focus() tea.Cmd {
	m.errMsg = ""
	m.input.Reset()
	return m.input.Focus()
}
