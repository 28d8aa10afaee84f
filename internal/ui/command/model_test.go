package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"refresh", Command{Name: Refresh}},
		{"  R ", Command{Name: Refresh}},
		{"new", Command{Name: New}},
		{"create", Command{Name: New}},
		{"filter pending", Command{Name: Filter, Arg: "pending"}},
		{"FILTER Completed", Command{Name: Filter, Arg: "completed"}},
		{"sort title", Command{Name: Sort, Arg: "title"}},
		{"theme", Command{Name: Theme}},
		{"q", Command{Name: Quit}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{"", "filter", "filter done", "sort priority", "theme dark", "delete 3"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}

func TestModel_EnterEmitsCommand(t *testing.T) {
	m := NewModel(80, 20)
	for _, r := range "sort status" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg{Name: Sort, Arg: "status"}, cmd())
	assert.Empty(t, m.input.Value())
}

func TestModel_InvalidCommandShowsError(t *testing.T) {
	m := NewModel(80, 20)
	for _, r := range "bogus" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "unknown command")

	m.Focus()
	assert.NotContains(t, m.View(), "unknown command")
}
