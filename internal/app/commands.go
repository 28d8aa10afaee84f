package app

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasktracker/internal/theme"
	"github.com/nhle/tasktracker/internal/ui/command"
	"github.com/nhle/tasktracker/internal/ui/tasklist"
)

// executeCommand runs a parsed command palette entry.
func (m *Model) executeCommand(c command.Command) tea.Cmd {
	switch c.Name {
	case command.Refresh:
		m.flash = ""
		return m.taskList.LoadTasks()

	case command.New:
		return m.startCreate()

	case command.Filter:
		status, ok := tasklist.ParseStatus(c.Arg)
		if !ok {
			return nil
		}
		f := m.taskList.State().Filter()
		f.Status = status
		return m.taskList.SetFilter(f)

	case command.Sort:
		key, ok := tasklist.ParseSort(c.Arg)
		if !ok {
			return nil
		}
		f := m.taskList.State().Filter()
		f.Sort = key
		return m.taskList.SetFilter(f)

	case command.Theme:
		m.themeMode = theme.Toggle()
		return nil

	case command.Quit:
		return tea.Quit
	}

	log.Printf("unhandled command %q", c.Name)
	return nil
}
