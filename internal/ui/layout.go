package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktracker/internal/theme"
)

// Layout holds the terminal dimensions and the fixed header and status
// bar heights.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height left for the active view.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the app title on the left and a short status
// (server URL, theme) on the right.
func (l Layout) RenderHeader(title string, status string) string {
	titleRendered := theme.HeaderStyle.Render(title)
	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(status)

	filler := l.fill(theme.HeaderStyle,
		l.Width-lipgloss.Width(titleRendered)-lipgloss.Width(statusRendered))

	return lipgloss.JoinHorizontal(lipgloss.Top, titleRendered, filler, statusRendered)
}

// RenderStatusBar renders the bottom bar with hints, cut to the terminal
// width.
func (l Layout) RenderStatusBar(hints string) string {
	style := theme.StatusBarStyle
	if l.Width > 0 {
		style = style.MaxWidth(l.Width)
	}
	rendered := style.Render(hints)

	filler := l.fill(theme.StatusBarStyle, l.Width-lipgloss.Width(rendered))
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// fill pads a bar out to the full width in the bar's background.
func (l Layout) fill(style lipgloss.Style, gap int) string {
	if gap <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")
}

// RenderWithFrame stacks the header, content area and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}
