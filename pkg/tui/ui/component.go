package ui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/herbview/pkg/tui/events"
)

// Component defines the contract for reusable Bubble Tea widgets.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Focusable is a component that takes part in the Tab focus ring. Focus and
// Blur return the FocusMsg/BlurMsg commands so the root can log them.
type Focusable interface {
	Component
	ID() events.ComponentID
	Focus() tea.Cmd
	Blur() tea.Cmd
	Focused() bool
}
