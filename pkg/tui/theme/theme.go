package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer   FooterTheme
	Panel    PanelTheme
	Card     CardTheme
	Detail   DetailTheme
	Quiz     QuizTheme
	Splitter SplitterTheme
	Events   EventsTheme
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help     lipgloss.Style
	Status   lipgloss.Style
	Location lipgloss.Style
	Error    lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame   lipgloss.Style
	Focused lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
}

// CardTheme styles the catalog list cards and filter controls.
type CardTheme struct {
	Name      lipgloss.Style
	Latin     lipgloss.Style
	Tag       lipgloss.Style
	Active    lipgloss.Style
	Inactive  lipgloss.Style
	Cursor    lipgloss.Style
	TagFilter lipgloss.Style
}

// DetailTheme styles the item detail pane.
type DetailTheme struct {
	Title  lipgloss.Style
	Latin  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Author lipgloss.Style
	Link   lipgloss.Style
}

// QuizTheme styles the quiz pane.
type QuizTheme struct {
	Question  lipgloss.Style
	Option    lipgloss.Style
	Cursor    lipgloss.Style
	Disabled  lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
}

// SplitterTheme styles the drag handle between viewport and info panel.
type SplitterTheme struct {
	Idle     lipgloss.Style
	Dragging lipgloss.Style
}

// EventsTheme styles the debug event dock.
type EventsTheme struct {
	Header    lipgloss.Style
	Info      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Timestamp lipgloss.Style
	Source    lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))
	tag := lipgloss.NewStyle().
		Foreground(lipgloss.Color("151")).
		Background(lipgloss.Color("236")).
		Padding(0, 1)

	return Theme{
		Footer: FooterTheme{
			Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Location: lipgloss.NewStyle().Foreground(lipgloss.Color("109")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		},
		Panel: PanelTheme{
			Frame:   frame,
			Focused: frame.BorderForeground(lipgloss.Color("212")),
			Title:   lipgloss.NewStyle().Bold(true),
			Body:    lipgloss.NewStyle(),
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f97373")).Bold(true),
		},
		Card: CardTheme{
			Name:      lipgloss.NewStyle().Bold(true),
			Latin:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250")),
			Tag:       tag,
			Active:    lipgloss.NewStyle().Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(lipgloss.Color("212")).PaddingLeft(1),
			Inactive:  lipgloss.NewStyle().Border(lipgloss.HiddenBorder(), false, false, false, true).PaddingLeft(1),
			Cursor:    lipgloss.NewStyle().Background(lipgloss.Color("237")),
			TagFilter: lipgloss.NewStyle().Foreground(lipgloss.Color("151")),
		},
		Detail: DetailTheme{
			Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")),
			Latin:  lipgloss.NewStyle().Italic(true),
			Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Value:  lipgloss.NewStyle(),
			Author: lipgloss.NewStyle(),
			Link:   lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("109")),
		},
		Quiz: QuizTheme{
			Question:  lipgloss.NewStyle().Bold(true),
			Option:    lipgloss.NewStyle(),
			Cursor:    lipgloss.NewStyle().Reverse(true),
			Disabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true),
			Incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("#f97373")).Bold(true),
		},
		Splitter: SplitterTheme{
			Idle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Dragging: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		},
		Events: EventsTheme{
			Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
			Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
			Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
			Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Source:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},
	}
}
