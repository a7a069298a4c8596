// Package quizpane renders the one-shot multiple-choice quiz for the active
// item.
package quizpane

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/quiz"
	"tableflip.dev/herbview/pkg/tui/events"
	"tableflip.dev/herbview/pkg/tui/theme"
	"tableflip.dev/herbview/pkg/tui/ui"
)

// Model holds a quiz.Session for the active item. A new item always starts a
// fresh session.
type Model struct {
	id      events.ComponentID
	theme   theme.Theme
	item    events.ItemRef
	session *quiz.Session
	cursor  int
	focused bool

	// options[i] holds the first and last rendered row of option i.
	options [][2]int

	width  int
	height int
}

var _ ui.Focusable = (*Model)(nil)

// New returns a pane in the unavailable state.
func New(id events.ComponentID, th theme.Theme) *Model {
	return &Model{id: id, theme: th, session: quiz.NewSession(nil)}
}

// ID implements ui.Focusable.
func (m *Model) ID() events.ComponentID { return m.id }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Session returns the current session.
func (m *Model) Session() *quiz.Session { return m.session }

// Cursor returns the option under the keyboard cursor.
func (m *Model) Cursor() int { return m.cursor }

// Selected implements selection.Observer.
func (m *Model) Selected(item *catalog.Item) {
	m.item = events.RefFromItem(item)
	m.session = quiz.NewSession(item.Quiz)
	m.cursor = 0
}

// Cleared implements selection.Clearer.
func (m *Model) Cleared() {
	m.item = events.ItemRef{}
	m.session = quiz.NewSession(nil)
	m.cursor = 0
}

// Answer picks option i. It is a no-op once the session is answered.
func (m *Model) Answer(i int) tea.Cmd {
	res, ok := m.session.Answer(i)
	if !ok {
		return nil
	}
	m.cursor = i
	return events.QuizAnswerCmd(m.id, m.item, res.Chosen, res.Correct)
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !m.focused || !m.session.Enabled() {
		return m, nil
	}
	n := len(m.session.Options())
	switch s := key.String(); s {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "enter", "space", " ":
		return m, m.Answer(m.cursor)
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			return m, m.Answer(int(s[0] - '1'))
		}
	}
	return m, nil
}

// ClickAt answers the option rendered at pane-local row y.
func (m *Model) ClickAt(_, y int) tea.Cmd {
	m.View()
	for i, rows := range m.options {
		if y >= rows[0] && y <= rows[1] {
			return m.Answer(i)
		}
	}
	return nil
}

// Focus implements ui.Focusable.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return events.FocusCmd(m.id)
}

// Blur implements ui.Focusable.
func (m *Model) Blur() tea.Cmd {
	if !m.focused {
		return nil
	}
	m.focused = false
	return events.BlurCmd(m.id)
}

// Focused implements ui.Focusable.
func (m *Model) Focused() bool { return m.focused }

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = max(1, width)
	m.height = max(1, height)
}

// View implements ui.Component.
func (m *Model) View() string {
	th := m.theme.Quiz
	m.options = m.options[:0]
	if m.session.State() == quiz.Unavailable {
		return m.theme.Panel.Muted.Render(m.wrapText(quiz.NoQuizMessage))
	}

	var lines []string
	lines = append(lines, strings.Split(th.Question.Render(m.wrapText(m.session.Question())), "\n")...)
	lines = append(lines, "")
	for i, opt := range m.session.Options() {
		mark := "  "
		style := th.Option
		switch m.session.Mark(i) {
		case quiz.MarkCorrect:
			mark, style = "✓ ", th.Correct
		case quiz.MarkIncorrect:
			mark, style = "✗ ", th.Incorrect
		default:
			if !m.session.Enabled() {
				style = th.Disabled
			}
		}
		if m.focused && m.session.Enabled() && i == m.cursor {
			style = style.Inherit(th.Cursor)
		}
		text := m.wrapText(fmt.Sprintf("%s%d. %s", mark, i+1, opt))
		rows := strings.Split(style.Render(text), "\n")
		m.options = append(m.options, [2]int{len(lines), len(lines) + len(rows) - 1})
		lines = append(lines, rows...)
	}

	if res := m.session.Result(); res.Feedback != "" {
		lines = append(lines, "")
		fb := lipgloss.NewStyle().Foreground(lipgloss.Color(res.Color)).Bold(true)
		lines = append(lines, strings.Split(fb.Render(m.wrapText(res.Feedback)), "\n")...)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) wrapText(s string) string {
	w := max(1, m.width)
	return wrap.String(wordwrap.String(s, w), w)
}
