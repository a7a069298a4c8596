// Package eventviewer is the debug dock that lists every message the root
// model routes, newest first.
package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/herbview/pkg/tui/events"
	"tableflip.dev/herbview/pkg/tui/theme"
	"tableflip.dev/herbview/pkg/tui/ui"
)

// Level indicates the severity of a logged event.
type Level int

const (
	// LevelInfo is the default severity.
	LevelInfo Level = iota
	// LevelWarn marks recoverable problems such as a failed reload.
	LevelWarn
	// LevelError marks failures such as a broken asset.
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Entry is one logged message.
type Entry struct {
	Timestamp time.Time
	Source    string
	Summary   string
	Detail    string
	Level     Level
}

// Model is the dock. Keys while focused: home/g top, end/G bottom, e cycles
// the minimum level shown.
type Model struct {
	id       events.ComponentID
	viewport viewport.Model
	entries  []Entry
	counts   [LevelError + 1]int

	maxEntries int
	minLevel   Level
	followTop  bool
	focused    bool

	width  int
	height int

	content string
	frame   lipgloss.Style
	focus   lipgloss.Style
	styles  theme.EventsTheme
}

// NewModel constructs a dock keeping at most maxEntries entries.
func NewModel(id events.ComponentID, maxEntries int) *Model {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	vp := viewport.New(
		viewport.WithWidth(1),
		viewport.WithHeight(1),
	)
	vp.MouseWheelEnabled = true
	th := theme.Default()
	return &Model{
		id:         id,
		viewport:   vp,
		maxEntries: maxEntries,
		followTop:  true,
		frame:      th.Panel.Frame,
		focus:      th.Panel.Focused,
		styles:     th.Events,
	}
}

// ID returns the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component. Scrolling away from the top stops the dock
// following new entries.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyPressMsg:
		if !m.focused {
			return m, nil
		}
		switch v.String() {
		case "home", "g":
			m.viewport.SetYOffset(0)
			m.followTop = true
			return m, nil
		case "end", "G":
			m.viewport.GotoBottom()
			m.followTop = false
			return m, nil
		case "e":
			m.SetMinLevel((m.minLevel + 1) % (LevelError + 1))
			return m, nil
		}
	case tea.MouseWheelMsg:
	default:
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.followTop = m.viewport.AtTop()
	return m, cmd
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

// Focused reports whether the dock receives keys.
func (m *Model) Focused() bool { return m.focused }

// SetSize resizes the dock including its border and header row.
func (m *Model) SetSize(width, height int) {
	width = max(width, 4)
	height = max(height, 3)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	m.viewport.SetWidth(max(1, width-2))
	m.viewport.SetHeight(max(1, height-3))
	m.refreshContent()
}

// View renders the bordered dock.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left, m.header(), m.viewport.View())
	frame := m.frame
	if m.focused {
		frame = m.focus
	}
	return frame.Width(m.width).Height(m.height).Render(body)
}

func (m *Model) header() string {
	text := fmt.Sprintf("Events (%d)", len(m.entries))
	if n := m.counts[LevelWarn] + m.counts[LevelError]; n > 0 {
		text += fmt.Sprintf("  warn:%d error:%d", m.counts[LevelWarn], m.counts[LevelError])
	}
	if m.minLevel > LevelInfo {
		text += fmt.Sprintf("  [>= %s]", m.minLevel)
	}
	return m.styles.Header.Render(text)
}

// Append inserts a new entry at the top of the dock. The oldest entry is
// dropped beyond the cap.
func (m *Model) Append(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Source == "" {
		entry.Source = "tea"
	}
	if entry.Summary == "" {
		entry.Summary = "event"
	}
	m.entries = append([]Entry{entry}, m.entries...)
	m.counts[entry.Level]++
	if len(m.entries) > m.maxEntries {
		dropped := m.entries[m.maxEntries]
		m.counts[dropped.Level]--
		m.entries = m.entries[:m.maxEntries]
	}
	m.refreshContent()
	if m.followTop {
		m.viewport.SetYOffset(0)
	}
}

// Entries returns the logged entries, newest first.
func (m *Model) Entries() []Entry { return m.entries }

// SetMinLevel hides entries below l.
func (m *Model) SetMinLevel(l Level) {
	m.minLevel = l
	m.refreshContent()
	m.viewport.SetYOffset(0)
	m.followTop = true
}

// MinLevel returns the current filter.
func (m *Model) MinLevel() Level { return m.minLevel }

// Content returns the rendered lines currently in the viewport.
func (m *Model) Content() string {
	return m.content
}

func (m *Model) refreshContent() {
	width := uint(max(1, m.width-2))
	lines := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		if entry.Level < m.minLevel {
			continue
		}
		lines = append(lines, truncate.StringWithTail(m.renderEntry(entry), width, "…"))
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = m.styles.Timestamp.Render("No events yet")
	}
	m.content = content
	m.viewport.SetContent(content)
}

func (m *Model) renderEntry(entry Entry) string {
	ts := m.styles.Timestamp.Render(entry.Timestamp.Format("15:04:05.000"))
	source := m.styles.Source.Render(fmt.Sprintf("[%s]", entry.Source))
	msg := entry.Summary
	if entry.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, entry.Detail)
	}
	switch entry.Level {
	case LevelWarn:
		msg = m.styles.Warn.Render(msg)
	case LevelError:
		msg = m.styles.Error.Render(msg)
	default:
		msg = m.styles.Info.Render(msg)
	}
	return fmt.Sprintf("%s %s %s", ts, source, msg)
}
