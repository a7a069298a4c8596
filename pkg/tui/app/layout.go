package teaui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/herbview/pkg/layout"
	"tableflip.dev/herbview/pkg/tui/events"
	"tableflip.dev/herbview/pkg/tui/ui"
)

const (
	statusRows   = 1
	minListWidth = 22
	maxListWidth = 40
	minQuizRows  = 6
)

// rect is a pane's outer box in screen cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// local converts screen coordinates to coordinates inside the pane border.
func (r rect) local(x, y int) (int, int) {
	return x - r.x - 1, y - r.y - 1
}

func (r rect) inner() (int, int) {
	return max(1, r.w-2), max(1, r.h-2)
}

// layoutPanes recomputes every pane rectangle from the window size. The
// list takes a quarter of the width; the remainder is the splitter
// container holding viewport, handle and info column.
func (m *Model) layoutPanes() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	total := max(1, m.height-statusRows)
	debugRows := 0
	if m.debugEnabled {
		debugRows = m.computeDebugHeight(total)
	}
	m.mainRows = max(1, total-debugRows)

	listW := min(m.width, clamp(m.width/4, minListWidth, maxListWidth))
	m.listRect = rect{x: 0, y: 0, w: listW, h: m.mainRows}
	m.list.SetSize(m.listRect.inner())

	widths := m.splitter.SetContainer(layout.Container{Left: listW, Width: m.width - listW})
	m.applyWidths(widths)

	if debugRows > 0 && m.eventViewer != nil {
		m.debugRect = rect{x: 0, y: m.mainRows, w: m.width, h: debugRows}
		m.eventViewer.SetSize(m.width, debugRows)
	} else {
		m.debugRect = rect{}
	}
}

// applyWidths places viewport, handle and info column for a split. It is
// also the splitter's reflow hook.
func (m *Model) applyWidths(w layout.Widths) {
	left := m.listRect.w
	rows := m.mainRows
	m.viewerRect = rect{x: left, y: 0, w: w.Viewer, h: rows}

	infoX := left + w.Viewer + w.Splitter
	quizRows := min(rows, max(minQuizRows, rows*2/5))
	m.detailRect = rect{x: infoX, y: 0, w: w.Info, h: rows - quizRows}
	m.quizRect = rect{x: infoX, y: rows - quizRows, w: w.Info, h: quizRows}

	m.viewer.SetSize(m.viewerRect.inner())
	m.detail.SetSize(m.detailRect.inner())
	m.quiz.SetSize(m.quizRect.inner())
}

func (m *Model) splitterCmd() tea.Cmd {
	w := m.splitter.Widths()
	msg := events.SplitterMsg{
		Component: splitterID,
		Viewer:    w.Viewer,
		Info:      w.Info,
		Dragging:  m.splitter.Dragging(),
	}
	return func() tea.Msg { return msg }
}

func (m *Model) computeDebugHeight(totalRows int) int {
	if totalRows <= 4 {
		return 0
	}
	minHeight := 5
	maxHeight := totalRows - 1
	if maxHeight < minHeight {
		return maxHeight
	}
	return clamp(totalRows/3, minHeight, min(12, maxHeight))
}

// pane frames a component's view in r, clipping it to the inner box so the
// border never wraps.
func (m *Model) pane(c ui.Focusable, r rect) string {
	if r.w <= 0 || r.h <= 0 {
		return ""
	}
	if r.w < 3 || r.h < 3 {
		return blankBlock(r.w, r.h)
	}
	iw, ih := r.inner()
	style := m.theme.Panel.Frame
	if c.Focused() {
		style = m.theme.Panel.Focused
	}
	return style.Width(r.w).Height(r.h).Render(clipBlock(c.View(), iw, ih))
}

func (m *Model) handleView() string {
	w := m.splitter.Widths().Splitter
	if w <= 0 {
		return ""
	}
	style := m.theme.Splitter.Idle
	glyph := "│"
	if m.splitter.Dragging() {
		style = m.theme.Splitter.Dragging
		glyph = "┃"
	}
	line := strings.Repeat(glyph, w)
	lines := make([]string, m.mainRows)
	for i := range lines {
		lines[i] = line
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) infoView() string {
	detail := m.pane(m.detail, m.detailRect)
	quiz := m.pane(m.quiz, m.quizRect)
	switch {
	case detail == "":
		return quiz
	case quiz == "":
		return detail
	}
	return lipgloss.JoinVertical(lipgloss.Left, detail, quiz)
}

func clipBlock(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = truncate.String(line, uint(width))
	}
	return strings.Join(lines, "\n")
}

func blankBlock(width, height int) string {
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func clamp(value, lower, upper int) int {
	if upper <= 0 {
		return lower
	}
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}
