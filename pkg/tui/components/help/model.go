// Package help is the key help window. Bindings are rendered as markdown
// through Glamour and scrolled in a viewport.
package help

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
)

// Binding is one row of help: the keys and what they do.
type Binding struct {
	Keys   string
	Action string
}

// Section groups bindings under a heading.
type Section struct {
	Title    string
	Bindings []Binding
}

// Markdown renders sections as a markdown document.
func Markdown(title string, sections []Section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	for _, s := range sections {
		fmt.Fprintf(&b, "\n## %s\n\n", s.Title)
		for _, k := range s.Bindings {
			fmt.Fprintf(&b, "- `%s` %s\n", k.Keys, k.Action)
		}
	}
	return b.String()
}

// Model is the framed, scrollable help window.
type Model struct {
	viewport viewport.Model
	width    int
	height   int
	markdown string

	frame   lipgloss.Style
	content string
	err     error
}

// New renders sections into a window of the given outer size. Sizes below
// 32x8 are raised to that floor.
func New(title string, sections []Section, width, height int) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	m := &Model{
		viewport: vp,
		markdown: Markdown(title, sections),
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")),
	}
	m.SetSize(width, height)
	return m
}

// Update forwards scrolling keys and the wheel to the viewport.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// View renders the window.
func (m *Model) View() string {
	return m.frame.Width(m.width).Height(m.height).Render(m.viewport.View())
}

// Size returns the outer size.
func (m *Model) Size() (int, int) { return m.width, m.height }

// Content returns the rendered help without styling.
func (m *Model) Content() string { return m.content }

// Err reports a Glamour failure; the window then shows the raw markdown.
func (m *Model) Err() error { return m.err }

// SetSize resizes the window and re-renders the markdown to the new width.
func (m *Model) SetSize(width, height int) {
	width = max(width, 32)
	height = max(height, 8)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	inner := max(width-m.frame.GetHorizontalFrameSize(), 1)
	m.viewport.SetWidth(inner)
	m.viewport.SetHeight(max(height-m.frame.GetVerticalFrameSize(), 1))
	m.render(inner)
}

func (m *Model) render(width int) {
	m.content, m.err = renderMarkdown(m.markdown, max(width, 10))
	if m.err != nil {
		m.content = m.markdown
	}
	m.viewport.SetContent(m.content)
	m.viewport.SetYOffset(0)
}

func renderMarkdown(md string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", err
	}
	return stripANSI(out), nil
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
