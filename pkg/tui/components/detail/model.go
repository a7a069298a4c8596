// Package detail renders the metadata of the active catalog item.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/tui/events"
	"tableflip.dev/herbview/pkg/tui/theme"
	"tableflip.dev/herbview/pkg/tui/ui"
)

// Placeholder is rendered for missing scalar fields.
const Placeholder = "-"

// Model shows title, names, source plant, part, extra, description and the
// image gallery for one item in a scrollable viewport.
type Model struct {
	id       events.ComponentID
	theme    theme.Theme
	viewport viewport.Model
	item     *catalog.Item
	focused  bool

	width  int
	height int
}

var _ ui.Focusable = (*Model)(nil)

// New returns an empty detail pane.
func New(id events.ComponentID, th theme.Theme) *Model {
	vp := viewport.New(viewport.WithWidth(1), viewport.WithHeight(1))
	vp.MouseWheelEnabled = true
	m := &Model{id: id, theme: th, viewport: vp}
	m.refresh()
	return m
}

// ID implements ui.Focusable.
func (m *Model) ID() events.ComponentID { return m.id }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Item returns the item on display, or nil.
func (m *Model) Item() *catalog.Item { return m.item }

// Selected implements selection.Observer.
func (m *Model) Selected(item *catalog.Item) {
	m.item = item
	m.refresh()
	m.viewport.SetYOffset(0)
}

// Cleared implements selection.Clearer.
func (m *Model) Cleared() {
	m.item = nil
	m.refresh()
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyPressMsg:
		if !m.focused {
			return m, nil
		}
		switch v.String() {
		case "home", "g":
			m.viewport.SetYOffset(0)
			return m, nil
		case "end", "G":
			m.viewport.GotoBottom()
			return m, nil
		}
	case tea.MouseWheelMsg:
	default:
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
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

// Focused implements ui.Focusable.
func (m *Model) Focused() bool { return m.focused }

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	width = max(1, width)
	height = max(1, height)
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.viewport.SetWidth(width)
	m.viewport.SetHeight(height)
	m.refresh()
}

// View implements ui.Component.
func (m *Model) View() string { return m.viewport.View() }

// Content returns the full, unscrolled rendering.
func (m *Model) Content() string { return m.render() }

func (m *Model) refresh() {
	m.viewport.SetContent(m.render())
}

func (m *Model) render() string {
	th := m.theme.Detail
	if m.item == nil {
		return m.theme.Panel.Muted.Render("モデルが選択されていません。")
	}
	item := m.item
	var lines []string

	lines = append(lines, th.Title.Render(m.fill(item.NameJa)))
	lines = append(lines, th.Latin.Render(m.fill(item.LatinName)))
	lines = append(lines, "")
	lines = append(lines, m.field("基原植物", m.sourcePlant()))
	lines = append(lines, m.field("部位", th.Value.Render(orDash(item.Part))))
	lines = append(lines, m.field("その他", th.Value.Render(orDash(item.Extra))))

	if item.Description != "" {
		lines = append(lines, "")
		lines = append(lines, m.wrapText(item.Description))
	}

	if len(item.Images) > 0 {
		lines = append(lines, "")
		lines = append(lines, th.Label.Render("画像"))
		for i, img := range item.Images {
			alt := img.Caption
			if alt == "" {
				alt = item.NameJa
			}
			lines = append(lines, th.Value.Render(m.wrapText(fmt.Sprintf("[%d] %s", i+1, alt))))
			lines = append(lines, th.Link.Render(m.wrapText("    "+img.Src)))
		}
	}

	if item.FileURL != "" {
		lines = append(lines, "")
		lines = append(lines, m.field("モデル", th.Link.Render(item.FileURL)))
	}
	return strings.Join(lines, "\n")
}

// sourcePlant renders the italic binomial followed by the upright author,
// else the legacy string verbatim, else the placeholder.
func (m *Model) sourcePlant() string {
	th := m.theme.Detail
	line := m.item.Plant()
	switch line.Kind {
	case catalog.SourcePlantSplit:
		parts := make([]string, 0, 2)
		if line.Latin != "" {
			parts = append(parts, th.Latin.Render(line.Latin))
		}
		if line.Author != "" {
			parts = append(parts, th.Author.Render(line.Author))
		}
		return strings.Join(parts, " ")
	case catalog.SourcePlantLegacy:
		return th.Value.Render(line.Legacy)
	default:
		return th.Value.Render(Placeholder)
	}
}

func (m *Model) field(label, value string) string {
	return m.theme.Detail.Label.Render(label+": ") + value
}

func (m *Model) fill(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// wrapText soft-wraps on spaces and hard-wraps runs without them, which is
// what Japanese prose needs.
func (m *Model) wrapText(s string) string {
	w := max(1, m.width)
	return wrap.String(wordwrap.String(s, w), w)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
