// Package cardlist renders the searchable, tag-filtered list of catalog
// items as cards.
package cardlist

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/filter"
	"tableflip.dev/herbview/pkg/tui/events"
	"tableflip.dev/herbview/pkg/tui/theme"
	"tableflip.dev/herbview/pkg/tui/ui"
)

const (
	// LoadErrorMessage replaces the list when the catalog cannot be loaded.
	LoadErrorMessage = "生薬データの読み込みに失敗しました。"
	// AllTagsLabel is the tag selector entry that disables tag filtering.
	AllTagsLabel = "すべてのタグ"

	headerRows = 3
	cardGap    = 1
)

type field int

const (
	fieldCards field = iota
	fieldSearch
)

type span struct {
	start, end int
}

// Model is the list pane: search box, tag selector and item cards.
type Model struct {
	id      events.ComponentID
	theme   theme.Theme
	search  textinput.Model
	field   field
	focused bool

	catalog *catalog.Catalog
	tags    []string
	query   filter.Query
	visible []catalog.Item
	active  string
	cursor  int
	offset  int
	loadErr bool

	width  int
	height int
}

var _ ui.Focusable = (*Model)(nil)

// New returns an empty list pane.
func New(id events.ComponentID, th theme.Theme) *Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "和名・学名・IDで検索"
	return &Model{
		id:     id,
		theme:  th,
		search: search,
	}
}

// ID implements ui.Focusable.
func (m *Model) ID() events.ComponentID { return m.id }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// SetCatalog installs a freshly loaded catalog and recomputes the visible
// cards. The current keyword and tag survive, even when the tag no longer
// exists in the new catalog.
func (m *Model) SetCatalog(c *catalog.Catalog) {
	m.catalog = c
	m.loadErr = false
	m.tags = c.Tags()
	m.refilter()
}

// SetLoadError switches the pane to the inline load failure message.
func (m *Model) SetLoadError() {
	m.loadErr = true
	m.catalog = nil
	m.tags = nil
	m.visible = nil
}

// Query returns the active filter.
func (m *Model) Query() filter.Query { return m.query }

// Tags returns the tag selector entries after the "all tags" entry.
func (m *Model) Tags() []string { return m.tags }

// Visible returns the cards currently shown.
func (m *Model) Visible() []catalog.Item { return m.visible }

// Active returns the id of the card marked active.
func (m *Model) Active() string { return m.active }

// Cursor returns the index of the card under the keyboard cursor.
func (m *Model) Cursor() int { return m.cursor }

// Selected implements selection.Observer.
func (m *Model) Selected(item *catalog.Item) {
	m.active = item.ID
	if i := m.indexOf(item.ID); i >= 0 {
		m.cursor = i
		m.ensureVisible()
	}
}

// Cleared implements selection.Clearer.
func (m *Model) Cleared() { m.active = "" }

// SetKeyword sets the search text and refilters.
func (m *Model) SetKeyword(keyword string) tea.Cmd {
	m.search.SetValue(keyword)
	return m.applyKeyword()
}

// SetTag selects tag in the tag selector; "" selects all tags.
func (m *Model) SetTag(tag string) tea.Cmd {
	m.query.Tag = tag
	m.refilter()
	return m.filterCmd()
}

// CycleTag moves the tag selector by step entries, wrapping around.
func (m *Model) CycleTag(step int) tea.Cmd {
	options := append([]string{""}, m.tags...)
	cur := 0
	for i, t := range options {
		if t == m.query.Tag {
			cur = i
			break
		}
	}
	n := len(options)
	next := ((cur+step)%n + n) % n
	return m.SetTag(options[next])
}

func (m *Model) applyKeyword() tea.Cmd {
	m.query.Keyword = m.search.Value()
	m.refilter()
	return m.filterCmd()
}

func (m *Model) filterCmd() tea.Cmd {
	return events.FilterChangeCmd(m.id, m.query.Keyword, m.query.Tag, len(m.visible))
}

func (m *Model) refilter() {
	if m.catalog == nil {
		m.visible = nil
		m.cursor = 0
		m.offset = 0
		return
	}
	m.visible = filter.Catalog(m.catalog, m.query)
	if i := m.indexOf(m.active); i >= 0 {
		m.cursor = i
	} else if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
	m.offset = 0
	m.ensureVisible()
}

func (m *Model) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range m.visible {
		if m.visible[i].ID == id {
			return i
		}
	}
	return -1
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
	m.field = fieldCards
	m.search.Blur()
	return events.BlurCmd(m.id)
}

// Focused implements ui.Focusable.
func (m *Model) Focused() bool { return m.focused }

// Typing reports whether keystrokes go to the search box.
func (m *Model) Typing() bool { return m.focused && m.field == fieldSearch }

// FocusSearch moves keyboard input to the search box.
func (m *Model) FocusSearch() tea.Cmd {
	m.field = fieldSearch
	return m.search.Focus()
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !m.focused || m.loadErr {
		return m, nil
	}
	if m.field == fieldSearch {
		switch key.String() {
		case "esc", "enter", "down":
			m.field = fieldCards
			m.search.Blur()
			return m, nil
		}
		prev := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != prev {
			return m, tea.Batch(cmd, m.applyKeyword())
		}
		return m, cmd
	}

	switch key.String() {
	case "/":
		return m, m.FocusSearch()
	case "up", "k":
		return m, m.moveCursor(-1)
	case "down", "j":
		return m, m.moveCursor(1)
	case "home", "g":
		return m, m.moveCursor(-len(m.visible))
	case "end", "G":
		return m, m.moveCursor(len(m.visible))
	case "enter", "space", " ":
		return m, m.activateCursor()
	case "t":
		return m, m.CycleTag(1)
	case "T":
		return m, m.CycleTag(-1)
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) tea.Cmd {
	if len(m.visible) == 0 {
		return nil
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.visible) {
		next = len(m.visible) - 1
	}
	if next == m.cursor {
		return nil
	}
	m.cursor = next
	m.ensureVisible()
	item := &m.visible[m.cursor]
	ref := events.RefFromItem(item)
	return func() tea.Msg {
		return events.ItemHighlightMsg{Component: m.id, Item: ref}
	}
}

func (m *Model) activateCursor() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return events.ItemSelectCmd(m.id, events.RefFromItem(&m.visible[m.cursor]), true)
}

// ClickAt handles a primary click at pane-local coordinates: the search row
// focuses the search box, the tag row cycles the tag and a card selects its
// item.
func (m *Model) ClickAt(x, y int) tea.Cmd {
	if m.loadErr {
		return nil
	}
	switch {
	case y == 0:
		return m.FocusSearch()
	case y == 1:
		if x < m.width/2 {
			return m.CycleTag(-1)
		}
		return m.CycleTag(1)
	case y < headerRows:
		return nil
	}
	line := y - headerRows + m.offset
	for i, s := range m.layout() {
		if line >= s.start && line < s.end {
			m.cursor = i
			return m.activateCursor()
		}
	}
	return nil
}

// Scroll moves the card area by delta lines.
func (m *Model) Scroll(delta int) {
	total := m.totalLines()
	m.offset += delta
	if limit := total - m.cardRows(); m.offset > limit {
		m.offset = limit
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) cardHeight(item *catalog.Item) int {
	if len(item.Tags) > 0 {
		return 3
	}
	return 2
}

func (m *Model) layout() []span {
	spans := make([]span, len(m.visible))
	line := 0
	for i := range m.visible {
		h := m.cardHeight(&m.visible[i])
		spans[i] = span{start: line, end: line + h}
		line += h + cardGap
	}
	return spans
}

func (m *Model) totalLines() int {
	spans := m.layout()
	if len(spans) == 0 {
		return 0
	}
	return spans[len(spans)-1].end
}

func (m *Model) cardRows() int { return max(0, m.height-headerRows) }

func (m *Model) ensureVisible() {
	rows := m.cardRows()
	if rows == 0 || m.cursor < 0 || m.cursor >= len(m.visible) {
		return
	}
	s := m.layout()[m.cursor]
	if s.start < m.offset {
		m.offset = s.start
	}
	if s.end > m.offset+rows {
		m.offset = s.end - rows
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = max(1, width)
	m.height = max(1, height)
	m.search.SetWidth(max(1, m.width-len(m.search.Prompt)-1))
	m.ensureVisible()
}

// View implements ui.Component.
func (m *Model) View() string {
	if m.loadErr {
		return m.theme.Panel.Error.Render(m.clip(LoadErrorMessage))
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, m.search.View())
	lines = append(lines, m.tagLine())
	lines = append(lines, "")

	cards := m.cardLines()
	end := min(len(cards), m.offset+m.cardRows())
	if m.offset < end {
		lines = append(lines, cards[m.offset:end]...)
	}
	if len(m.visible) == 0 && m.catalog != nil {
		lines = append(lines, m.theme.Panel.Muted.Render(m.clip("該当するモデルがありません。")))
	}
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}

func (m *Model) tagLine() string {
	label := AllTagsLabel
	if m.query.Tag != "" {
		label = m.query.Tag
	}
	return m.clip("タグ: " + m.theme.Card.TagFilter.Render("◂ "+label+" ▸"))
}

func (m *Model) cardLines() []string {
	inner := max(1, m.width-2)
	var out []string
	for i := range m.visible {
		if i > 0 {
			for g := 0; g < cardGap; g++ {
				out = append(out, "")
			}
		}
		item := &m.visible[i]
		rows := []string{
			m.theme.Card.Name.Render(truncate.StringWithTail(item.NameJa, uint(inner), "…")),
			m.theme.Card.Latin.Render(truncate.StringWithTail(item.LatinName, uint(inner), "…")),
		}
		if len(item.Tags) > 0 {
			chips := make([]string, 0, len(item.Tags))
			for _, t := range item.Tags {
				chips = append(chips, m.theme.Card.Tag.Render(t))
			}
			rows = append(rows, truncate.StringWithTail(strings.Join(chips, " "), uint(inner), "…"))
		}
		style := m.theme.Card.Inactive
		if item.ID != "" && item.ID == m.active {
			style = m.theme.Card.Active
		}
		if m.focused && m.field == fieldCards && i == m.cursor {
			style = style.Inherit(m.theme.Card.Cursor)
		}
		block := style.Render(strings.Join(rows, "\n"))
		out = append(out, strings.Split(block, "\n")...)
	}
	return out
}

func (m *Model) clip(s string) string {
	return truncate.StringWithTail(s, uint(max(1, m.width)), "…")
}
