package cardlist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/tui/events"
	"tableflip.dev/herbview/pkg/tui/theme"
)

func stripANSIString(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func scenario() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{ID: "a", NameJa: "甘草", LatinName: "Glycyrrhizae Radix", Tags: []string{"根"}},
		{ID: "b", NameJa: "桂皮", LatinName: "Cinnamomi Cortex", Tags: []string{"樹皮"}},
		{ID: "c", NameJa: "無印", LatinName: "Nulla"},
	})
}

func newList(t *testing.T) *Model {
	t.Helper()
	m := New(events.ComponentID("list"), theme.Default())
	m.SetSize(30, 30)
	m.SetCatalog(scenario())
	return m
}

func ids(items []catalog.Item) string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return strings.Join(out, ",")
}

func TestKeywordFilter(t *testing.T) {
	m := newList(t)
	cmd := m.SetKeyword("桂")
	if got := ids(m.Visible()); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	msg, ok := cmd().(events.FilterChangeMsg)
	if !ok || msg.Keyword != "桂" || msg.Matches != 1 {
		t.Fatalf("unexpected filter event %#v", msg)
	}
	m.SetKeyword("  cortex ")
	if got := ids(m.Visible()); got != "b" {
		t.Fatalf("case-insensitive latin search failed: %q", got)
	}
}

func TestTagCycleAndUnknownTag(t *testing.T) {
	m := newList(t)
	if got := strings.Join(m.Tags(), ","); got != "根,樹皮" {
		t.Fatalf("tags %q", got)
	}
	m.CycleTag(1)
	if m.Query().Tag != "根" || ids(m.Visible()) != "a" {
		t.Fatalf("expected 根 → a, got %q → %q", m.Query().Tag, ids(m.Visible()))
	}
	m.CycleTag(-1)
	if m.Query().Tag != "" || len(m.Visible()) != 3 {
		t.Fatalf("expected all tags after cycling back")
	}
	m.CycleTag(-1)
	if m.Query().Tag != "樹皮" {
		t.Fatalf("cycling backwards should wrap, got %q", m.Query().Tag)
	}

	m.SetTag("存在しない")
	if len(m.Visible()) != 0 {
		t.Fatalf("unknown tag should match nothing")
	}
	m.SetCatalog(scenario())
	if m.Query().Tag != "存在しない" || len(m.Visible()) != 0 {
		t.Fatalf("reload must keep the tag filter")
	}
}

func TestCardsRenderTagsOnlyWhenPresent(t *testing.T) {
	m := newList(t)
	m.Selected(&scenario().Items()[1])
	view := stripANSIString(m.View())
	for _, want := range []string{"甘草", "Glycyrrhizae Radix", "樹皮", "無印", AllTagsLabel} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	spans := m.layout()
	if spans[2].end-spans[2].start != 2 {
		t.Fatalf("card without tags should be two rows, got %+v", spans[2])
	}
	if spans[0].end-spans[0].start != 3 {
		t.Fatalf("card with tags should be three rows, got %+v", spans[0])
	}
	if m.Active() != "b" || m.Cursor() != 1 {
		t.Fatalf("active=%q cursor=%d", m.Active(), m.Cursor())
	}
}

func TestClickSelectsCard(t *testing.T) {
	m := newList(t)
	spans := m.layout()
	cmd := m.ClickAt(3, headerRows+spans[1].start+1)
	if cmd == nil {
		t.Fatalf("click on card returned no command")
	}
	msg, ok := cmd().(events.ItemSelectMsg)
	if !ok || msg.Item.ID != "b" || !msg.FromUser {
		t.Fatalf("unexpected select event %#v", msg)
	}
	if m.ClickAt(3, headerRows+spans[0].end) != nil {
		t.Fatalf("click on the gap between cards selected something")
	}
}

func TestKeyboardNavigation(t *testing.T) {
	m := newList(t)
	m.Focus()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if cmd == nil {
		t.Fatalf("expected highlight command")
	}
	if hl, ok := cmd().(events.ItemHighlightMsg); !ok || hl.Item.ID != "b" {
		t.Fatalf("unexpected highlight %#v", cmd())
	}
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	sel, ok := cmd().(events.ItemSelectMsg)
	if !ok || sel.Item.ID != "b" {
		t.Fatalf("enter should select b, got %#v", sel)
	}
}

func TestSearchTyping(t *testing.T) {
	m := newList(t)
	m.Focus()
	m.Update(tea.KeyPressMsg{Text: "/", Code: '/'})
	if !m.Typing() {
		t.Fatalf("slash should focus the search box")
	}
	m.Update(tea.KeyPressMsg{Text: "n", Code: 'n'})
	if got := ids(m.Visible()); got != "b,c" {
		t.Fatalf("typing n should match b and c, got %q", got)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.Typing() {
		t.Fatalf("escape should leave the search box")
	}
}

func TestLoadErrorIsInline(t *testing.T) {
	m := newList(t)
	m.SetLoadError()
	if !strings.Contains(stripANSIString(m.View()), LoadErrorMessage) {
		t.Fatalf("load error not rendered")
	}
	if m.ClickAt(1, headerRows) != nil {
		t.Fatalf("clicks must be ignored after a failed load")
	}
}

func TestIDLessCardsAreNeverActive(t *testing.T) {
	m := New(events.ComponentID("list"), theme.Default())
	m.SetSize(30, 30)
	m.SetCatalog(catalog.New([]catalog.Item{{NameJa: "無名", LatinName: "Anon"}}))
	if m.Active() != "" {
		t.Fatalf("nothing should be active, got %q", m.Active())
	}
	if strings.Contains(stripANSIString(m.View()), "┃") {
		t.Fatalf("id-less card rendered as active:\n%s", stripANSIString(m.View()))
	}

	m = newList(t)
	m.Selected(&scenario().Items()[0])
	m.Cleared()
	if strings.Contains(stripANSIString(m.View()), "┃") {
		t.Fatalf("cleared selection still marks a card active:\n%s", stripANSIString(m.View()))
	}
}
