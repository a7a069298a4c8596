package eventviewer

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"
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

func TestAppendNewestFirstAndCap(t *testing.T) {
	m := NewModel("events", 2)
	m.SetSize(80, 6)
	m.Append(Entry{Summary: "one"})
	m.Append(Entry{Summary: "two", Level: LevelError})
	m.Append(Entry{Summary: "three"})

	got := m.Entries()
	if len(got) != 2 || got[0].Summary != "three" || got[1].Summary != "two" {
		t.Fatalf("unexpected entries %+v", got)
	}
	if !strings.Contains(stripANSIString(m.View()), "error:1") {
		t.Fatalf("header missing error count:\n%s", stripANSIString(m.View()))
	}
}

func TestLevelFilterKey(t *testing.T) {
	m := NewModel("events", 10)
	m.SetSize(80, 8)
	m.Append(Entry{Summary: "loaded"})
	m.Append(Entry{Summary: "reload failed", Level: LevelWarn})
	m.Append(Entry{Summary: "asset broken", Level: LevelError})

	m.Update(tea.KeyPressMsg{Text: "e", Code: 'e'})
	if m.MinLevel() != LevelInfo {
		t.Fatalf("unfocused dock must ignore keys")
	}

	m.Focus()
	m.Update(tea.KeyPressMsg{Text: "e", Code: 'e'})
	content := stripANSIString(m.Content())
	if strings.Contains(content, "loaded") || !strings.Contains(content, "reload failed") {
		t.Fatalf("warn filter wrong:\n%s", content)
	}

	m.Update(tea.KeyPressMsg{Text: "e", Code: 'e'})
	content = stripANSIString(m.Content())
	if strings.Contains(content, "reload failed") || !strings.Contains(content, "asset broken") {
		t.Fatalf("error filter wrong:\n%s", content)
	}

	m.Update(tea.KeyPressMsg{Text: "e", Code: 'e'})
	if m.MinLevel() != LevelInfo {
		t.Fatalf("filter should wrap back to info, got %s", m.MinLevel())
	}
}

func TestLinesAreClipped(t *testing.T) {
	m := NewModel("events", 10)
	m.SetSize(30, 5)
	m.Append(Entry{Summary: strings.Repeat("x", 100)})
	for _, line := range strings.Split(m.Content(), "\n") {
		if w := ansi.PrintableRuneWidth(line); w > 28 {
			t.Fatalf("line width %d exceeds inner width", w)
		}
	}
}
