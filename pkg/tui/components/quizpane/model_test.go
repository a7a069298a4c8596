package quizpane

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/quiz"
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

func quizItem(id string) *catalog.Item {
	return &catalog.Item{
		ID:     id,
		NameJa: "甘草",
		Quiz: &catalog.Quiz{
			Question:     "薬用部位は？",
			Options:      []string{"葉", "根", "花"},
			CorrectIndex: 1,
			Explanation:  "根とストロンを用います。",
		},
	}
}

func newPane() *Model {
	m := New("quiz", theme.Default())
	m.SetSize(40, 20)
	return m
}

func TestNoQuizMessage(t *testing.T) {
	m := newPane()
	m.Selected(&catalog.Item{ID: "plain"})
	if got := stripANSIString(m.View()); !strings.Contains(got, quiz.NoQuizMessage) {
		t.Fatalf("expected no-quiz message, got %q", got)
	}
	if m.ClickAt(0, 0) != nil || m.Answer(0) != nil {
		t.Fatalf("unavailable quiz accepted an answer")
	}
}

func TestClickCorrectOption(t *testing.T) {
	m := newPane()
	m.Selected(quizItem("a"))
	m.View()
	rows := m.options[1]
	cmd := m.ClickAt(3, rows[0])
	if cmd == nil {
		t.Fatalf("click on option did not answer")
	}
	msg, ok := cmd().(events.QuizAnswerMsg)
	if !ok || msg.Choice != 1 || !msg.Correct || msg.Item.ID != "a" {
		t.Fatalf("unexpected answer event %#v", msg)
	}
	out := stripANSIString(m.View())
	if !strings.Contains(out, "✓ 2. 根") || !strings.Contains(out, quiz.CorrectMessage) {
		t.Fatalf("correct answer not flagged:\n%s", out)
	}
	if strings.Contains(out, "✗") {
		t.Fatalf("unexpected incorrect mark:\n%s", out)
	}
}

func TestWrongAnswerLocksAndLeavesCorrectUnmarked(t *testing.T) {
	m := newPane()
	m.Selected(quizItem("a"))
	m.Focus()
	_, cmd := m.Update(tea.KeyPressMsg{Text: "1", Code: '1'})
	if cmd == nil {
		t.Fatalf("digit key did not answer")
	}
	if msg := cmd().(events.QuizAnswerMsg); msg.Correct || msg.Choice != 0 {
		t.Fatalf("unexpected answer %#v", msg)
	}
	out := stripANSIString(m.View())
	if !strings.Contains(out, "✗ 1. 葉") || strings.Contains(out, "✓") {
		t.Fatalf("only the chosen option should be flagged:\n%s", out)
	}
	if !strings.Contains(out, quiz.IncorrectMessage) || !strings.Contains(out, "根とストロンを用います。") {
		t.Fatalf("feedback missing:\n%s", out)
	}

	if _, cmd := m.Update(tea.KeyPressMsg{Text: "2", Code: '2'}); cmd != nil {
		t.Fatalf("answered quiz accepted another key")
	}
	if m.ClickAt(0, m.options[1][0]) != nil {
		t.Fatalf("answered quiz accepted another click")
	}
	if m.Session().Chosen() != 0 {
		t.Fatalf("chosen changed to %d", m.Session().Chosen())
	}
}

func TestNewItemResetsSession(t *testing.T) {
	m := newPane()
	m.Selected(quizItem("a"))
	m.Answer(1)
	m.Selected(quizItem("b"))
	if m.Session().State() != quiz.Unanswered {
		t.Fatalf("expected a fresh session, got %s", m.Session().State())
	}
	if out := stripANSIString(m.View()); strings.Contains(out, quiz.CorrectMessage) {
		t.Fatalf("feedback leaked into the next item:\n%s", out)
	}
}

func TestCursorKeys(t *testing.T) {
	m := newPane()
	m.Selected(quizItem("a"))
	m.Focus()
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Cursor() != 2 {
		t.Fatalf("cursor should stop on the last option, got %d", m.Cursor())
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if msg := cmd().(events.QuizAnswerMsg); msg.Choice != 2 {
		t.Fatalf("enter answered %d", msg.Choice)
	}
}
