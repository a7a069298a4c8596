// Package quiz implements the one-shot multiple-choice question attached to
// a catalog item.
package quiz

import (
	"tableflip.dev/herbview/pkg/catalog"
)

// Messages shown to the user.
const (
	NoQuizMessage    = "このモデルにはクイズが設定されていません。"
	CorrectMessage   = "正解です！"
	IncorrectMessage = "不正解です。"
)

// Feedback colours for correct and incorrect answers, plus the neutral
// colour used before an answer.
const (
	CorrectColor   = "#4ade80"
	IncorrectColor = "#f97373"
	NeutralColor   = "#e5e7eb"
)

// State is the lifecycle state of a Session.
type State int

const (
	// Unavailable means the item has no quiz. It is terminal.
	Unavailable State = iota
	// Unanswered means options are enabled and no feedback is shown.
	Unanswered
	// Answered means an option was chosen and every option is disabled.
	Answered
)

func (s State) String() string {
	switch s {
	case Unavailable:
		return "unavailable"
	case Unanswered:
		return "unanswered"
	case Answered:
		return "answered"
	default:
		return "unknown"
	}
}

// Mark is the visual flag on an option.
type Mark int

const (
	// MarkNone leaves the option unflagged.
	MarkNone Mark = iota
	// MarkCorrect flags the chosen option as right.
	MarkCorrect
	// MarkIncorrect flags the chosen option as wrong.
	MarkIncorrect
)

// Session tracks one item's question. A new Session is created whenever the
// selected item changes.
type Session struct {
	quiz   *catalog.Quiz
	state  State
	chosen int
}

// NewSession starts a fresh session for q; a nil q yields an Unavailable
// session.
func NewSession(q *catalog.Quiz) *Session {
	s := &Session{quiz: q, chosen: -1}
	if q == nil {
		s.state = Unavailable
	} else {
		s.state = Unanswered
	}
	return s
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Question returns the question text, or "" when unavailable.
func (s *Session) Question() string {
	if s.quiz == nil {
		return ""
	}
	return s.quiz.Question
}

// Options returns the options in their given order.
func (s *Session) Options() []string {
	if s.quiz == nil {
		return nil
	}
	return s.quiz.Options
}

// Enabled reports whether options still accept answers.
func (s *Session) Enabled() bool { return s.state == Unanswered }

// Chosen returns the answered option index, or -1.
func (s *Session) Chosen() int { return s.chosen }

// Answer records the first answer. Later calls, calls on an unavailable
// session and out-of-range indexes are no-ops reporting false.
func (s *Session) Answer(index int) (Result, bool) {
	if s.state != Unanswered || index < 0 || index >= len(s.quiz.Options) {
		return Result{}, false
	}
	s.state = Answered
	s.chosen = index
	return s.Result(), true
}

// Mark returns the flag for option index. Only the chosen option is ever
// flagged; the correct option stays unmarked when a wrong one was picked.
func (s *Session) Mark(index int) Mark {
	if s.state != Answered || index != s.chosen {
		return MarkNone
	}
	if s.correct() {
		return MarkCorrect
	}
	return MarkIncorrect
}

func (s *Session) correct() bool {
	return s.quiz != nil && s.chosen == s.quiz.CorrectIndex
}

// Result describes the outcome of an answered session.
type Result struct {
	Chosen   int
	Correct  bool
	Feedback string
	Color    string
}

// Result returns the feedback for the session; before an answer it is empty
// with the neutral colour.
func (s *Session) Result() Result {
	if s.state != Answered {
		return Result{Chosen: -1, Color: NeutralColor}
	}
	r := Result{Chosen: s.chosen, Correct: s.correct()}
	if r.Correct {
		r.Feedback = CorrectMessage
		r.Color = CorrectColor
	} else {
		r.Feedback = IncorrectMessage
		r.Color = IncorrectColor
	}
	if s.quiz.Explanation != "" {
		r.Feedback += " " + s.quiz.Explanation
	}
	return r
}
