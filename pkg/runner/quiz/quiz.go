// Package quiz asks an item's question on a plain terminal.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/prompt"
	q "tableflip.dev/herbview/pkg/quiz"
)

// Quiz answers the question of the item with ID. Choice is a zero-based
// option index; a negative Choice prompts for one.
type Quiz struct {
	Source catalog.Source
	Loader *catalog.Loader
	ID     string
	Choice int
	Prompt prompt.IO
	// Out defaults to color.Output.
	Out io.Writer
}

// Do loads the catalog, asks the question once and prints the feedback.
func (r *Quiz) Do(ctx context.Context) error {
	if r.Loader == nil {
		return errors.New("can not quiz, no catalog loader")
	}
	c, err := r.Loader.Load(ctx, r.Source)
	if err != nil {
		return err
	}

	var item *catalog.Item
	if r.ID == "" {
		items := withQuiz(c.Items())
		if len(items) == 0 {
			return errors.New("no item has a quiz")
		}
		i, err := prompt.Item(r.Prompt, "Quiz", items)
		if err != nil {
			return err
		}
		item = &items[i]
	} else {
		var ok bool
		if item, ok = c.Lookup(r.ID); !ok {
			return fmt.Errorf("no item with id %q", r.ID)
		}
	}

	out := r.Out
	if out == nil {
		out = color.Output
	}
	s := q.NewSession(item.Quiz)
	if s.State() == q.Unavailable {
		_, _ = color.New(color.Faint).Fprintln(out, q.NoQuizMessage)
		return nil
	}

	choice := r.Choice
	if choice < 0 {
		if choice, err = prompt.Option(r.Prompt, s.Question(), s.Options()); err != nil {
			return err
		}
	}
	res, ok := s.Answer(choice)
	if !ok {
		return fmt.Errorf("option %d is out of range", choice+1)
	}

	fb := color.New(color.FgRed, color.Bold)
	if res.Correct {
		fb = color.New(color.FgGreen, color.Bold)
	}
	_, _ = fmt.Fprintf(out, "%s\n%d. %s\n", s.Question(), choice+1, s.Options()[choice])
	_, _ = fb.Fprintln(out, res.Feedback)
	return nil
}

func withQuiz(items []catalog.Item) []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if it.Quiz != nil {
			out = append(out, it)
		}
	}
	return out
}
