// Package prompt asks the user to pick catalog items and quiz options on a
// plain terminal.
package prompt

import (
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/herbview/pkg/catalog"
)

// IO carries the streams a prompt reads and writes. Zero values use the
// process stdin and stdout.
type IO struct {
	In  io.Reader
	Out io.Writer
}

func (p IO) apply(s *promptui.Select) {
	if p.In != nil {
		s.Stdin = io.NopCloser(p.In)
	}
	if p.Out != nil {
		s.Stdout = nopCloser{p.Out}
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Item asks for one of items and returns its index.
func Item(p IO, label string, items []catalog.Item) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .NameJa | bold }} {{ .LatinName | cyan }}",
		Inactive: "   {{ .NameJa }} {{ .LatinName | faint }}",
		Selected: "{{ .NameJa | bold }}",
		Details: `
--------- Details ----------
{{ .ID }}  {{ range .Tags }}#{{ . }} {{ end }}
`,
	}

	searcher := func(input string, index int) bool {
		return Matches(&items[index], input)
	}

	s := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
	}
	p.apply(&s)
	i, _, err := s.Run()
	return i, err
}

// Option asks for one quiz option and returns its index.
func Option(p IO, question string, options []string) (int, error) {
	s := promptui.Select{
		HideHelp: true,
		Label:    question,
		Items:    options,
		Size:     len(options),
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . | bold }}",
			Active:   "➜  {{ . | cyan }}",
			Inactive: "   {{ . }}",
			Selected: "{{ . | bold }}",
		},
	}
	p.apply(&s)
	i, _, err := s.Run()
	return i, err
}

// Matches is the picker's search: spaces are ignored and the comparison is
// case-insensitive over name, latin name and id.
func Matches(item *catalog.Item, input string) bool {
	input = strings.ReplaceAll(strings.ToLower(input), " ", "")
	hay := strings.ReplaceAll(item.SearchText(), " ", "")
	return strings.Contains(hay, input)
}
