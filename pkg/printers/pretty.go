package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"tableflip.dev/herbview/pkg/catalog"
)

const detailWidth = 72

// PrettyPrint renders catalog items for the terminal.
type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

// Items prints one row per item: name, latin name and tags.
func (pp *PrettyPrint) Items(items ...catalog.Item) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	latin := color.New(color.Italic)
	tag := color.New(color.FgCyan)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	for i := range items {
		item := &items[i]
		tags := make([]string, 0, len(item.Tags))
		for _, t := range item.Tags {
			tags = append(tags, tag.Sprint(t))
		}
		if pp.ShowID {
			tbl.AddRow(y.Sprint(item.ID), item.NameJa, latin.Sprint(item.LatinName), strings.Join(tags, " "))
		} else {
			tbl.AddRow(item.NameJa, latin.Sprint(item.LatinName), strings.Join(tags, " "))
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Item prints every field of one item with the same fallbacks the viewer
// uses: missing scalars print as "-".
func (pp *PrettyPrint) Item(item *catalog.Item, assetURL string) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	italic := color.New(color.Italic)

	_, _ = bold.Fprintln(pp.out(), dash(item.NameJa))
	_, _ = italic.Fprintln(pp.out(), dash(item.LatinName))
	pp.NewLine()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = detailWidth
	row := func(label, value string) { tbl.AddRow(faint.Sprint(label), value) }

	if pp.ShowID {
		row("ID", item.ID)
	}
	row("基原植物", pp.sourcePlant(item))
	row("部位", dash(item.Part))
	row("その他", dash(item.Extra))
	if len(item.Tags) > 0 {
		row("タグ", strings.Join(item.Tags, ", "))
	}
	if assetURL != "" {
		row("モデル", assetURL)
	}
	if item.Quiz != nil {
		row("クイズ", item.Quiz.Question)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if item.Description != "" {
		pp.NewLine()
		_, _ = fmt.Fprintln(pp.out(), wrap.String(wordwrap.String(item.Description, detailWidth), detailWidth))
	}
	if len(item.Images) > 0 {
		pp.NewLine()
		_, _ = bold.Fprintln(pp.out(), "画像")
		for i, img := range item.Images {
			caption := img.Caption
			if caption == "" {
				caption = item.NameJa
			}
			_, _ = fmt.Fprintf(pp.out(), "  [%d] %s\n", i+1, caption)
			_, _ = faint.Fprintf(pp.out(), "      %s\n", img.Src)
		}
	}
	pp.NewLine()
}

func (pp *PrettyPrint) sourcePlant(item *catalog.Item) string {
	line := item.Plant()
	if line.Kind != catalog.SourcePlantSplit {
		return line.String()
	}
	parts := make([]string, 0, 2)
	if line.Latin != "" {
		parts = append(parts, color.New(color.Italic).Sprint(line.Latin))
	}
	if line.Author != "" {
		parts = append(parts, line.Author)
	}
	return strings.Join(parts, " ")
}

// Tags prints each tag with the number of items carrying it.
func (pp *PrettyPrint) Tags(tags []string, counts map[string]int) {
	if len(tags) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	c := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tags {
		tbl.AddRow(color.New(color.FgCyan).Sprint(t), c.Sprint(counts[t]))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
