package detail

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"

	"tableflip.dev/herbview/pkg/catalog"
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

func newDetail() *Model {
	m := New("detail", theme.Default())
	m.SetSize(60, 40)
	return m
}

func TestSplitSourcePlant(t *testing.T) {
	m := newDetail()
	m.Selected(&catalog.Item{
		ID:                "kanzo",
		NameJa:            "甘草",
		LatinName:         "Glycyrrhizae Radix",
		SourcePlantLatin:  "Glycyrrhiza uralensis",
		SourcePlantAuthor: "Fisch.",
		SourcePlant:       "ignored legacy",
		Part:              "根",
	})
	out := stripANSIString(m.Content())
	for _, want := range []string{"甘草", "Glycyrrhizae Radix", "Glycyrrhiza uralensis Fisch.", "部位: 根", "その他: -"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ignored legacy") {
		t.Fatalf("legacy string must lose to the split fields:\n%s", out)
	}
}

func TestLegacyAndMissingSourcePlant(t *testing.T) {
	m := newDetail()
	m.Selected(&catalog.Item{ID: "x", NameJa: "桂皮", SourcePlant: "Cinnamomum cassia Blume"})
	if out := stripANSIString(m.Content()); !strings.Contains(out, "基原植物: Cinnamomum cassia Blume") {
		t.Fatalf("legacy line not rendered verbatim:\n%s", out)
	}

	m.Selected(&catalog.Item{ID: "y"})
	out := stripANSIString(m.Content())
	for _, want := range []string{"基原植物: -", "部位: -", "その他: -"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing placeholder %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "画像") {
		t.Fatalf("gallery should be empty without images:\n%s", out)
	}
}

func TestGalleryKeepsOrderAndFallsBackToName(t *testing.T) {
	m := newDetail()
	m.Selected(&catalog.Item{
		ID:     "z",
		NameJa: "人参",
		Images: []catalog.Image{
			{Src: "img/first.jpg", Caption: "断面"},
			{Src: "img/second.jpg"},
		},
	})
	out := stripANSIString(m.Content())
	first := strings.Index(out, "[1] 断面")
	second := strings.Index(out, "[2] 人参")
	if first < 0 || second < 0 || second < first {
		t.Fatalf("gallery tiles out of order:\n%s", out)
	}
	if !strings.Contains(out, "img/second.jpg") {
		t.Fatalf("image source missing:\n%s", out)
	}
}

func TestDescriptionWraps(t *testing.T) {
	m := New("detail", theme.Default())
	m.SetSize(10, 20)
	m.Selected(&catalog.Item{ID: "d", Description: strings.Repeat("あ", 12)})
	for _, line := range strings.Split(stripANSIString(m.Content()), "\n") {
		if ansi.PrintableRuneWidth(line) > 10 && strings.Contains(line, "あ") {
			t.Fatalf("description line %q wider than the pane", line)
		}
	}
}

func TestClearedShowsPlaceholder(t *testing.T) {
	m := newDetail()
	m.Selected(&catalog.Item{ID: "a", NameJa: "甘草"})
	m.Cleared()
	if m.Item() != nil || strings.Contains(stripANSIString(m.Content()), "甘草") {
		t.Fatalf("cleared pane still shows the item")
	}
}
