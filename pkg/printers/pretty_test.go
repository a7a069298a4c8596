package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/herbview/pkg/catalog"
)

func init() {
	color.NoColor = true
}

func TestItemsTable(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{ShowID: true, Out: &buf}
	pp.Items(
		catalog.Item{ID: "kanzo", NameJa: "甘草", LatinName: "Glycyrrhizae Radix", Tags: []string{"根"}},
		catalog.Item{ID: "keihi", NameJa: "桂皮"},
	)
	out := buf.String()
	for _, want := range []string{"kanzo", "甘草", "Glycyrrhizae Radix", "根", "keihi", "桂皮"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestItemsEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Items()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestItemFallbacks(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Item(&catalog.Item{
		ID:          "x",
		NameJa:      "人参",
		SourcePlant: "Panax ginseng C.A.Mey.",
		Images:      []catalog.Image{{Src: "img/a.jpg"}},
	}, "/assets/x.splat")
	out := buf.String()
	for _, want := range []string{"人参", "Panax ginseng C.A.Mey.", "/assets/x.splat", "[1] 人参", "img/a.jpg"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Count(out, "-") < 2 {
		t.Fatalf("expected placeholders for part and extra:\n%s", out)
	}
}

func TestTagsCounts(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Tags([]string{"根", "樹皮"}, map[string]int{"根": 2, "樹皮": 1})
	out := buf.String()
	if !strings.Contains(out, "根") || !strings.Contains(out, "2") || !strings.Contains(out, "樹皮") {
		t.Fatalf("unexpected tags output:\n%s", out)
	}
}
