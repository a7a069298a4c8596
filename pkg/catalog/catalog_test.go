package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleDocument = `[
  {"id":"a","nameJa":"甘草","latinName":"Glycyrrhizae Radix","tags":["根"],
   "sourcePlantLatin":"Glycyrrhiza uralensis","sourcePlantAuthor":"Fisch.",
   "fileUrl":"/models/a.splat",
   "quiz":{"question":"甘草の薬用部位は？","options":["根","葉"],"correctIndex":0}},
  {"id":"b","nameJa":"桂皮","latinName":"Cinnamomi Cortex","tags":["樹皮"],
   "sourcePlant":"Cinnamomum cassia Blume","fileUrl":"models/b.splat"}
]`

func TestNewIndexesFirstOccurrenceAndSkipsMissingIDs(t *testing.T) {
	c := New([]Item{
		{NameJa: "no id"},
		{ID: "x", NameJa: "first"},
		{ID: "x", NameJa: "second"},
	})
	if c.Len() != 3 {
		t.Fatalf("expected all three items listed, got %d", c.Len())
	}
	got, ok := c.Lookup("x")
	if !ok || got.NameJa != "first" {
		t.Fatalf("expected first occurrence for duplicate id, got %+v", got)
	}
	if c.Has("") {
		t.Fatalf("empty id must not be selectable")
	}
	first, ok := c.First()
	if !ok || first.ID != "x" {
		t.Fatalf("expected first selectable item x, got %+v", first)
	}
}

func TestTagsSortedAndDeduplicated(t *testing.T) {
	c := New([]Item{
		{ID: "a", Tags: []string{"根", "甘味"}},
		{ID: "b", Tags: []string{"樹皮", "根"}},
		{ID: "c"},
	})
	want := []string{"根", "樹皮", "甘味"}
	if got := c.Tags(); !reflect.DeepEqual(got, want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
}

func TestSourcePlantPriority(t *testing.T) {
	split := Item{SourcePlantLatin: "Glycyrrhiza uralensis", SourcePlantAuthor: "Fisch.", SourcePlant: "ignored"}
	if line := split.Plant(); line.Kind != SourcePlantSplit || line.String() != "Glycyrrhiza uralensis Fisch." {
		t.Fatalf("unexpected split line %+v", line)
	}
	authorOnly := Item{SourcePlantAuthor: "Blume"}
	if line := authorOnly.Plant(); line.Kind != SourcePlantSplit || line.String() != "Blume" {
		t.Fatalf("unexpected author-only line %+v", line)
	}
	legacy := Item{SourcePlant: "Cinnamomum cassia Blume"}
	if line := legacy.Plant(); line.Kind != SourcePlantLegacy || line.String() != "Cinnamomum cassia Blume" {
		t.Fatalf("unexpected legacy line %+v", line)
	}
	if line := (&Item{}).Plant(); line.String() != "-" {
		t.Fatalf("expected dash placeholder, got %q", line.String())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "herbs.json")
	if err := os.WriteFile(path, []byte(sampleDocument), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src, err := ParseSource(path)
	if err != nil {
		t.Fatalf("parse source: %v", err)
	}
	if src.Remote() {
		t.Fatalf("expected file source")
	}
	c, err := Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", c.Len())
	}
	a, _ := c.Lookup("a")
	if a.Quiz == nil || a.Quiz.CorrectIndex != 0 || len(a.Quiz.Options) != 2 {
		t.Fatalf("quiz not decoded: %+v", a.Quiz)
	}
}

func TestLoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/herbs.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer srv.Close()

	src, err := ParseSource(srv.URL + "/data/herbs.json")
	if err != nil {
		t.Fatalf("parse source: %v", err)
	}
	c, err := Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", c.Len())
	}

	missing, _ := ParseSource(srv.URL + "/data/missing.json")
	_, err = Load(context.Background(), missing)
	var status *StatusError
	if !errors.As(err, &status) || status.Code != http.StatusNotFound {
		t.Fatalf("expected 404 status error, got %v", err)
	}
}

func TestLoadRejectsMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"object.json": `{"id":"a"}`,
		"null.json":   `null`,
		"broken.json": `[{"id":`,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		src, _ := ParseSource(path)
		if _, err := Load(context.Background(), src); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestResolveAsset(t *testing.T) {
	remote, _ := ParseSource("https://example.com/site/data/herbs.json")
	if got := ResolveAsset(remote, "", "/models/a.splat"); got != "https://example.com/models/a.splat" {
		t.Fatalf("remote rooted: %q", got)
	}
	if got := ResolveAsset(remote, "", "b.splat"); got != "https://example.com/site/data/b.splat" {
		t.Fatalf("remote relative: %q", got)
	}

	dir := t.TempDir()
	local, _ := ParseSource(filepath.Join(dir, "data", "herbs.json"))
	if got := ResolveAsset(local, dir, "/models/a.splat"); got != filepath.Join(dir, "models", "a.splat") {
		t.Fatalf("local rooted: %q", got)
	}
	if got := ResolveAsset(local, "", "b.splat"); got != filepath.Join(dir, "data", "b.splat") {
		t.Fatalf("local relative: %q", got)
	}
	if got := ResolveAsset(local, dir, "https://cdn.example.com/c.splat"); got != "https://cdn.example.com/c.splat" {
		t.Fatalf("absolute url: %q", got)
	}
	if got := ResolveAsset(local, dir, ""); got != "" {
		t.Fatalf("empty fileUrl: %q", got)
	}
}
