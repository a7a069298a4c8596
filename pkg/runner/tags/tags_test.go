package tags

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"tableflip.dev/herbview/pkg/catalog"
)

func TestCounts(t *testing.T) {
	c := catalog.New([]catalog.Item{
		{ID: "a", Tags: []string{"根", "生薬"}},
		{ID: "b", Tags: []string{"樹皮", "生薬"}},
		{ID: "c"},
	})
	names, counts := Counts(c)
	if len(names) != 3 {
		t.Fatalf("expected 3 tags, got %v", names)
	}
	if counts["生薬"] != 2 || counts["根"] != 1 || counts["樹皮"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestTagsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "herbs.json")
	if err := os.WriteFile(path, []byte(`[{"id":"a","tags":["根"]},{"id":"b","tags":["根"]}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src, err := catalog.ParseSource(path)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	var buf bytes.Buffer
	tg := &Tags{Source: src, Loader: &catalog.Loader{}, JSON: true, Out: &buf}
	if err := tg.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var rows []Count
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 || rows[0].Tag != "根" || rows[0].Items != 2 {
		t.Fatalf("unexpected rows %+v", rows)
	}
}
