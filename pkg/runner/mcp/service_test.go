package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"tableflip.dev/herbview/pkg/catalog"
)

const doc = `[
  {"id": "a", "nameJa": "甘草", "latinName": "Glycyrrhizae Radix", "tags": ["根"], "fileUrl": "/models/a.ply",
   "quiz": {"question": "甘草の薬用部位は?", "options": ["根", "葉"], "correctIndex": 0}},
  {"id": "b", "nameJa": "桂皮", "latinName": "Cinnamomi Cortex", "tags": ["樹皮"]},
  {"id": "c", "nameJa": "黄連", "latinName": "Coptidis Rhizoma", "tags": ["根", "根茎"]}
]`

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "herbs.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src, err := catalog.ParseSource(path)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	return NewService(src, &catalog.Loader{}, ""), dir
}

func summaryIDs(items []ItemSummary) string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return strings.Join(out, ",")
}

func TestServiceListItems(t *testing.T) {
	svc, _ := newTestService(t)
	items, err := svc.ListItems(context.Background())
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if got := summaryIDs(items); got != "a,b,c" {
		t.Fatalf("expected catalog order, got %q", got)
	}
	if !items[0].HasModel || !items[0].HasQuiz {
		t.Fatalf("expected a to report model and quiz: %+v", items[0])
	}
	if items[1].HasModel || items[1].HasQuiz {
		t.Fatalf("b has neither model nor quiz: %+v", items[1])
	}
}

func TestServiceItemByID(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	item, err := svc.ItemByID(ctx, " a ")
	if err != nil {
		t.Fatalf("ItemByID failed: %v", err)
	}
	if item.NameJa != "甘草" || item.Quiz == nil {
		t.Fatalf("unexpected item %+v", item)
	}
	if want := filepath.Join(dir, "models", "a.ply"); item.AssetURL != want {
		t.Fatalf("expected asset %q, got %q", want, item.AssetURL)
	}

	if _, err := svc.ItemByID(ctx, "zzz"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := svc.ItemByID(ctx, ""); err == nil {
		t.Fatalf("expected an error for an empty id")
	}
}

func TestServiceListTags(t *testing.T) {
	svc, _ := newTestService(t)
	counts, err := svc.ListTags(context.Background())
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	got := make([]string, 0, len(counts))
	for _, c := range counts {
		got = append(got, c.Tag+"="+strconv.Itoa(c.Items))
	}
	if strings.Join(got, ",") != "根=2,根茎=1,樹皮=1" {
		t.Fatalf("unexpected tag counts %v", got)
	}
}

func TestServiceSearch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		keyword, tag string
		limit        int
		want         string
	}{
		{keyword: "桂", want: "b"},
		{keyword: " CORTEX ", want: "b"},
		{tag: "根", want: "a,c"},
		{keyword: "radix", tag: "根", want: "a"},
		{tag: "葉", want: ""},
		{want: "a,b,c"},
		{limit: 2, want: "a,b"},
	}
	for _, tc := range cases {
		items, err := svc.Search(ctx, tc.keyword, tc.tag, tc.limit)
		if err != nil {
			t.Fatalf("Search(%q, %q) failed: %v", tc.keyword, tc.tag, err)
		}
		if got := summaryIDs(items); got != tc.want {
			t.Fatalf("Search(%q, %q, %d) = %q, want %q", tc.keyword, tc.tag, tc.limit, got, tc.want)
		}
	}
}

func TestServiceMissingCatalog(t *testing.T) {
	src, err := catalog.ParseSource(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	svc := NewService(src, &catalog.Loader{}, "")
	if _, err := svc.ListItems(context.Background()); err == nil {
		t.Fatalf("expected a load error")
	}
	if _, err := (&Service{Source: src}).ListItems(context.Background()); err == nil {
		t.Fatalf("expected an error without a loader")
	}
}

func TestItemResourceAcceptsTemplateArguments(t *testing.T) {
	svc, _ := newTestService(t)
	handler := itemHandler(svc)

	for _, arg := range []any{"b", []string{"b"}} {
		var req mcp.ReadResourceRequest
		req.Params.URI = "herbview://items/b"
		req.Params.Arguments = map[string]any{"id": arg}

		contents, err := handler(context.Background(), req)
		if err != nil {
			t.Fatalf("read with %#v failed: %v", arg, err)
		}
		text, ok := contents[0].(mcp.TextResourceContents)
		if !ok {
			t.Fatalf("unexpected contents %#v", contents[0])
		}
		var payload struct {
			Item struct {
				ID     string `json:"id"`
				NameJa string `json:"nameJa"`
			} `json:"item"`
		}
		if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload.Item.ID != "b" || payload.Item.NameJa != "桂皮" || text.URI != req.Params.URI {
			t.Fatalf("unexpected resource %+v uri=%q", payload, text.URI)
		}
	}

	var req mcp.ReadResourceRequest
	req.Params.Arguments = map[string]any{}
	if _, err := handler(context.Background(), req); err == nil {
		t.Fatalf("expected an error without an id")
	}
}

func TestRunnerRejectsBadSetup(t *testing.T) {
	if err := (&Runner{}).Do(context.Background()); err == nil {
		t.Fatalf("expected an error without a loader")
	}
	r := &Runner{Loader: &catalog.Loader{}, Transport: "carrier-pigeon"}
	if err := r.Do(context.Background()); err == nil || !strings.Contains(err.Error(), "unknown MCP transport") {
		t.Fatalf("expected an unknown transport error, got %v", err)
	}
}
