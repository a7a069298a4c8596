package ui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/store"
	teaui "tableflip.dev/herbview/pkg/tui/app"
)

func source(t *testing.T) catalog.Source {
	t.Helper()
	src, err := catalog.ParseSource(filepath.Join(t.TempDir(), "herbs.json"))
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	return src
}

func TestRefusesWithoutTerminal(t *testing.T) {
	u := &UI{
		Config:   &store.Config{},
		Source:   source(t),
		Terminal: func() bool { return false },
		Run:      func(teaui.Options) error { t.Fatalf("run must not be called"); return nil },
	}
	if err := u.Do(context.Background()); !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
}

func TestResumesRememberedLocation(t *testing.T) {
	src := source(t)
	cfg := &store.Config{StatePath: filepath.Join(t.TempDir(), "state"), FPS: 30, Damping: 0.05}
	hist, err := store.OpenHistory(cfg.StatePath)
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	if err := hist.Replace(src.String(), "herbview://catalog?model=b"); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	var got teaui.Options
	u := &UI{
		Config:   cfg,
		Source:   src,
		Terminal: func() bool { return true },
		Run:      func(o teaui.Options) error { got = o; return nil },
	}
	if err := u.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got.Location.Model() != "b" {
		t.Fatalf("expected remembered model b, got %q", got.Location.Model())
	}
	if got.FPS != 30 {
		t.Fatalf("config not carried, fps=%d", got.FPS)
	}
}

func TestModelFlagOverridesLocation(t *testing.T) {
	u := &UI{Config: &store.Config{}, Source: source(t), Location: "herbview://catalog?model=a&x=1", Model: "c"}
	loc, err := u.location(store.NewMemoryHistory())
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.Model() != "c" {
		t.Fatalf("expected c, got %q", loc.Model())
	}
}

func TestModelFlagWithoutLocation(t *testing.T) {
	u := &UI{Config: &store.Config{}, Source: source(t), Model: "a"}
	loc, err := u.location(store.NewMemoryHistory())
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.String() != "herbview://catalog?model=a" {
		t.Fatalf("unexpected location %q", loc.String())
	}
}

func TestHistoryFailureFallsBack(t *testing.T) {
	h := store.NewMemoryHistory()
	h.Err = errors.New("boom")
	u := &UI{Config: &store.Config{}, Source: source(t)}
	loc, err := u.location(h)
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.Model() != "" {
		t.Fatalf("expected empty model, got %q", loc.Model())
	}
}
