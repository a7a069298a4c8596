package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchFileEmitsCatalogChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "herbs.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := WatchFile(ctx, path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write unrelated: %v", err)
	}
	if err := os.WriteFile(path, []byte(`[{"id":"a"}]`), 0o644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type != EventCatalogChanged {
				continue
			}
			abs, _ := filepath.Abs(path)
			if evt.Path != abs {
				t.Fatalf("expected path %q, got %q", abs, evt.Path)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for catalog change event")
		}
	}
}

func TestWatchFileClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "herbs.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := WatchFile(ctx, path, 0)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestEventThrottleCoalescesBursts(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 4)
	send := func(ev Event) { got <- ev }
	th.Enqueue(Event{Type: EventCatalogChanged, Path: "a"}, send)
	th.Enqueue(Event{Type: EventCatalogChanged, Path: "a"}, send)
	th.Enqueue(Event{Type: EventCatalogRemoved, Path: "a"}, send)

	select {
	case ev := <-got:
		if ev.Type != EventCatalogRemoved {
			t.Fatalf("expected last event type to win, got %v", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("throttle never flushed")
	}
	select {
	case ev := <-got:
		t.Fatalf("expected a single flush, got extra %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}
