package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a catalog change notification.
type EventType int

const (
	// EventCatalogChanged indicates the catalog document was written,
	// replaced or recreated and should be loaded again.
	EventCatalogChanged EventType = iota

	// EventCatalogRemoved indicates the catalog document disappeared.
	EventCatalogRemoved
)

// Event is emitted by WatchFile when the watched document changes.
type Event struct {
	Type EventType
	Path string
}

// DefaultThrottle is how long WatchFile coalesces bursts of writes.
const DefaultThrottle = 150 * time.Millisecond

// WatchFile streams change events for path until ctx is cancelled. The
// containing directory is watched so editors that save via rename are
// observed too. Callers should drain the returned channel; events are dropped
// rather than blocking the watcher, since the next event triggers a full
// reload anyway.
func WatchFile(ctx context.Context, path string, throttleDelay time.Duration) (<-chan Event, error) {
	if path == "" {
		return nil, errors.New("store: watch path required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %s: %w", path, err)
	}
	if throttleDelay <= 0 {
		throttleDelay = DefaultThrottle
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 8)

	go func() {
		var (
			sendMu sync.Mutex
			closed bool
		)
		defer func() {
			sendMu.Lock()
			closed = true
			close(events)
			sendMu.Unlock()
		}()
		defer closeWatcher()

		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
			}
		}

		throttle := newEventThrottle(throttleDelay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// An overflow or similar means we may have missed a write.
				throttle.Enqueue(Event{Type: EventCatalogChanged, Path: abs}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				switch {
				case evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					if _, err := os.Stat(abs); err != nil {
						throttle.Enqueue(Event{Type: EventCatalogRemoved, Path: abs}, send)
						continue
					}
					throttle.Enqueue(Event{Type: EventCatalogChanged, Path: abs}, send)
				case evt.Op&(fsnotify.Write|fsnotify.Create) != 0:
					throttle.Enqueue(Event{Type: EventCatalogChanged, Path: abs}, send)
				}
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so the UI reloads once
// per burst of filesystem activity instead of on every single write. The last
// event type in a burst wins.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending *Event
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending = &ev
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.timer = nil
	t.mu.Unlock()

	if pending != nil {
		send(*pending)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
