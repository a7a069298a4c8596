package selection

import (
	"fmt"
	"net/url"
	"sync"
)

// ModelParam is the query parameter carrying the active item id.
const ModelParam = "model"

// DefaultLocation is used when neither a flag nor history provides one.
const DefaultLocation = "herbview://catalog"

// HistoryWriter persists a rewritten location. It is the terminal analog of
// history.replaceState: a single slot, overwritten without navigation.
type HistoryWriter interface {
	Replace(source, location string) error
}

// Location is the current address of the viewer. Only the `model` query
// parameter carries state.
type Location struct {
	mu      sync.Mutex
	url     *url.URL
	source  string
	history HistoryWriter
}

// ParseLocation parses raw (DefaultLocation when empty). history may be nil.
func ParseLocation(raw, source string, history HistoryWriter) (*Location, error) {
	if raw == "" {
		raw = DefaultLocation
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("selection: parse location %q: %w", raw, err)
	}
	return &Location{url: u, source: source, history: history}, nil
}

// Model returns the `model` query parameter, or "".
func (l *Location) Model() string {
	if l == nil {
		return ""
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.url.Query().Get(ModelParam)
}

// SetModel rewrites the `model` parameter in place and hands the new URL to
// the history writer. The in-memory location is updated even when the
// history write fails.
func (l *Location) SetModel(id string) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	q := l.url.Query()
	q.Set(ModelParam, id)
	l.url.RawQuery = q.Encode()
	current := l.url.String()
	l.mu.Unlock()

	if l.history == nil {
		return nil
	}
	return l.history.Replace(l.source, current)
}

// String returns the full location URL.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.url.String()
}
