package store

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// History remembers the last location URL per catalog source. It plays the
// role of the browser history entry that a replaceState call rewrites: one
// slot per source, overwritten on every user selection.
type History interface {
	Load(source string) (string, error)
	Replace(source, location string) error
}

// OpenHistory returns a History persisted under basePath.
func OpenHistory(basePath string) (History, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("store: history path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure history path: %w", err)
	}
	return &diskHistory{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{"history"} },
		CacheSizeMax: 64 * 1024,
	})}, nil
}

type diskHistory struct {
	d *diskv.Diskv
}

type historyRecord struct {
	Source   string    `json:"source"`
	Location string    `json:"location"`
	Updated  time.Time `json:"updated"`
}

func (h *diskHistory) Load(source string) (string, error) {
	key := historyKey(source)
	if !h.d.Has(key) {
		return "", nil
	}
	data, err := h.d.Read(key)
	if err != nil {
		return "", fmt.Errorf("store: read history: %w", err)
	}
	var rec historyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("store: decode history: %w", err)
	}
	return rec.Location, nil
}

func (h *diskHistory) Replace(source, location string) error {
	data, err := json.Marshal(historyRecord{
		Source:   source,
		Location: location,
		Updated:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := h.d.Write(historyKey(source), data); err != nil {
		return fmt.Errorf("store: write history: %w", err)
	}
	return nil
}

// historyKey makes a filesystem-safe key for a catalog source.
func historyKey(source string) string {
	sum := md5.Sum([]byte(source))
	return fmt.Sprintf("%x", sum[:8])
}

// MemoryHistory is an in-process History, used when no state path is
// configured and in tests.
type MemoryHistory struct {
	entries map[string]string
	Err     error
}

// NewMemoryHistory returns an empty MemoryHistory.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{entries: make(map[string]string)}
}

// Load implements History.
func (m *MemoryHistory) Load(source string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.entries[source], nil
}

// Replace implements History.
func (m *MemoryHistory) Replace(source, location string) error {
	if m.Err != nil {
		return m.Err
	}
	m.entries[source] = location
	return nil
}
