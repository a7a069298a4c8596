package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// maxDocumentSize bounds how much of a catalog document is read.
const maxDocumentSize = 32 << 20

// Source identifies where the catalog document lives: an http(s) URL or a
// local file path.
type Source struct {
	raw string
	url *url.URL
}

// ParseSource classifies raw as a remote URL or a file path. File paths have
// a leading ~ expanded.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, errors.New("catalog: source required")
	}
	if u, err := url.Parse(raw); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return Source{raw: raw, url: u}, nil
	}
	expanded, err := homedir.Expand(raw)
	if err != nil {
		return Source{}, fmt.Errorf("catalog: expand %q: %w", raw, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return Source{}, fmt.Errorf("catalog: resolve %q: %w", raw, err)
	}
	return Source{raw: abs}, nil
}

// Remote reports whether the source is fetched over http(s).
func (s Source) Remote() bool { return s.url != nil }

// Path returns the file path of a local source, or "" for remote sources.
func (s Source) Path() string {
	if s.Remote() {
		return ""
	}
	return s.raw
}

// String returns the normalised source.
func (s Source) String() string { return s.raw }

// HTTPClient is the subset of *http.Client used for remote catalogs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Loader reads catalog documents.
type Loader struct {
	Client HTTPClient
}

// Load reads and parses the catalog document once. There is no retry.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	return (&Loader{}).Load(ctx, src)
}

// Load reads and parses the catalog document once. There is no retry.
func (l *Loader) Load(ctx context.Context, src Source) (*Catalog, error) {
	var (
		data []byte
		err  error
	)
	if src.Remote() {
		data, err = l.fetch(ctx, src)
	} else {
		data, err = readFile(src.Path())
	}
	if err != nil {
		return nil, err
	}
	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", src, err)
	}
	return New(items), nil
}

// Parse decodes a JSON array of items.
func Parse(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errors.New("document is not an array of items")
	}
	return items, nil
}

func (l *Loader) fetch(ctx context.Context, src Source) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog: fetch %s: %w", src, &StatusError{Code: resp.StatusCode})
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", src, err)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return data, nil
}

// StatusError reports a non-2xx response for a remote catalog.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}
