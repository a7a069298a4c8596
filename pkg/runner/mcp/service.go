// Package mcp serves the catalog to Model Context Protocol clients.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/filter"
	"tableflip.dev/herbview/pkg/runner/tags"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// ErrItemNotFound is returned when no catalog item carries the requested id.
var ErrItemNotFound = errors.New("item not found")

// Service answers catalog queries for the MCP server. The catalog is read
// again on every call so edits to the document are visible without a
// restart.
type Service struct {
	Source    catalog.Source
	Loader    *catalog.Loader
	AssetRoot string
}

// ItemSummary is the list projection of an item.
type ItemSummary struct {
	ID        string   `json:"id"`
	NameJa    string   `json:"nameJa,omitempty"`
	LatinName string   `json:"latinName,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	HasModel  bool     `json:"hasModel"`
	HasQuiz   bool     `json:"hasQuiz"`
}

// ItemDetail is a full item with its model asset resolved against the
// catalog location.
type ItemDetail struct {
	catalog.Item
	AssetURL string `json:"assetUrl,omitempty"`
}

// NewService builds a service over one catalog document.
func NewService(src catalog.Source, loader *catalog.Loader, assetRoot string) *Service {
	return &Service{Source: src, Loader: loader, AssetRoot: assetRoot}
}

func (s *Service) load(ctx context.Context) (*catalog.Catalog, error) {
	if s.Loader == nil {
		return nil, errors.New("catalog loader is not configured")
	}
	return s.Loader.Load(ctx, s.Source)
}

// ListItems returns every item in catalog order.
func (s *Service) ListItems(ctx context.Context) ([]ItemSummary, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(c.Items()), nil
}

// ItemByID returns one item in full.
func (s *Service) ItemByID(ctx context.Context, id string) (*ItemDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("item id is required")
	}
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	item, ok := c.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return &ItemDetail{
		Item:     *item,
		AssetURL: catalog.ResolveAsset(s.Source, s.AssetRoot, item.FileURL),
	}, nil
}

// ListTags returns the catalog's tags in sorted order with item counts.
func (s *Service) ListTags(ctx context.Context) ([]tags.Count, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	names, counts := tags.Counts(c)
	out := make([]tags.Count, 0, len(names))
	for _, n := range names {
		out = append(out, tags.Count{Tag: n, Items: counts[n]})
	}
	return out, nil
}

// Search filters the catalog the same way the list pane does. A limit of
// zero or less means the default; larger limits are capped.
func (s *Service) Search(ctx context.Context, keyword, tag string, limit int) ([]ItemSummary, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = defaultSearchLimit
	case limit > maxSearchLimit:
		limit = maxSearchLimit
	}
	matches := filter.Catalog(c, filter.Query{Keyword: keyword, Tag: tag})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return summarize(matches), nil
}

func summarize(items []catalog.Item) []ItemSummary {
	out := make([]ItemSummary, 0, len(items))
	for i := range items {
		item := &items[i]
		out = append(out, ItemSummary{
			ID:        item.ID,
			NameJa:    item.NameJa,
			LatinName: item.LatinName,
			Tags:      item.Tags,
			HasModel:  item.FileURL != "",
			HasQuiz:   item.Quiz != nil,
		})
	}
	return out
}
