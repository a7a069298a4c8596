// Package filter narrows a catalog down to the items matching the current
// search keyword and tag.
package filter

import (
	"strings"

	"tableflip.dev/herbview/pkg/catalog"
)

// Query is the filter state read from the search box and tag selector.
type Query struct {
	Keyword string
	Tag     string
}

// Normalized returns the query with the keyword trimmed and case-folded.
func (q Query) Normalized() Query {
	return Query{Keyword: strings.ToLower(strings.TrimSpace(q.Keyword)), Tag: q.Tag}
}

// Empty reports whether the query matches everything.
func (q Query) Empty() bool {
	n := q.Normalized()
	return n.Keyword == "" && n.Tag == ""
}

// Match reports whether item satisfies the query.
func (q Query) Match(item *catalog.Item) bool {
	n := q.Normalized()
	return n.match(item)
}

func (q Query) match(item *catalog.Item) bool {
	if q.Keyword != "" && !strings.Contains(item.SearchText(), q.Keyword) {
		return false
	}
	if q.Tag != "" && !item.HasTag(q.Tag) {
		return false
	}
	return true
}

// Apply returns the items matching q in their original order.
func Apply(items []catalog.Item, q Query) []catalog.Item {
	n := q.Normalized()
	out := make([]catalog.Item, 0, len(items))
	for i := range items {
		if n.match(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

// Catalog is a convenience wrapper over Apply for a whole catalog.
func Catalog(c *catalog.Catalog, q Query) []catalog.Item {
	return Apply(c.Items(), q)
}
