package catalog

import "sort"

// Catalog is the ordered, read-only list of items plus an id index.
type Catalog struct {
	items []Item
	index map[string]int
}

// New builds a catalog over items. Items without an id stay listed but can
// never be looked up; for duplicate ids the first occurrence wins.
func New(items []Item) *Catalog {
	c := &Catalog{
		items: make([]Item, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, it := range c.items {
		if it.ID == "" {
			continue
		}
		if _, dup := c.index[it.ID]; dup {
			continue
		}
		c.index[it.ID] = i
	}
	return c
}

// Items returns the items in load order. Callers must not modify the slice.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	return c.items
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Lookup returns the item with the given id.
func (c *Catalog) Lookup(id string) (*Item, bool) {
	if c == nil || id == "" {
		return nil, false
	}
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.items[i], true
}

// Has reports whether id names a selectable item.
func (c *Catalog) Has(id string) bool {
	_, ok := c.Lookup(id)
	return ok
}

// First returns the first selectable item.
func (c *Catalog) First() (*Item, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.items {
		if c.items[i].ID != "" {
			return &c.items[i], true
		}
	}
	return nil, false
}

// Tags returns every tag used in the catalog, sorted.
func (c *Catalog) Tags() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, it := range c.items {
		for _, t := range it.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
