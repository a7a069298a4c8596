// Package tags prints the catalog's distinct tags with item counts.
package tags

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/printers"
)

// Tags lists tags in sorted order.
type Tags struct {
	Source catalog.Source
	Loader *catalog.Loader
	JSON   bool
	// Out defaults to color.Output.
	Out io.Writer
}

// Count is one tag and the number of items carrying it.
type Count struct {
	Tag   string `json:"tag"`
	Items int    `json:"items"`
}

// Do loads the catalog and prints its tags.
func (t *Tags) Do(ctx context.Context) error {
	if t.Loader == nil {
		return errors.New("can not list tags, no catalog loader")
	}
	c, err := t.Loader.Load(ctx, t.Source)
	if err != nil {
		return err
	}
	names, counts := Counts(c)

	out := t.Out
	if out == nil {
		out = color.Output
	}
	if t.JSON {
		rows := make([]Count, 0, len(names))
		for _, n := range names {
			rows = append(rows, Count{Tag: n, Items: counts[n]})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("tags: encode: %w", err)
		}
		return nil
	}

	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	pp.Title("Tags")
	pp.Tags(names, counts)
	return nil
}

// Counts returns the catalog's tags and how many items carry each.
func Counts(c *catalog.Catalog) ([]string, map[string]int) {
	names := c.Tags()
	counts := make(map[string]int, len(names))
	for _, item := range c.Items() {
		for _, tag := range item.Tags {
			counts[tag]++
		}
	}
	return names, counts
}
