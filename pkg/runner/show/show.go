// Package show prints one catalog item in full.
package show

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/printers"
	"tableflip.dev/herbview/pkg/prompt"
)

// Show prints the item with ID, or asks for one when Interactive is set.
type Show struct {
	Source      catalog.Source
	Loader      *catalog.Loader
	AssetRoot   string
	ID          string
	Interactive bool
	ShowID      bool
	JSON        bool
	Prompt      prompt.IO
	// Out defaults to color.Output.
	Out io.Writer
}

type shown struct {
	catalog.Item
	AssetURL string `json:"assetUrl,omitempty"`
}

// Do loads the catalog and prints the chosen item.
func (s *Show) Do(ctx context.Context) error {
	if s.Loader == nil {
		return errors.New("can not show, no catalog loader")
	}
	c, err := s.Loader.Load(ctx, s.Source)
	if err != nil {
		return err
	}

	item, err := s.pick(c)
	if err != nil {
		return err
	}
	asset := catalog.ResolveAsset(s.Source, s.AssetRoot, item.FileURL)

	out := s.Out
	if out == nil {
		out = color.Output
	}
	if s.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(shown{Item: *item, AssetURL: asset}); err != nil {
			return fmt.Errorf("show: encode: %w", err)
		}
		return nil
	}

	pp := printers.PrettyPrint{ShowID: s.ShowID, Out: out}
	pp.NewLine()
	pp.Item(item, asset)
	return nil
}

func (s *Show) pick(c *catalog.Catalog) (*catalog.Item, error) {
	if s.Interactive && s.ID == "" {
		items := c.Items()
		if len(items) == 0 {
			return nil, errors.New("catalog is empty")
		}
		i, err := prompt.Item(s.Prompt, "Items", items)
		if err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	if s.ID == "" {
		return nil, errors.New("an item id is required")
	}
	item, ok := c.Lookup(s.ID)
	if !ok {
		return nil, fmt.Errorf("no item with id %q", s.ID)
	}
	return item, nil
}
