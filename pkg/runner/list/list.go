// Package list prints the catalog, optionally filtered by keyword and tag.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/filter"
	"tableflip.dev/herbview/pkg/printers"
)

// List prints the items matching Query.
type List struct {
	Source catalog.Source
	Loader *catalog.Loader
	Query  filter.Query
	ShowID bool
	JSON   bool
	// Out defaults to color.Output.
	Out io.Writer
}

// Do loads the catalog and prints the matching items.
func (l *List) Do(ctx context.Context) error {
	if l.Loader == nil {
		return errors.New("can not list, no catalog loader")
	}
	c, err := l.Loader.Load(ctx, l.Source)
	if err != nil {
		return err
	}
	items := filter.Catalog(c, l.Query)

	out := l.Out
	if out == nil {
		out = color.Output
	}
	if l.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("list: encode: %w", err)
		}
		return nil
	}

	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: out}
	pp.NewLine()
	pp.TitleWithCount(l.title(), len(items))
	pp.Items(items...)
	return nil
}

func (l *List) title() string {
	q := l.Query.Normalized()
	switch {
	case q.Keyword != "" && q.Tag != "":
		return fmt.Sprintf("%q in #%s", q.Keyword, q.Tag)
	case q.Keyword != "":
		return fmt.Sprintf("%q", q.Keyword)
	case q.Tag != "":
		return "#" + q.Tag
	default:
		return l.Source.String()
	}
}
