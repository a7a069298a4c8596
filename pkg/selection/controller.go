// Package selection owns the single "active item" state of the viewer and
// fans every change out to the views that depend on it.
package selection

import (
	"go.uber.org/zap"

	"tableflip.dev/herbview/pkg/catalog"
)

// Observer is notified synchronously after every successful selection.
type Observer interface {
	Selected(item *catalog.Item)
}

// Clearer is implemented by observers that must reset when a reload leaves
// nothing selected.
type Clearer interface {
	Cleared()
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(item *catalog.Item)

// Selected implements Observer.
func (f ObserverFunc) Selected(item *catalog.Item) { f(item) }

// Controller mediates every change to the active id. It is not safe for
// concurrent use; the UI drives it from its single update loop.
type Controller struct {
	catalog   *catalog.Catalog
	location  *Location
	observers []Observer
	active    string
	log       *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes swallowed location errors to log.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// New returns a controller over c. loc may be nil, in which case the
// location is neither read nor rewritten.
func New(c *catalog.Catalog, loc *Location, opts ...Option) *Controller {
	ctrl := &Controller{
		catalog:  c,
		location: loc,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ctrl)
	}
	return ctrl
}

// Subscribe registers o. Observers are notified in subscription order.
func (c *Controller) Subscribe(o Observer) {
	if o == nil {
		return
	}
	c.observers = append(c.observers, o)
}

// Active returns the active id, or "" when nothing is selected.
func (c *Controller) Active() string { return c.active }

// ActiveItem returns the active item.
func (c *Controller) ActiveItem() (*catalog.Item, bool) {
	return c.catalog.Lookup(c.active)
}

// Catalog returns the catalog the controller currently selects from.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Location returns the controller's location, which may be nil.
func (c *Controller) Location() *Location { return c.location }

// Select makes id active. Unknown ids are ignored and Select reports false
// without touching any state. When fromUser is set the location's model
// parameter is rewritten; failures there are logged and otherwise ignored.
func (c *Controller) Select(id string, fromUser bool) bool {
	item, ok := c.catalog.Lookup(id)
	if !ok {
		c.log.Debug("ignoring selection of unknown id", zap.String("id", id))
		return false
	}
	c.active = item.ID
	for _, o := range c.observers {
		o.Selected(item)
	}
	if fromUser && c.location != nil {
		if err := c.location.SetModel(item.ID); err != nil {
			c.log.Warn("location update failed", zap.String("id", item.ID), zap.Error(err))
		}
	}
	return true
}

// SelectInitial picks the starting item: the location's model parameter if
// it names a known id, else the first selectable item. It reports whether
// anything was selected.
func (c *Controller) SelectInitial() bool {
	if id := c.location.Model(); id != "" && c.catalog.Has(id) {
		return c.Select(id, false)
	}
	if first, ok := c.catalog.First(); ok {
		return c.Select(first.ID, false)
	}
	return false
}

// Reload swaps in a freshly loaded catalog. The active id is kept when it
// still exists so views refresh with the new record; otherwise the initial
// selection rules apply again. With an empty catalog the selection clears.
func (c *Controller) Reload(next *catalog.Catalog) bool {
	c.catalog = next
	prev := c.active
	c.active = ""
	if prev != "" && next.Has(prev) {
		return c.Select(prev, false)
	}
	if c.SelectInitial() {
		return true
	}
	for _, o := range c.observers {
		if cl, ok := o.(Clearer); ok {
			cl.Cleared()
		}
	}
	return false
}
