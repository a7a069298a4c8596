// Package layout implements the draggable splitter between the 3D viewport
// and the info panel.
package layout

// Default minimum widths. Units are whatever the caller measures the
// container in; the terminal UI passes cells and its own minimums.
const (
	DefaultMinViewerWidth = 320
	DefaultMinInfoWidth   = 260
	DefaultSplitterWidth  = 6
)

// Button identifies the pointer button of a press.
type Button int

const (
	// ButtonPrimary is the left mouse button.
	ButtonPrimary Button = iota
	// ButtonSecondary covers every other button.
	ButtonSecondary
)

// Container is the geometry of the region shared by viewport, splitter and
// info panel.
type Container struct {
	Left  int
	Width int
}

// Widths is the applied split.
type Widths struct {
	Viewer   int
	Splitter int
	Info     int
}

// Total returns Viewer+Splitter+Info.
func (w Widths) Total() int { return w.Viewer + w.Splitter + w.Info }

// Splitter is the idle/dragging state machine for resizing.
type Splitter struct {
	MinViewer     int
	MinInfo       int
	SplitterWidth int

	container Container
	widths    Widths
	dragging  bool
	applied   bool

	onReflow func(Widths)
}

// New returns a splitter with the default minimums.
func New() *Splitter {
	return &Splitter{
		MinViewer:     DefaultMinViewerWidth,
		MinInfo:       DefaultMinInfoWidth,
		SplitterWidth: DefaultSplitterWidth,
	}
}

// OnReflow registers the hook invoked after every width recompute.
func (s *Splitter) OnReflow(fn func(Widths)) { s.onReflow = fn }

// Dragging reports whether a drag is in progress.
func (s *Splitter) Dragging() bool { return s.dragging }

// Enabled reports whether the container can host both panes at their
// minimums plus the handle. A disabled splitter ignores presses.
func (s *Splitter) Enabled() bool {
	return s.container.Width >= s.MinViewer+s.MinInfo+s.SplitterWidth
}

// Widths returns the current split.
func (s *Splitter) Widths() Widths { return s.widths }

// HandleBounds returns the [start, end) range of the handle in container
// coordinates.
func (s *Splitter) HandleBounds() (int, int) {
	start := s.container.Left + s.widths.Viewer
	return start, start + s.widths.Splitter
}

// OnHandle reports whether x falls on the handle.
func (s *Splitter) OnHandle(x int) bool {
	start, end := s.HandleBounds()
	return x >= start && x < end
}

// SetContainer updates the container geometry, keeping the previous viewer
// width where it still fits. The first call splits the container evenly,
// respecting the minimums. It does not invoke the reflow hook.
func (s *Splitter) SetContainer(c Container) Widths {
	s.container = c
	viewer := s.widths.Viewer
	if !s.applied {
		viewer = (c.Width - s.SplitterWidth) / 2
	}
	s.widths = s.compute(viewer)
	s.applied = true
	if !s.Enabled() {
		s.dragging = false
	}
	return s.widths
}

// Press starts a drag when the primary button goes down on the handle.
func (s *Splitter) Press(b Button, x int) bool {
	if b != ButtonPrimary || !s.Enabled() || !s.OnHandle(x) {
		return false
	}
	s.dragging = true
	return true
}

// Move recomputes the split for pointer position x while dragging.
func (s *Splitter) Move(x int) bool {
	if !s.dragging {
		return false
	}
	s.apply(x - s.container.Left)
	return true
}

// Release ends a drag regardless of where the pointer is.
func (s *Splitter) Release() bool {
	if !s.dragging {
		return false
	}
	s.dragging = false
	return true
}

// Nudge shifts the handle by delta using the same clamp as a drag.
func (s *Splitter) Nudge(delta int) bool {
	if !s.Enabled() || delta == 0 {
		return false
	}
	s.apply(s.widths.Viewer + delta)
	return true
}

func (s *Splitter) apply(viewer int) {
	s.widths = s.compute(viewer)
	if s.onReflow != nil {
		s.onReflow(s.widths)
	}
}

// compute clamps viewer into [MinViewer, width-splitter-MinInfo] and gives
// the remainder to the info panel. Too-narrow containers shrink the viewer
// first and never produce negative widths.
func (s *Splitter) compute(viewer int) Widths {
	width := s.container.Width
	splitter := s.SplitterWidth
	if splitter > width {
		splitter = width
	}
	maxViewer := width - splitter - s.MinInfo
	if viewer < s.MinViewer {
		viewer = s.MinViewer
	}
	if viewer > maxViewer {
		viewer = maxViewer
	}
	if viewer < 0 {
		viewer = 0
	}
	info := width - splitter - viewer
	if info < 0 {
		info = 0
	}
	return Widths{Viewer: viewer, Splitter: splitter, Info: info}
}
