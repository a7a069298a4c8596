package scene

import (
	"github.com/muesli/termenv"
	"go.uber.org/zap"
)

// Adapter owns the viewport: camera, canvas and the one live renderable.
// It is driven from the UI's update loop and is not safe for concurrent use.
type Adapter struct {
	factory Factory
	current Renderable
	url     string
	framed  bool

	camera  *Camera
	canvas  *Canvas
	profile termenv.Profile
	log     *zap.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the adapter's logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Adapter) {
		if log != nil {
			a.log = log
		}
	}
}

// WithDamping sets the orbit damping factor.
func WithDamping(d float32) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.camera.Damping = d
		}
	}
}

// WithProfile sets the colour profile used by View.
func WithProfile(p termenv.Profile) Option {
	return func(a *Adapter) { a.profile = p }
}

// NewAdapter returns an empty viewport backed by f.
func NewAdapter(f Factory, opts ...Option) *Adapter {
	a := &Adapter{
		factory: f,
		camera:  NewCamera(),
		canvas:  NewCanvas(0, 0),
		profile: termenv.ANSI256,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoadModel replaces the live renderable. The previous one is removed and
// disposed exactly once before the new one is created, so at most one
// renderable is ever live. An empty url only releases the current model.
func (a *Adapter) LoadModel(url string) {
	a.release()
	if url == "" || a.factory == nil {
		return
	}
	a.log.Debug("loading model", zap.String("url", url))
	a.current = a.factory.New(url)
	a.url = url
}

// Clear releases the live renderable without loading another.
func (a *Adapter) Clear() { a.release() }

func (a *Adapter) release() {
	prev := a.current
	a.current = nil
	a.url = ""
	a.framed = false
	if prev == nil {
		return
	}
	if d, ok := prev.(Disposer); ok {
		d.Dispose()
	}
}

// Current returns the live renderable, or nil.
func (a *Adapter) Current() Renderable { return a.current }

// URL returns the asset URL of the live renderable.
func (a *Adapter) URL() string { return a.url }

// Camera returns the viewport camera.
func (a *Adapter) Camera() *Camera { return a.camera }

// Resize updates the canvas size in cells and the camera aspect ratio.
func (a *Adapter) Resize(cols, rows int) {
	a.canvas.Resize(cols, rows)
	if rows > 0 {
		a.camera.SetAspect(float32(a.canvas.Width()) / float32(a.canvas.Height()))
	}
}

// Size returns the canvas size in cells.
func (a *Adapter) Size() (cols, rows int) { return a.canvas.Cols(), a.canvas.Rows() }

// Tick advances the render loop by one frame: damped camera update, then a
// redraw of the live renderable. The camera is framed on the model the first
// time its bounds become known.
func (a *Adapter) Tick() {
	if !a.framed {
		if b, ok := a.current.(Bounder); ok {
			if min, max, ok := b.Bounds(); ok {
				a.camera.Frame(min, max)
				a.framed = true
			}
		}
	}
	a.camera.Update()
	a.canvas.Clear()
	if a.current != nil {
		a.current.Render(a.canvas, a.camera)
	}
}

// View renders the last frame.
func (a *Adapter) View() string {
	return a.canvas.Render(a.profile)
}
