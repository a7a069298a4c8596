package scene

import (
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

type fakeModel struct {
	url      string
	disposed int
	renders  int
	live     *int
}

func (m *fakeModel) Render(c *Canvas, cam *Camera) {
	m.renders++
	v := cam.View(c.Width(), c.Height())
	if x, y, d, ok := v.Project(Vec3{}); ok {
		c.Plot(x, y, d, colorful.Color{R: 1})
	}
}

func (m *fakeModel) Dispose() {
	m.disposed++
	*m.live--
}

type fakeFactory struct {
	live  int
	built []*fakeModel
}

func (f *fakeFactory) New(url string) Renderable {
	f.live++
	m := &fakeModel{url: url, live: &f.live}
	f.built = append(f.built, m)
	return m
}

func TestLoadModelSwapsAndReleases(t *testing.T) {
	f := &fakeFactory{}
	a := NewAdapter(f)

	a.LoadModel("a.splat")
	if f.live != 1 {
		t.Fatalf("expected one live renderable, got %d", f.live)
	}
	a.LoadModel("b.splat")
	if f.live != 1 {
		t.Fatalf("expected one live renderable after swap, got %d", f.live)
	}
	if got := f.built[0].disposed; got != 1 {
		t.Fatalf("first model disposed %d times", got)
	}
	if f.built[1].disposed != 0 {
		t.Fatalf("live model disposed")
	}
	if a.URL() != "b.splat" || a.Current() != Renderable(f.built[1]) {
		t.Fatalf("adapter not pointing at second model")
	}

	a.Clear()
	if f.live != 0 || f.built[1].disposed != 1 || a.Current() != nil {
		t.Fatalf("clear did not release the model")
	}
	a.Clear()
	if f.built[1].disposed != 1 {
		t.Fatalf("model disposed twice")
	}
}

func TestLoadModelWithoutURLOnlyReleases(t *testing.T) {
	f := &fakeFactory{}
	a := NewAdapter(f)
	a.LoadModel("a.splat")
	a.LoadModel("")
	if f.live != 0 || len(f.built) != 1 {
		t.Fatalf("live=%d built=%d", f.live, len(f.built))
	}
}

type plainModel struct{}

func (plainModel) Render(*Canvas, *Camera) {}

func TestLoadModelToleratesNonDisposers(t *testing.T) {
	a := NewAdapter(FactoryFunc(func(string) Renderable { return plainModel{} }))
	a.LoadModel("a.xyz")
	a.LoadModel("b.xyz")
	if a.URL() != "b.xyz" {
		t.Fatalf("url %q", a.URL())
	}
}

func TestTickRendersCurrentModel(t *testing.T) {
	f := &fakeFactory{}
	a := NewAdapter(f, WithProfile(termenv.Ascii))
	a.Resize(20, 10)
	a.LoadModel("a.splat")
	a.Tick()
	if f.built[0].renders != 1 {
		t.Fatalf("expected one render, got %d", f.built[0].renders)
	}
	out := a.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if !strings.ContainsAny(out, "▀▄") {
		t.Fatalf("origin point not drawn:\n%s", out)
	}
}

func TestResizeSetsAspect(t *testing.T) {
	a := NewAdapter(nil)
	a.Resize(40, 10)
	if got := a.Camera().Aspect(); got != 2 {
		t.Fatalf("aspect %v, want 2", got)
	}
	if cols, rows := a.Size(); cols != 40 || rows != 10 {
		t.Fatalf("size %dx%d", cols, rows)
	}
}
