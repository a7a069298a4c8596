package viewer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/termenv"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/scene"
	"tableflip.dev/herbview/pkg/tui/events"
	"tableflip.dev/herbview/pkg/tui/theme"
)

type stubModel struct {
	url      string
	disposed int
	renders  int
}

func (s *stubModel) Render(c *scene.Canvas, cam *scene.Camera) { s.renders++ }
func (s *stubModel) Dispose()                                   { s.disposed++ }

type stubFactory struct {
	made []*stubModel
}

func (f *stubFactory) New(url string) scene.Renderable {
	m := &stubModel{url: url}
	f.made = append(f.made, m)
	return m
}

func newViewer(f *stubFactory) *Model {
	adapter := scene.NewAdapter(f, scene.WithProfile(termenv.Ascii))
	m := New("viewer", theme.Default(), adapter, func(item *catalog.Item) string {
		return "/assets/" + item.FileURL
	}, 0)
	m.SetSize(20, 10)
	return m
}

func TestSelectSwapsModel(t *testing.T) {
	f := &stubFactory{}
	m := newViewer(f)
	m.Selected(&catalog.Item{ID: "a", FileURL: "a.splat"})
	m.Selected(&catalog.Item{ID: "b", FileURL: "b.ply"})
	if len(f.made) != 2 {
		t.Fatalf("expected two models, got %d", len(f.made))
	}
	if f.made[0].disposed != 1 || f.made[1].disposed != 0 {
		t.Fatalf("dispose counts %d/%d", f.made[0].disposed, f.made[1].disposed)
	}
	if got := m.Adapter().URL(); got != "/assets/b.ply" {
		t.Fatalf("resolved url %q", got)
	}
	cmd := m.TakeLoad()
	if cmd == nil {
		t.Fatalf("missing load notification")
	}
	if msg := cmd().(events.ModelLoadMsg); msg.Item.ID != "b" || msg.URL != "/assets/b.ply" {
		t.Fatalf("unexpected load event %#v", msg)
	}
	if m.TakeLoad() != nil {
		t.Fatalf("load notification delivered twice")
	}

	m.Cleared()
	if f.made[1].disposed != 1 || m.Adapter().Current() != nil {
		t.Fatalf("clear did not release the model")
	}
}

func TestFrameTicksRender(t *testing.T) {
	f := &stubFactory{}
	m := newViewer(f)
	m.Selected(&catalog.Item{ID: "a", FileURL: "a.xyz"})
	_, cmd := m.Update(FrameMsg{Component: "viewer"})
	if cmd == nil {
		t.Fatalf("frame should schedule the next frame")
	}
	if f.made[0].renders != 1 {
		t.Fatalf("expected one render, got %d", f.made[0].renders)
	}
	if _, cmd := m.Update(FrameMsg{Component: "other"}); cmd != nil || f.made[0].renders != 1 {
		t.Fatalf("foreign frame handled")
	}
}

func TestKeysAndDragOrbit(t *testing.T) {
	m := newViewer(&stubFactory{})
	cam := m.Adapter().Camera()
	start := cam.Eye()

	m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	cam.Update()
	if cam.Eye() != start {
		t.Fatalf("unfocused viewer reacted to keys")
	}

	m.Focus()
	m.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	cam.Update()
	if cam.Eye() == start {
		t.Fatalf("right arrow did not orbit")
	}

	m.Update(tea.KeyPressMsg{Text: "r", Code: 'r'})
	if cam.Eye() != start {
		t.Fatalf("reset did not restore the eye: %+v", cam.Eye())
	}

	m.DragTo(5, 5)
	cam.Update()
	if cam.Eye() != start {
		t.Fatalf("move without press orbited")
	}
	m.DragStart(2, 2)
	m.DragTo(6, 2)
	m.DragEnd()
	cam.Update()
	if cam.Eye() == start || m.Dragging() {
		t.Fatalf("drag did not orbit")
	}
}

func TestEmptyViewShowsPlaceholder(t *testing.T) {
	m := newViewer(&stubFactory{})
	if m.View() == "" {
		t.Fatalf("expected a placeholder")
	}
}
