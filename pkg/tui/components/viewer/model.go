// Package viewer hosts the 3D viewport: it forwards the active item's asset
// to the scene adapter, drives the render loop and maps keys and mouse drags
// onto the orbit camera.
package viewer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/scene"
	"tableflip.dev/herbview/pkg/tui/events"
	"tableflip.dev/herbview/pkg/tui/theme"
	"tableflip.dev/herbview/pkg/tui/ui"
)

// DefaultFPS is the render loop rate when none is configured.
const DefaultFPS = 30

const (
	keyStep   = 0.15
	dollyStep = 0.2
	dragX     = 0.06
	dragY     = 0.12
)

// FrameMsg advances the render loop by one frame.
type FrameMsg struct {
	Component events.ComponentID
}

// Resolver maps an item to the asset URL handed to the engine.
type Resolver func(item *catalog.Item) string

// Model is the viewport pane.
type Model struct {
	id       events.ComponentID
	theme    theme.Theme
	adapter  *scene.Adapter
	resolve  Resolver
	interval time.Duration
	focused  bool

	item    events.ItemRef
	pending tea.Cmd

	dragging     bool
	dragX, dragY int

	width  int
	height int
}

var _ ui.Focusable = (*Model)(nil)

// New returns a viewport pane rendering through adapter at fps frames per
// second.
func New(id events.ComponentID, th theme.Theme, adapter *scene.Adapter, resolve Resolver, fps int) *Model {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if resolve == nil {
		resolve = func(item *catalog.Item) string { return item.FileURL }
	}
	return &Model{
		id:       id,
		theme:    th,
		adapter:  adapter,
		resolve:  resolve,
		interval: time.Second / time.Duration(fps),
	}
}

// ID implements ui.Focusable.
func (m *Model) ID() events.ComponentID { return m.id }

// Adapter returns the scene adapter.
func (m *Model) Adapter() *scene.Adapter { return m.adapter }

// Init starts the render loop.
func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) tick() tea.Cmd {
	id := m.id
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return FrameMsg{Component: id}
	})
}

// Selected implements selection.Observer by swapping the live model.
func (m *Model) Selected(item *catalog.Item) {
	url := m.resolve(item)
	m.adapter.LoadModel(url)
	m.item = events.RefFromItem(item)
	m.pending = events.ModelLoadCmd(m.id, m.item, url)
}

// Cleared implements selection.Clearer.
func (m *Model) Cleared() {
	m.adapter.Clear()
	m.item = events.ItemRef{}
	m.pending = nil
}

// TakeLoad returns the notification for the most recent model swap, once.
func (m *Model) TakeLoad() tea.Cmd {
	cmd := m.pending
	m.pending = nil
	return cmd
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case FrameMsg:
		if v.Component != m.id {
			return m, nil
		}
		m.adapter.Tick()
		return m, m.tick()
	case tea.KeyPressMsg:
		if m.focused {
			m.handleKey(v.String())
		}
	case tea.MouseWheelMsg:
		switch v.Mouse().Button {
		case tea.MouseWheelUp:
			m.adapter.Camera().Dolly(dollyStep / 2)
		case tea.MouseWheelDown:
			m.adapter.Camera().Dolly(-dollyStep / 2)
		}
	}
	return m, nil
}

func (m *Model) handleKey(key string) {
	cam := m.adapter.Camera()
	switch key {
	case "left", "h":
		cam.Rotate(-keyStep, 0)
	case "right", "l":
		cam.Rotate(keyStep, 0)
	case "up", "k":
		cam.Rotate(0, -keyStep)
	case "down", "j":
		cam.Rotate(0, keyStep)
	case "+", "=":
		cam.Dolly(dollyStep)
	case "-", "_":
		cam.Dolly(-dollyStep)
	case "r":
		cam.Reset()
		if b, ok := m.adapter.Current().(scene.Bounder); ok {
			if lo, hi, ok := b.Bounds(); ok {
				cam.Frame(lo, hi)
			}
		}
	}
}

// DragStart begins an orbit drag at pane-local cell (x, y).
func (m *Model) DragStart(x, y int) {
	m.dragging = true
	m.dragX, m.dragY = x, y
}

// DragTo orbits the camera by the pointer movement since the last call.
func (m *Model) DragTo(x, y int) {
	if !m.dragging {
		return
	}
	dx, dy := x-m.dragX, y-m.dragY
	m.dragX, m.dragY = x, y
	m.adapter.Camera().Rotate(float32(dx)*dragX, float32(dy)*dragY)
}

// DragEnd stops an orbit drag.
func (m *Model) DragEnd() { m.dragging = false }

// Dragging reports whether an orbit drag is in progress.
func (m *Model) Dragging() bool { return m.dragging }

// Focus implements ui.Focusable.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return events.FocusCmd(m.id)
}

// Blur implements ui.Focusable.
func (m *Model) Blur() tea.Cmd {
	if !m.focused {
		return nil
	}
	m.focused = false
	m.dragging = false
	return events.BlurCmd(m.id)
}

// Focused implements ui.Focusable.
func (m *Model) Focused() bool { return m.focused }

// SetSize implements ui.Component and reflows the viewport.
func (m *Model) SetSize(width, height int) {
	m.width = max(1, width)
	m.height = max(1, height)
	m.adapter.Resize(m.width, m.height)
}

// View implements ui.Component.
func (m *Model) View() string {
	if m.adapter.Current() == nil {
		return m.theme.Panel.Muted.Render("モデルが選択されていません。")
	}
	return m.adapter.View()
}
