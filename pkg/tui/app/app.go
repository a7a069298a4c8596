// Package teaui hosts the Bubble Tea program for the herbview TUI.
package teaui

import (
	"context"
	"net/http"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/layout"
	"tableflip.dev/herbview/pkg/scene"
	"tableflip.dev/herbview/pkg/scene/pointcloud"
	"tableflip.dev/herbview/pkg/selection"
	"tableflip.dev/herbview/pkg/store"
	"tableflip.dev/herbview/pkg/tui/components/cardlist"
	"tableflip.dev/herbview/pkg/tui/components/detail"
	"tableflip.dev/herbview/pkg/tui/components/eventviewer"
	"tableflip.dev/herbview/pkg/tui/components/help"
	"tableflip.dev/herbview/pkg/tui/components/quizpane"
	"tableflip.dev/herbview/pkg/tui/components/viewer"
	"tableflip.dev/herbview/pkg/tui/events"
	"tableflip.dev/herbview/pkg/tui/theme"
	"tableflip.dev/herbview/pkg/tui/ui"
	"tableflip.dev/herbview/pkg/tui/ui/overlay"
)

// Component identifiers used in routed events.
const (
	listID     events.ComponentID = "list"
	viewerID   events.ComponentID = "viewer"
	detailID   events.ComponentID = "detail"
	quizID     events.ComponentID = "quiz"
	eventsID   events.ComponentID = "events"
	splitterID events.ComponentID = "splitter"
)

const (
	nudgeStep   = 2
	assetBuffer = 16
	helpText    = "tab:移動 /:検索 t:タグ [ ]:分割 ?:ヘルプ F2:ログ q:終了"
)

// Options configures the root model.
type Options struct {
	// Source is the catalog document.
	Source catalog.Source
	// AssetRoot resolves rooted fileUrl paths of file catalogs.
	AssetRoot string
	// Location carries the `model` parameter; nil disables it.
	Location *selection.Location
	// Client fetches remote catalogs and assets. Defaults to
	// http.DefaultClient.
	Client *http.Client
	// Factory overrides the point-cloud engine.
	Factory scene.Factory
	// Profile is the colour profile the viewport renders with.
	Profile termenv.Profile
	FPS     int
	Damping float64
	// MinViewer and MinInfo are the splitter minimums in cells.
	MinViewer int
	MinInfo   int
	// Watch reloads file catalogs when they change on disk.
	Watch  bool
	Logger *zap.Logger
}

// OptionsFromConfig maps the resolved configuration onto Options.
func OptionsFromConfig(cfg *store.Config, src catalog.Source, loc *selection.Location, log *zap.Logger) Options {
	return Options{
		Source:    src,
		AssetRoot: cfg.AssetRoot,
		Location:  loc,
		Profile:   termenv.ColorProfile(),
		FPS:       cfg.FPS,
		Damping:   cfg.Damping,
		MinViewer: cfg.ViewerMinWidth,
		MinInfo:   cfg.InfoMinWidth,
		Watch:     cfg.Watch,
		Logger:    log,
	}
}

// Model is the root of the TUI. It owns the selection controller and
// routes input to the list, viewport, detail and quiz panes.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options
	log    *zap.Logger
	loader *catalog.Loader
	theme  theme.Theme

	width  int
	height int

	list     *cardlist.Model
	viewer   *viewer.Model
	detail   *detail.Model
	quiz     *quizpane.Model
	splitter *layout.Splitter

	controller *selection.Controller
	loaded     bool
	loadErr    error

	focus  int
	status string

	debugEnabled bool
	eventViewer  *eventviewer.Model
	help         *help.Model

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
	assetErrs   chan events.AssetErrorMsg

	mainRows   int
	listRect   rect
	viewerRect rect
	detailRect rect
	quizRect   rect
	debugRect  rect
}

// New constructs the root model. Nothing is loaded until Init runs.
func New(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	ctx, cancel := context.WithCancel(context.Background())
	th := theme.Default()

	m := &Model{
		ctx:       ctx,
		cancel:    cancel,
		opts:      opts,
		log:       log,
		loader:    &catalog.Loader{Client: client},
		theme:     th,
		assetErrs: make(chan events.AssetErrorMsg, assetBuffer),
	}

	factory := opts.Factory
	if factory == nil {
		factory = &pointcloud.Factory{
			Client: client,
			Sink:   m.assetSink,
		}
	}
	adapter := scene.NewAdapter(factory,
		scene.WithLogger(log.Named("scene")),
		scene.WithDamping(float32(opts.Damping)),
		scene.WithProfile(opts.Profile),
	)
	resolve := func(item *catalog.Item) string {
		return catalog.ResolveAsset(opts.Source, opts.AssetRoot, item.FileURL)
	}

	m.list = cardlist.New(listID, th)
	m.viewer = viewer.New(viewerID, th, adapter, resolve, opts.FPS)
	m.detail = detail.New(detailID, th)
	m.quiz = quizpane.New(quizID, th)

	m.splitter = layout.New()
	m.splitter.SplitterWidth = 1
	m.splitter.MinViewer = 32
	m.splitter.MinInfo = 26
	if opts.MinViewer > 0 {
		m.splitter.MinViewer = opts.MinViewer
	}
	if opts.MinInfo > 0 {
		m.splitter.MinInfo = opts.MinInfo
	}
	m.splitter.OnReflow(m.applyWidths)
	return m
}

// Run launches the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Close stops background work and releases the live model.
func (m *Model) Close() {
	m.stopWatch()
	m.cancel()
	m.viewer.Adapter().Clear()
}

// Controller returns the selection controller, nil before the catalog loads.
func (m *Model) Controller() *selection.Controller { return m.controller }

// Loaded reports whether the catalog loaded successfully.
func (m *Model) Loaded() bool { return m.loaded }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadCatalogCmd(false)
}

// Update routes Bubble Tea messages to composed components.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.noteEvent(msg)

	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layoutPanes()
		if m.help != nil {
			m.help.SetSize(m.helpSize())
		}
	case events.CatalogLoadedMsg:
		m.handleCatalog(v, &cmds)
	case watchStartedMsg:
		if v.err != nil {
			m.log.Warn("catalog watch unavailable", zap.Error(v.err))
			break
		}
		m.stopWatch()
		m.watchCh = v.ch
		m.watchCancel = v.cancel
		cmds = append(cmds, m.waitForWatch())
	case events.WatchMsg:
		if v.Removed {
			m.log.Warn("catalog removed", zap.String("path", v.Path))
			m.status = "カタログが削除されました"
		} else {
			m.log.Info("catalog changed", zap.String("path", v.Path))
			cmds = append(cmds, m.loadCatalogCmd(true))
		}
		cmds = append(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
		if m.ctx.Err() == nil {
			cmds = append(cmds, m.startWatchCmd())
		}
	case events.AssetErrorMsg:
		m.log.Error("asset load failed", zap.String("url", v.URL), zap.Error(v.Err))
		m.status = "モデルの読み込みに失敗しました"
		cmds = append(cmds, m.waitForAssetError())
	case events.ItemSelectMsg:
		if m.controller != nil && m.controller.Select(v.Item.ID, v.FromUser) {
			cmds = append(cmds, m.viewer.TakeLoad())
		}
	case events.QuizAnswerMsg:
		m.log.Debug("quiz answered", zap.String("id", v.Item.ID), zap.Bool("correct", v.Correct))
	case viewer.FrameMsg:
		if m.loaded {
			_, cmd := m.viewer.Update(v)
			cmds = append(cmds, cmd)
		}
	case tea.KeyPressMsg:
		if quit, cmd := m.handleKey(v); quit {
			m.Close()
			return m, tea.Quit
		} else if cmd != nil {
			cmds = append(cmds, cmd)
		}
	case tea.MouseClickMsg:
		cmds = append(cmds, m.handleClick(v.Mouse()))
	case tea.MouseMotionMsg:
		cmds = append(cmds, m.handleMotion(v.Mouse()))
	case tea.MouseReleaseMsg:
		cmds = append(cmds, m.handleRelease())
	case tea.MouseWheelMsg:
		cmds = append(cmds, m.handleWheel(v))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleCatalog(msg events.CatalogLoadedMsg, cmds *[]tea.Cmd) {
	if msg.Err != nil {
		if msg.Reload {
			m.log.Warn("catalog reload failed", zap.String("source", m.opts.Source.String()), zap.Error(msg.Err))
			m.status = "再読み込みに失敗しました"
			return
		}
		m.log.Error("catalog load failed", zap.String("source", m.opts.Source.String()), zap.Error(msg.Err))
		m.loadErr = msg.Err
		m.list.SetLoadError()
		return
	}

	if msg.Reload {
		if m.controller == nil {
			return
		}
		m.list.SetCatalog(msg.Catalog)
		m.controller.Reload(msg.Catalog)
		*cmds = append(*cmds, m.viewer.TakeLoad())
		m.status = "カタログを再読み込みしました"
		return
	}
	if m.loaded {
		return
	}

	m.loaded = true
	m.log.Info("catalog loaded", zap.String("source", m.opts.Source.String()), zap.Int("items", msg.Catalog.Len()))
	m.controller = selection.New(msg.Catalog, m.opts.Location, selection.WithLogger(m.log.Named("selection")))
	m.controller.Subscribe(m.list)
	m.controller.Subscribe(m.viewer)
	m.controller.Subscribe(m.detail)
	m.controller.Subscribe(m.quiz)
	m.controller.Subscribe(selection.ObserverFunc(func(*catalog.Item) { m.layoutPanes() }))

	m.list.SetCatalog(msg.Catalog)
	m.controller.SelectInitial()

	*cmds = append(*cmds,
		m.viewer.Init(),
		m.viewer.TakeLoad(),
		m.waitForAssetError(),
		m.startWatchCmd(),
		m.setFocus(0),
	)
}

func (m *Model) handleKey(key tea.KeyPressMsg) (bool, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		return true, nil
	case "f2":
		return false, m.toggleDebug()
	}
	if m.help != nil {
		switch key.String() {
		case "?", "esc", "q":
			m.help = nil
			return false, nil
		}
		_, cmd := m.help.Update(key)
		return false, cmd
	}
	if !m.loaded {
		return key.String() == "q", nil
	}

	switch key.String() {
	case "tab":
		return false, m.cycleFocus(1)
	case "shift+tab":
		return false, m.cycleFocus(-1)
	}
	if !m.list.Typing() {
		switch key.String() {
		case "q":
			return true, nil
		case "?":
			m.toggleHelp()
			return false, nil
		case "[":
			return false, m.nudge(-nudgeStep)
		case "]":
			return false, m.nudge(nudgeStep)
		}
	}

	_, cmd := m.focused().Update(key)
	return false, cmd
}

func (m *Model) nudge(delta int) tea.Cmd {
	if !m.splitter.Nudge(delta) {
		return nil
	}
	return m.splitterCmd()
}

func (m *Model) handleClick(mouse tea.Mouse) tea.Cmd {
	if !m.loaded || m.help != nil {
		return nil
	}
	x, y := mouse.X, mouse.Y
	if y < m.mainRows && m.splitter.OnHandle(x) {
		button := layout.ButtonSecondary
		if mouse.Button == tea.MouseLeft {
			button = layout.ButtonPrimary
		}
		if m.splitter.Press(button, x) {
			return m.splitterCmd()
		}
		return nil
	}
	if mouse.Button != tea.MouseLeft {
		return nil
	}

	switch {
	case m.listRect.contains(x, y):
		lx, ly := m.listRect.local(x, y)
		return tea.Batch(m.focusComponent(m.list), m.list.ClickAt(lx, ly))
	case m.viewerRect.contains(x, y):
		m.viewer.DragStart(m.viewerRect.local(x, y))
		return m.focusComponent(m.viewer)
	case m.detailRect.contains(x, y):
		return m.focusComponent(m.detail)
	case m.quizRect.contains(x, y):
		qx, qy := m.quizRect.local(x, y)
		return tea.Batch(m.focusComponent(m.quiz), m.quiz.ClickAt(qx, qy))
	case m.eventViewer != nil && m.debugRect.contains(x, y):
		return m.focusComponent(m.eventViewer)
	}
	return nil
}

func (m *Model) handleMotion(mouse tea.Mouse) tea.Cmd {
	if m.splitter.Dragging() {
		if m.splitter.Move(mouse.X) {
			return m.splitterCmd()
		}
		return nil
	}
	if m.viewer.Dragging() {
		m.viewer.DragTo(m.viewerRect.local(mouse.X, mouse.Y))
	}
	return nil
}

func (m *Model) handleRelease() tea.Cmd {
	m.viewer.DragEnd()
	if m.splitter.Release() {
		return m.splitterCmd()
	}
	return nil
}

func (m *Model) handleWheel(msg tea.MouseWheelMsg) tea.Cmd {
	if !m.loaded {
		return nil
	}
	if m.help != nil {
		_, cmd := m.help.Update(msg)
		return cmd
	}
	mouse := msg.Mouse()
	var target ui.Component
	switch {
	case m.listRect.contains(mouse.X, mouse.Y):
		delta := 3
		if mouse.Button == tea.MouseWheelUp {
			delta = -3
		}
		m.list.Scroll(delta)
		return nil
	case m.viewerRect.contains(mouse.X, mouse.Y):
		target = m.viewer
	case m.detailRect.contains(mouse.X, mouse.Y):
		target = m.detail
	case m.eventViewer != nil && m.debugRect.contains(mouse.X, mouse.Y):
		target = m.eventViewer
	default:
		return nil
	}
	_, cmd := target.Update(msg)
	return cmd
}

func (m *Model) ring() []ui.Focusable {
	ring := []ui.Focusable{m.list, m.viewer, m.detail, m.quiz}
	if m.eventViewer != nil {
		ring = append(ring, m.eventViewer)
	}
	return ring
}

func (m *Model) focused() ui.Focusable {
	ring := m.ring()
	if m.focus < 0 || m.focus >= len(ring) {
		m.focus = 0
	}
	return ring[m.focus]
}

func (m *Model) setFocus(index int) tea.Cmd {
	ring := m.ring()
	n := len(ring)
	index = ((index % n) + n) % n
	var cmds []tea.Cmd
	for i, c := range ring {
		if i != index && c.Focused() {
			cmds = append(cmds, c.Blur())
		}
	}
	m.focus = index
	if !ring[index].Focused() {
		cmds = append(cmds, ring[index].Focus())
	}
	return tea.Batch(cmds...)
}

func (m *Model) cycleFocus(step int) tea.Cmd {
	return m.setFocus(m.focus + step)
}

func (m *Model) focusComponent(c ui.Focusable) tea.Cmd {
	for i, candidate := range m.ring() {
		if candidate.ID() == c.ID() {
			return m.setFocus(i)
		}
	}
	return nil
}

// View renders the composed UI.
func (m *Model) View() (string, *tea.Cursor) {
	if m.width <= 0 || m.height <= 0 {
		return "initializing…", nil
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		m.pane(m.list, m.listRect),
		m.pane(m.viewer, m.viewerRect),
		m.handleView(),
		m.infoView(),
	)
	parts := []string{main}
	if m.debugEnabled && m.eventViewer != nil && m.debugRect.h > 0 {
		parts = append(parts, m.eventViewer.View())
	}
	parts = append(parts, m.statusLine())
	view := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if m.help != nil {
		view = overlay.Compose(view, m.width, m.height, m.help.View(), overlay.Placement{
			Horizontal: lipgloss.Center,
			Vertical:   lipgloss.Center,
		})
	}
	return view, nil
}

// toggleHelp opens or closes the key help window.
func (m *Model) toggleHelp() {
	if m.help != nil {
		m.help = nil
		return
	}
	w, h := m.helpSize()
	m.help = help.New(helpTitle, keySections, w, h)
}

func (m *Model) helpSize() (int, int) {
	return min(72, m.width-4), min(30, m.height-2)
}

func (m *Model) statusLine() string {
	footer := m.theme.Footer
	var left string
	switch {
	case m.loadErr != nil:
		left = footer.Error.Render(m.loadErr.Error())
	case m.controller != nil && m.controller.Location() != nil:
		left = footer.Location.Render(m.controller.Location().String())
	default:
		left = footer.Location.Render(m.opts.Source.String())
	}
	parts := []string{left}
	if m.status != "" {
		parts = append(parts, footer.Status.Render(m.status))
	}
	parts = append(parts, footer.Help.Render(helpText))
	line := lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(parts)...)
	return truncate.StringWithTail(line, uint(max(1, m.width)), "…")
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, p)
	}
	return out
}
