package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/herbview/pkg/store"
	"tableflip.dev/herbview/pkg/tui/events"
)

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchStoppedMsg struct{}

type assetStoppedMsg struct{}

func (m *Model) loadCatalogCmd(reload bool) tea.Cmd {
	ctx := m.ctx
	loader := m.loader
	src := m.opts.Source
	return func() tea.Msg {
		c, err := loader.Load(ctx, src)
		return events.CatalogLoadedMsg{Catalog: c, Err: err, Reload: reload}
	}
}

func (m *Model) startWatchCmd() tea.Cmd {
	if !m.opts.Watch || m.opts.Source.Remote() {
		return nil
	}
	parent := m.ctx
	path := m.opts.Source.Path()
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := store.WatchFile(ctx, path, store.DefaultThrottle)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return events.WatchMsg{Path: ev.Path, Removed: ev.Type == store.EventCatalogRemoved}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// assetSink is handed to the scene engine. It runs on engine goroutines and
// must never block them.
func (m *Model) assetSink(url string, err error) {
	select {
	case m.assetErrs <- events.AssetErrorMsg{URL: url, Err: err}:
	default:
		m.log.Warn("dropping asset error", zap.String("url", url), zap.Error(err))
	}
}

func (m *Model) waitForAssetError() tea.Cmd {
	ch := m.assetErrs
	done := m.ctx.Done()
	return func() tea.Msg {
		select {
		case msg := <-ch:
			return msg
		case <-done:
			return assetStoppedMsg{}
		}
	}
}
