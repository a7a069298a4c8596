package teaui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/herbview/pkg/tui/components/eventviewer"
	"tableflip.dev/herbview/pkg/tui/components/viewer"
	"tableflip.dev/herbview/pkg/tui/events"
)

const (
	debugEntries = 400

	debugShownStatus  = "デバッグログを表示しました"
	debugHiddenStatus = "デバッグログを非表示にしました"
)

func (m *Model) toggleDebug() tea.Cmd {
	if m.debugEnabled {
		var cmd tea.Cmd
		if m.eventViewer != nil && m.eventViewer.Focused() {
			cmd = m.setFocus(0)
		}
		m.debugEnabled = false
		m.eventViewer = nil
		m.status = debugHiddenStatus
		m.layoutPanes()
		return cmd
	}

	m.debugEnabled = true
	if m.eventViewer == nil {
		m.eventViewer = eventviewer.NewModel(eventsID, debugEntries)
	}
	m.appendEvent(eventviewer.Entry{
		Summary: "debug",
		Detail:  debugShownStatus,
		Source:  "ui",
	})
	m.status = debugShownStatus
	m.layoutPanes()
	return nil
}

// noteEvent mirrors every routed message into the debug dock. Frame ticks
// and idle pointer motion are skipped; they would bury everything else.
func (m *Model) noteEvent(msg tea.Msg) {
	if m.eventViewer == nil {
		return
	}
	switch msg.(type) {
	case viewer.FrameMsg:
		return
	case tea.MouseMotionMsg:
		if !m.splitter.Dragging() && !m.viewer.Dragging() {
			return
		}
	}

	source := "tea"
	if s, ok := eventSource(msg); ok && s != "" {
		source = s
	}

	entry := eventviewer.Entry{
		Timestamp: time.Now(),
		Source:    source,
		Summary:   fmt.Sprintf("%T", msg),
		Detail:    describeMsg(msg),
		Level:     levelFor(msg),
	}
	if entry.Detail == "" {
		entry.Detail = fmt.Sprintf("%v", msg)
	}
	m.eventViewer.Append(entry)
}

func (m *Model) appendEvent(entry eventviewer.Entry) {
	if m.eventViewer == nil {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Source == "" {
		entry.Source = "ui"
	}
	if entry.Summary == "" {
		entry.Summary = "event"
	}
	m.eventViewer.Append(entry)
}

func levelFor(msg tea.Msg) eventviewer.Level {
	switch v := msg.(type) {
	case events.AssetErrorMsg:
		return eventviewer.LevelError
	case events.CatalogLoadedMsg:
		if v.Err != nil {
			return eventviewer.LevelError
		}
	case events.WatchMsg:
		if v.Removed {
			return eventviewer.LevelWarn
		}
	}
	return eventviewer.LevelInfo
}

func describeMsg(msg tea.Msg) string {
	if d, ok := msg.(interface{ Describe() string }); ok {
		return d.Describe()
	}
	switch v := msg.(type) {
	case tea.KeyMsg:
		return fmt.Sprintf("key=%q", v.String())
	case tea.WindowSizeMsg:
		return fmt.Sprintf("size=%dx%d", v.Width, v.Height)
	case tea.MouseMsg:
		return fmt.Sprintf("mouse=%s", v)
	default:
		return ""
	}
}

func eventSource(msg tea.Msg) (string, bool) {
	switch v := msg.(type) {
	case events.ItemHighlightMsg:
		return string(v.Component), true
	case events.ItemSelectMsg:
		return string(v.Component), true
	case events.FilterChangeMsg:
		return string(v.Component), true
	case events.QuizAnswerMsg:
		return string(v.Component), true
	case events.SplitterMsg:
		return string(v.Component), true
	case events.ModelLoadMsg:
		return string(v.Component), true
	case events.FocusMsg:
		return string(v.Component), true
	case events.BlurMsg:
		return string(v.Component), true
	case events.DebugMsg:
		return string(v.Component), true
	case events.CatalogLoadedMsg:
		return "catalog", true
	case events.WatchMsg:
		return "watch", true
	case events.AssetErrorMsg:
		return "scene", true
	default:
		return "", false
	}
}
