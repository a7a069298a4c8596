package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/herbview/pkg/catalog"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// ItemRef captures the metadata required to identify a catalog item in
// cross-component events.
type ItemRef struct {
	ID     string
	NameJa string
}

// Label returns a human-friendly identifier for the item.
func (r ItemRef) Label() string {
	if r.NameJa != "" {
		return r.NameJa
	}
	return r.ID
}

// RefFromItem converts a catalog item into an event reference.
func RefFromItem(item *catalog.Item) ItemRef {
	if item == nil {
		return ItemRef{}
	}
	return ItemRef{ID: item.ID, NameJa: item.NameJa}
}

// CatalogLoadedMsg carries the result of a catalog load. Err is set when the
// load failed; Catalog is nil in that case.
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
	Reload  bool
}

// Describe renders the load outcome for logs.
func (m CatalogLoadedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`state:"failed" reload:%t err:%q`, m.Reload, m.Err.Error())
	}
	return fmt.Sprintf(`state:"loaded" reload:%t items:%d`, m.Reload, m.Catalog.Len())
}

// ItemHighlightMsg is emitted when the list cursor moves onto an item
// without activating it.
type ItemHighlightMsg struct {
	Component ComponentID
	Item      ItemRef
}

// Describe renders the highlight for logs.
func (m ItemHighlightMsg) Describe() string {
	return fmt.Sprintf(`component:%q id:%q name:%q`, m.Component, m.Item.ID, m.Item.Label())
}

// ItemSelectMsg asks the root model to make an item active. FromUser is
// set for clicks and key activations, which also rewrite the location.
type ItemSelectMsg struct {
	Component ComponentID
	Item      ItemRef
	FromUser  bool
}

// Describe renders the selection for logs.
func (m ItemSelectMsg) Describe() string {
	return fmt.Sprintf(`component:%q id:%q name:%q user:%t`, m.Component, m.Item.ID, m.Item.Label(), m.FromUser)
}

// ItemSelectCmd wraps ItemSelectMsg in a tea.Cmd.
func ItemSelectCmd(component ComponentID, item ItemRef, fromUser bool) tea.Cmd {
	return func() tea.Msg {
		return ItemSelectMsg{Component: component, Item: item, FromUser: fromUser}
	}
}

// FilterChangeMsg announces a new keyword or tag filter.
type FilterChangeMsg struct {
	Component ComponentID
	Keyword   string
	Tag       string
	Matches   int
}

// Describe renders the filter change for logs.
func (m FilterChangeMsg) Describe() string {
	return fmt.Sprintf(`component:%q keyword:%q tag:%q matches:%d`, m.Component, m.Keyword, m.Tag, m.Matches)
}

// FilterChangeCmd wraps FilterChangeMsg in a tea.Cmd.
func FilterChangeCmd(component ComponentID, keyword, tag string, matches int) tea.Cmd {
	return func() tea.Msg {
		return FilterChangeMsg{Component: component, Keyword: keyword, Tag: tag, Matches: matches}
	}
}

// QuizAnswerMsg reports the first answer chosen for an item's quiz.
type QuizAnswerMsg struct {
	Component ComponentID
	Item      ItemRef
	Choice    int
	Correct   bool
}

// Describe renders the answer for logs.
func (m QuizAnswerMsg) Describe() string {
	return fmt.Sprintf(`component:%q id:%q choice:%d correct:%t`, m.Component, m.Item.ID, m.Choice, m.Correct)
}

// QuizAnswerCmd wraps QuizAnswerMsg in a tea.Cmd.
func QuizAnswerCmd(component ComponentID, item ItemRef, choice int, correct bool) tea.Cmd {
	return func() tea.Msg {
		return QuizAnswerMsg{Component: component, Item: item, Choice: choice, Correct: correct}
	}
}

// SplitterMsg announces a new viewport/info split.
type SplitterMsg struct {
	Component ComponentID
	Viewer    int
	Info      int
	Dragging  bool
}

// Describe renders the split for logs.
func (m SplitterMsg) Describe() string {
	return fmt.Sprintf(`component:%q viewer:%d info:%d dragging:%t`, m.Component, m.Viewer, m.Info, m.Dragging)
}

// ModelLoadMsg records that the viewport swapped to a new asset.
type ModelLoadMsg struct {
	Component ComponentID
	Item      ItemRef
	URL       string
}

// Describe renders the load request for logs.
func (m ModelLoadMsg) Describe() string {
	return fmt.Sprintf(`component:%q id:%q url:%q`, m.Component, m.Item.ID, m.URL)
}

// ModelLoadCmd wraps ModelLoadMsg in a tea.Cmd.
func ModelLoadCmd(component ComponentID, item ItemRef, url string) tea.Cmd {
	return func() tea.Msg {
		return ModelLoadMsg{Component: component, Item: item, URL: url}
	}
}

// AssetErrorMsg carries an asynchronous asset failure from the engine.
type AssetErrorMsg struct {
	URL string
	Err error
}

// Describe renders the failure for logs.
func (m AssetErrorMsg) Describe() string {
	return fmt.Sprintf(`url:%q err:%q`, m.URL, m.Err)
}

// WatchMsg announces that the catalog file changed on disk.
type WatchMsg struct {
	Path    string
	Removed bool
}

// Describe renders the watcher event for logs.
func (m WatchMsg) Describe() string {
	return fmt.Sprintf(`path:%q removed:%t`, m.Path, m.Removed)
}

// FocusMsg indicates a component just gained focus.
type FocusMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m FocusMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"focus"`, m.Component)
}

// BlurMsg indicates a component just lost focus.
type BlurMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m BlurMsg) Describe() string {
	return fmt.Sprintf(`component:%q state:"blur"`, m.Component)
}

// FocusCmd wraps a FocusMsg in a tea.Cmd helper.
func FocusCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return FocusMsg{Component: component}
	}
}

// BlurCmd wraps a BlurMsg in a tea.Cmd helper.
func BlurCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return BlurMsg{Component: component}
	}
}

// DebugMsg captures optional diagnostic notes emitted by components.
type DebugMsg struct {
	Component ComponentID
	Context   string
	Detail    string
}

// Describe renders the debug message in a human-readable format.
func (m DebugMsg) Describe() string {
	return fmt.Sprintf(`component:%q context:%q detail:%q`, m.Component, m.Context, m.Detail)
}

// DebugCmd wraps DebugMsg creation in a tea.Cmd helper.
func DebugCmd(component ComponentID, context, detail string) tea.Cmd {
	return func() tea.Msg {
		return DebugMsg{Component: component, Context: context, Detail: detail}
	}
}
