package teaui

import "tableflip.dev/herbview/pkg/tui/components/help"

const helpTitle = "herbview"

var keySections = []help.Section{
	{Title: "Moving around", Bindings: []help.Binding{
		{Keys: "Tab / Shift+Tab", Action: "move focus between list, viewport, detail and quiz"},
		{Keys: "click", Action: "focus the pane under the pointer"},
		{Keys: "F2", Action: "show or hide the event log (e filters by level)"},
		{Keys: "? / Esc", Action: "show or hide this help"},
		{Keys: "q / Ctrl+C", Action: "quit"},
	}},
	{Title: "List", Bindings: []help.Binding{
		{Keys: "/", Action: "search name, latin name and id"},
		{Keys: "t / T", Action: "cycle the tag filter"},
		{Keys: "↑ ↓ Enter", Action: "move and open, or click a card"},
	}},
	{Title: "Viewport", Bindings: []help.Binding{
		{Keys: "drag / h j k l", Action: "orbit the camera"},
		{Keys: "+ - / wheel", Action: "zoom"},
		{Keys: "r", Action: "reset the camera"},
	}},
	{Title: "Splitter", Bindings: []help.Binding{
		{Keys: "drag", Action: "resize viewport and info column"},
		{Keys: "[ ]", Action: "nudge the bar"},
	}},
	{Title: "Quiz", Bindings: []help.Binding{
		{Keys: "1-9", Action: "answer directly"},
		{Keys: "↑ ↓ Enter", Action: "choose an option; only the first answer counts"},
	}},
}
