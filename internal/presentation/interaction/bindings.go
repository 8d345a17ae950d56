package interaction

// Action is what the dashboard does in response to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionHelp
	ActionRefresh
	ActionClearCache
	ActionPause
	ActionCycleLayout
	ActionCycleSort
	ActionSwitchFocus
	ActionCursorUp
	ActionCursorDown
	ActionActivate // marker click or legend toggle, depending on focus
	ActionSelectAllCategories
	ActionResetCategories
	ActionRangeBack
	ActionRangeForward
	ActionRangeWiden
	ActionRangeNarrow
	ActionResetRange
	ActionClose // ESC: close help, otherwise quit
)

var charBindings = map[rune]Action{
	'q': ActionQuit,
	'Q': ActionQuit,
	3:   ActionQuit, // Ctrl+C
	'h': ActionHelp,
	'H': ActionHelp,
	'?': ActionHelp,
	'r': ActionRefresh,
	'R': ActionRefresh,
	'x': ActionClearCache,
	'X': ActionClearCache,
	'p': ActionPause,
	'P': ActionPause,
	't': ActionCycleLayout,
	'T': ActionCycleLayout,
	's': ActionCycleSort,
	'S': ActionCycleSort,
	'k': ActionCursorUp,
	'j': ActionCursorDown,
	' ': ActionActivate,
	'a': ActionSelectAllCategories,
	'A': ActionSelectAllCategories,
	'c': ActionResetCategories,
	'C': ActionResetCategories,
	'[': ActionRangeBack,
	']': ActionRangeForward,
	'+': ActionRangeWiden,
	'-': ActionRangeNarrow,
	'0': ActionResetRange,
}

// ActionFor maps a key event to a dashboard action.
func ActionFor(ev KeyEvent) Action {
	switch ev.Type {
	case KeyEscape:
		return ActionClose
	case KeyEnter:
		return ActionActivate
	case KeyTab:
		return ActionSwitchFocus
	case KeyUp:
		return ActionCursorUp
	case KeyDown:
		return ActionCursorDown
	case KeyLeft:
		return ActionRangeBack
	case KeyRight:
		return ActionRangeForward
	case KeyChar:
		return charBindings[ev.Key]
	}
	return ActionNone
}

// Binding describes one key for the help screen.
type Binding struct {
	Keys        string
	Description string
}

// HelpBindings lists the key bindings in help screen order.
var HelpBindings = []Binding{
	{"q/Ctrl+C", "Quit the program"},
	{"ESC", "Close help (or quit if nothing is open)"},
	{"h/?", "Show this help"},
	{"Tab", "Switch focus between markers and categories"},
	{"↑/↓ j/k", "Move the cursor"},
	{"Enter/Space", "Click the marker, or toggle the category, under the cursor"},
	{"a", "Select every category"},
	{"c", "Remove the category filter"},
	{"←/→ [ ]", "Shift the time range by its own length"},
	{"+/-", "Widen or narrow the time range by one day"},
	{"0", "Remove the time range"},
	{"s", "Cycle marker sort order"},
	{"t", "Change layout style (Full → Minimal)"},
	{"r", "Reload the data file"},
	{"x", "Clear the decode cache and reload"},
	{"p", "Pause/unpause reloads on file change"},
}
