// Package input maps terminal key events to desktop actions through a
// configurable chord binding table. Mouse policy is fixed in the
// desktop run loop; only key bindings are remappable.
package input

// Action is a desktop command triggered by a key chord
type Action uint8

const (
	ActionNone Action = iota

	ActionQuit
	ActionNewWindow
	ActionCloseWindow
	ActionFocusNext
	ActionFocusPrev

	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown

	ActionGrowWidth
	ActionShrinkWidth
	ActionGrowHeight
	ActionShrinkHeight

	ActionToggleMaximize
	ActionMinimize
	ActionShowMonitor
)

// actionNames maps config strings to actions
var actionNames = map[string]Action{
	"quit":            ActionQuit,
	"new_window":      ActionNewWindow,
	"close_window":    ActionCloseWindow,
	"focus_next":      ActionFocusNext,
	"focus_prev":      ActionFocusPrev,
	"move_left":       ActionMoveLeft,
	"move_right":      ActionMoveRight,
	"move_up":         ActionMoveUp,
	"move_down":       ActionMoveDown,
	"grow_width":      ActionGrowWidth,
	"shrink_width":    ActionShrinkWidth,
	"grow_height":     ActionGrowHeight,
	"shrink_height":   ActionShrinkHeight,
	"toggle_maximize": ActionToggleMaximize,
	"minimize":        ActionMinimize,
	"show_monitor":    ActionShowMonitor,
}

// ActionByName resolves a config string to an action
func ActionByName(name string) (Action, bool) {
	a, ok := actionNames[name]
	return a, ok
}

// String returns the config name for an action
func (a Action) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return "none"
}
