package input

import (
	"fmt"

	"github.com/lixenwraith/termdesk/terminal"
)

// Bindings is a compiled chord-to-action lookup table
type Bindings struct {
	chords map[Chord]Action
}

// DefaultBindings returns the built-in binding set
func DefaultBindings() *Bindings {
	b := &Bindings{chords: make(map[Chord]Action)}
	defaults := map[string]string{
		"ctrl+q":     "quit",
		"ctrl+n":     "new_window",
		"ctrl+w":     "close_window",
		"tab":        "focus_next",
		"shift+tab":  "focus_prev",
		"alt+left":   "move_left",
		"alt+right":  "move_right",
		"alt+up":     "move_up",
		"alt+down":   "move_down",
		"ctrl+right": "grow_width",
		"ctrl+left":  "shrink_width",
		"ctrl+down":  "grow_height",
		"ctrl+up":    "shrink_height",
		"f10":        "toggle_maximize",
		"f9":         "minimize",
		"f12":        "show_monitor",
	}
	if err := b.Apply(defaults); err != nil {
		// Defaults are compiled in; a parse failure is a build bug
		panic(err)
	}
	return b
}

// Apply merges config bindings over the current table. An empty action
// name unbinds the chord.
func (b *Bindings) Apply(m map[string]string) error {
	for chordStr, actionStr := range m {
		chord, err := ParseChord(chordStr)
		if err != nil {
			return err
		}
		if actionStr == "" || actionStr == "none" {
			delete(b.chords, chord)
			continue
		}
		action, ok := ActionByName(actionStr)
		if !ok {
			return fmt.Errorf("binding %q: unknown action %q", chordStr, actionStr)
		}
		b.chords[chord] = action
	}
	return nil
}

// Lookup resolves a key event to its bound action, ActionNone when
// unbound
func (b *Bindings) Lookup(ev terminal.Event) Action {
	chord, ok := Normalize(ev)
	if !ok {
		return ActionNone
	}
	return b.chords[chord]
}
