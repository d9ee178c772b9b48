package apps

import (
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/layout"
	"github.com/lixenwraith/termdesk/registry"
	"github.com/lixenwraith/termdesk/terminal"
)

const notesGreeting = "Scratchpad. Type to append, Enter for a new line, Backspace to erase. Arrows and PgUp/PgDn scroll."

// Notes is a scrolling scratchpad: a wrapped text buffer in a scroll
// region, edited through the focused-window key hook. The hook runs on
// the render loop, so it mutates the tree directly.
func Notes(h registry.Host) registry.AppSpec {
	text := layout.NewWrappedText(notesGreeting + "\n\n")
	scroll := layout.NewScroll(text)

	follow := func() {
		// Keep the end in view while typing
		scroll.ScrollTo(scroll.MaxOffset())
	}

	handleKey := func(ev terminal.Event) bool {
		switch ev.Key {
		case terminal.KeyRune:
			if ev.Modifiers&(terminal.ModCtrl|terminal.ModAlt) != 0 {
				return false
			}
			text.SetText(text.Text() + string(ev.Rune))
			follow()
			return true
		case terminal.KeyEnter:
			text.SetText(text.Text() + "\n")
			follow()
			return true
		case terminal.KeyBackspace:
			// The greeting block is not erasable
			if s := text.Text(); len(s) > len(notesGreeting)+2 {
				text.SetText(trimLastRune(s))
				follow()
			} else {
				h.Bell()
			}
			return true
		case terminal.KeyUp:
			scroll.ScrollBy(-1)
			return true
		case terminal.KeyDown:
			scroll.ScrollBy(1)
			return true
		case terminal.KeyPageUp:
			scroll.ScrollBy(-scroll.Bounds().H)
			return true
		case terminal.KeyPageDown:
			scroll.ScrollBy(scroll.Bounds().H)
			return true
		case terminal.KeyHome:
			scroll.ScrollTo(0)
			return true
		case terminal.KeyEnd:
			scroll.ScrollTo(scroll.MaxOffset())
			return true
		}
		return false
	}

	return registry.AppSpec{
		Title:     "Notes",
		Size:      geom.Size{W: 44, H: 14},
		Root:      scroll,
		HandleKey: handleKey,
	}
}

func trimLastRune(s string) string {
	rs := []rune(s)
	return string(rs[:len(rs)-1])
}
