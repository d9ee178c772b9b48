package input

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/termdesk/terminal"
)

// Chord is a normalized key combination. Exactly one of Key or Rune is
// set: named keys (arrows, function keys) use Key, printable input
// uses Rune. Ctrl+letter events are normalized to Rune+ModCtrl so
// config strings and decoder output meet in one form.
type Chord struct {
	Key  terminal.Key
	Mod  terminal.Modifier
	Rune rune
}

// Rune aliases for keys that read poorly as bare characters
var runeAliases = map[string]rune{
	"space": ' ',
	"plus":  '+',
	"minus": '-',
	"comma": ',',
}

// ParseChord parses a config chord string: modifiers joined by '+'
// followed by a key name or single character. Examples: "ctrl+n",
// "alt+f4", "shift+tab", "f10", "q".
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return Chord{}, fmt.Errorf("chord %q: empty key", s)
	}

	var c Chord
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl":
			c.Mod |= terminal.ModCtrl
		case "alt":
			c.Mod |= terminal.ModAlt
		case "shift":
			c.Mod |= terminal.ModShift
		default:
			return Chord{}, fmt.Errorf("chord %q: unknown modifier %q", s, mod)
		}
	}

	key := parts[len(parts)-1]
	if r, ok := runeAliases[key]; ok {
		c.Rune = r
		return c, nil
	}
	if k, ok := terminal.KeyByName(key); ok {
		c.Key = k
		// Shift+Tab decodes as the dedicated backtab key; fold the
		// config spelling into the same chord
		if c.Key == terminal.KeyTab && c.Mod&terminal.ModShift != 0 {
			c.Key = terminal.KeyBacktab
		}
		if c.Key == terminal.KeyBacktab {
			c.Mod &^= terminal.ModShift
		}
		return c, nil
	}
	runes := []rune(key)
	if len(runes) == 1 {
		c.Rune = runes[0]
		// Shift on a printable rune is baked into the character
		c.Mod &^= terminal.ModShift
		return c, nil
	}
	return Chord{}, fmt.Errorf("chord %q: unknown key %q", s, key)
}

// Normalize converts a key event to its canonical chord, reporting
// false for non-key events
func Normalize(ev terminal.Event) (Chord, bool) {
	if ev.Type != terminal.EventKey {
		return Chord{}, false
	}
	switch {
	case ev.Key >= terminal.KeyCtrlA && ev.Key <= terminal.KeyCtrlZ:
		return Chord{
			Rune: 'a' + rune(ev.Key-terminal.KeyCtrlA),
			Mod:  (ev.Modifiers &^ terminal.ModShift) | terminal.ModCtrl,
		}, true
	case ev.Key == terminal.KeyRune:
		return Chord{Rune: ev.Rune, Mod: ev.Modifiers &^ terminal.ModShift}, true
	default:
		c := Chord{Key: ev.Key, Mod: ev.Modifiers}
		if c.Key == terminal.KeyBacktab {
			c.Mod &^= terminal.ModShift
		}
		return c, true
	}
}
