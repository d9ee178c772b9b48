// Package theme resolves semantic desktop colors to concrete RGB values
// before rendering begins. The paint pipeline only ever sees resolved
// colors; no theme lookup happens inside a frame.
package theme

import (
	"github.com/lixenwraith/termdesk/layout"
	"github.com/lixenwraith/termdesk/render"
	"github.com/lixenwraith/termdesk/terminal"
)

// Theme holds every color the desktop draws with
type Theme struct {
	Name string

	DesktopBg  terminal.RGB // Desktop background fill
	DesktopDot terminal.RGB // Background pattern dots

	WindowBg terminal.RGB
	WindowFg terminal.RGB
	Accent   terminal.RGB
	Muted    terminal.RGB

	BorderFocused   terminal.RGB
	BorderUnfocused terminal.RGB

	TitleFgFocused   terminal.RGB
	TitleBgFocused   terminal.RGB
	TitleFgUnfocused terminal.RGB
	TitleBgUnfocused terminal.RGB

	CloseGlyph terminal.RGB
}

// Default returns the built-in theme (Tokyo Night derived)
func Default() Theme {
	return Theme{
		Name:       "default",
		DesktopBg:  terminal.RGB{R: 16, G: 16, B: 24},
		DesktopDot: terminal.RGB{R: 40, G: 42, B: 58},

		WindowBg: terminal.RGB{R: 26, G: 27, B: 38},
		WindowFg: terminal.RGB{R: 192, G: 202, B: 245},
		Accent:   terminal.RGB{R: 122, G: 162, B: 247},
		Muted:    terminal.RGB{R: 86, G: 95, B: 137},

		BorderFocused:   terminal.RGB{R: 122, G: 162, B: 247},
		BorderUnfocused: terminal.RGB{R: 65, G: 72, B: 104},

		TitleFgFocused:   terminal.RGB{R: 22, G: 22, B: 30},
		TitleBgFocused:   terminal.RGB{R: 122, G: 162, B: 247},
		TitleFgUnfocused: terminal.RGB{R: 154, G: 165, B: 206},
		TitleBgUnfocused: terminal.RGB{R: 41, G: 46, B: 66},

		CloseGlyph: terminal.RGB{R: 247, G: 118, B: 142},
	}
}

// ChromeFocused returns the window chrome style for the active window
func (t Theme) ChromeFocused() render.ChromeStyle {
	return render.ChromeStyle{
		Line:    render.LineSingle,
		Border:  t.BorderFocused,
		Title:   t.TitleFgFocused,
		TitleBg: t.TitleBgFocused,
		Close:   t.CloseGlyph,
	}
}

// ChromeBlurred returns the window chrome style for inactive windows
func (t Theme) ChromeBlurred() render.ChromeStyle {
	return render.ChromeStyle{
		Line:    render.LineSingle,
		Border:  t.BorderUnfocused,
		Title:   t.TitleFgUnfocused,
		TitleBg: t.TitleBgUnfocused,
		Close:   t.Muted,
	}
}

// Style returns the resolved style context handed to content paint
func (t Theme) Style() layout.StyleContext {
	return layout.StyleContext{
		Fg:     t.WindowFg,
		Bg:     t.WindowBg,
		Accent: t.Accent,
		Muted:  t.Muted,
	}
}
