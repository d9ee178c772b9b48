package apps

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termdesk/compat"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/layout"
	"github.com/lixenwraith/termdesk/registry"
	"github.com/lixenwraith/termdesk/terminal"
)

// Paint draws a hue gradient through the tcell compatibility facade,
// the reference consumer for porting tcell paint code onto a window
// surface. Space shifts the gradient, arrows move the brush cursor.
func Paint(h registry.Host) registry.AppSpec {
	var (
		phase   float64
		cursorX int
		cursorY int
		canvas  *layout.Custom
	)

	canvas = layout.NewCustom(func(p *layout.Painter, bounds geom.Rect) {
		screen := compat.NewSurfaceScreen(p.Surface(), p.Clip(), p.Style.Fg, p.Style.Bg)
		w, hgt := screen.Size()
		if w <= 0 || hgt <= 0 {
			return
		}

		for y := 0; y < hgt; y++ {
			for x := 0; x < w; x++ {
				hue := phase + 360.0*float64(x)/float64(w)
				for hue >= 360 {
					hue -= 360
				}
				sat := 0.35 + 0.5*float64(y)/float64(hgt)
				c := colorful.Hsv(hue, sat, 0.65)
				r, g, b := c.RGB255()
				style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
				screen.SetContent(x, y, ' ', nil, style)
			}
		}

		if cursorX >= w {
			cursorX = w - 1
		}
		if cursorY >= hgt {
			cursorY = hgt - 1
		}
		brush := tcell.StyleDefault.
			Foreground(tcell.ColorWhite).
			Background(tcell.ColorBlack).
			Bold(true)
		screen.SetContent(cursorX, cursorY, '+', nil, brush)
	})

	handleKey := func(ev terminal.Event) bool {
		switch {
		case ev.Key == terminal.KeyRune && ev.Rune == ' ':
			phase += 20
		case ev.Key == terminal.KeyLeft && cursorX > 0:
			cursorX--
		case ev.Key == terminal.KeyRight:
			cursorX++
		case ev.Key == terminal.KeyUp && cursorY > 0:
			cursorY--
		case ev.Key == terminal.KeyDown:
			cursorY++
		default:
			return false
		}
		canvas.Redraw()
		return true
	}

	return registry.AppSpec{
		Title:     "Paint",
		Size:      geom.Size{W: 40, H: 14},
		Root:      canvas,
		HandleKey: handleKey,
	}
}
