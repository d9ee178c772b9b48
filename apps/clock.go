// Package apps ships the built-in desktop applications. Each app is a
// registry factory returning a window spec; Register installs them all
// under their spawn names.
package apps

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/layout"
	"github.com/lixenwraith/termdesk/registry"
)

// Register installs every built-in app factory
func Register() {
	registry.RegisterApp("clock", Clock)
	registry.RegisterApp("notes", Notes)
	registry.RegisterApp("monitor", Monitor)
	registry.RegisterApp("paint", Paint)
}

// Clock shows wall-clock time, repainting once per second. The paint
// function reads the clock directly; the app goroutine only schedules
// repaints, so all drawing stays on the render loop.
func Clock(h registry.Host) registry.AppSpec {
	face := layout.NewCustom(func(p *layout.Painter, bounds geom.Rect) {
		p.Fill(bounds, p.Style.Bg)
		now := time.Now()

		clock := now.Format("15:04:05")
		date := now.Format("Mon Jan 2 2006")

		cy := bounds.Y + bounds.H/2 - 1
		p.Text(centered(bounds, len(clock)), cy, clock, p.Style.Accent, p.Style.Bg)
		p.Text(centered(bounds, len(date)), cy+1, date, p.Style.Muted, p.Style.Bg)
	})

	return registry.AppSpec{
		Title: "Clock",
		Size:  geom.Size{W: 26, H: 7},
		Root:  face,
		Run: func(ctx context.Context, win uuid.UUID) {
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					h.Post(event.Op{Kind: event.OpInvalidate, Window: win})
				}
			}
		},
	}
}

// centered returns the x origin that centers width columns in bounds
func centered(bounds geom.Rect, width int) int {
	x := bounds.X + (bounds.W-width)/2
	if x < bounds.X {
		x = bounds.X
	}
	return x
}
