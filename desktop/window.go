// Package desktop owns the window list and the frame pipeline: it
// applies queued operations between frames, lays out and paints dirty
// windows, composites their visible regions into the back buffer, and
// flushes the difference to the terminal.
package desktop

import (
	"context"

	"github.com/google/uuid"

	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/layout"
	"github.com/lixenwraith/termdesk/render"
	"github.com/lixenwraith/termdesk/terminal"
)

// Window is one desktop window: a chrome ring around a content tree,
// painting into its own surface. All fields are owned by the render
// loop; other goroutines reach windows only through queued ops.
type Window struct {
	ID     uuid.UUID
	Title  string
	Bounds geom.Rect // Desktop coordinates, chrome included

	Minimized bool

	surface *render.Surface
	tree    *layout.Tree
	chrome  render.Chrome

	maximized bool
	restore   geom.Rect // Bounds before maximize

	// Optional app hooks
	handleKey func(terminal.Event) bool
	cancel    context.CancelFunc // Ends the app goroutine on close

	repaint bool // Forced repaint requested via OpInvalidate
}

// ContentRect returns the surface-local rectangle inside the chrome
// ring. Half-open like every rectangle: a 10x5 window has an 8x3
// content area at (1,1).
func (w *Window) ContentRect() geom.Rect {
	return geom.Rect{X: 1, Y: 1, W: w.Bounds.W - 2, H: w.Bounds.H - 2}
}

// Tree returns the window's layout tree
func (w *Window) Tree() *layout.Tree { return w.tree }

// Surface returns the window's cell buffer
func (w *Window) Surface() *render.Surface { return w.surface }

// findScroll returns the first scroll node in the tree, depth-first.
// The mouse wheel and page keys target it.
func findScroll(c layout.Control) *layout.Scroll {
	if s, ok := c.(*layout.Scroll); ok {
		return s
	}
	for _, ch := range c.Children() {
		if s := findScroll(ch); s != nil {
			return s
		}
	}
	return nil
}
