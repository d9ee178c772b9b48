package desktop

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/termdesk/input"
	"github.com/lixenwraith/termdesk/parameter"
	"github.com/lixenwraith/termdesk/render"
	"github.com/lixenwraith/termdesk/terminal"
)

type dragMode uint8

const (
	dragNone dragMode = iota
	dragMove
	dragResize
)

// drag tracks an in-progress title or border drag. Window identity is
// held by id so a window closed mid-drag just ends the drag.
type drag struct {
	mode         dragMode
	win          uuid.UUID
	hit          render.Hit
	lastX, lastY int
}

// Run drives the desktop: frame ticks and input events interleave on
// this one goroutine, so event handlers may touch window and layout
// state directly. Returns when ctx ends, the event channel closes, or
// a quit op lands.
func (d *Desktop) Run(ctx context.Context, events <-chan terminal.Event) error {
	interval := time.Second / time.Duration(d.fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			d.handleEvent(ev)
			if d.quit {
				return nil
			}

		case <-ticker.C:
			if _, err := d.Present(); err != nil {
				return err
			}
			if d.quit {
				return nil
			}
			// Config reload may have changed the frame rate
			if next := time.Second / time.Duration(d.fps); next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

func (d *Desktop) handleEvent(ev terminal.Event) {
	switch ev.Type {
	case terminal.EventKey:
		d.handleKey(ev)
	case terminal.EventMouse:
		d.handleMouse(ev)
	case terminal.EventResize:
		d.Resize(ev.Width, ev.Height)
	case terminal.EventClosed, terminal.EventError:
		d.quit = true
	}
}

// handleKey offers the event to the focused window's app first; an
// unconsumed event falls through to the desktop binding table
func (d *Desktop) handleKey(ev terminal.Event) {
	if f := d.mgr.Focused(); f != nil && f.handleKey != nil {
		if f.handleKey(ev) {
			return
		}
	}
	d.applyAction(d.bindings.Lookup(ev))
}

func (d *Desktop) applyAction(a input.Action) {
	focused := func() (uuid.UUID, bool) {
		if f := d.mgr.Focused(); f != nil {
			return f.ID, true
		}
		return uuid.Nil, false
	}

	switch a {
	case input.ActionQuit:
		d.quit = true
	case input.ActionNewWindow:
		d.Spawn(d.defaultApp)
	case input.ActionCloseWindow:
		if id, ok := focused(); ok {
			d.Close(id)
		}
	case input.ActionFocusNext:
		d.mgr.FocusNext()
	case input.ActionFocusPrev:
		d.mgr.FocusPrev()
	case input.ActionMoveLeft:
		if id, ok := focused(); ok {
			d.mgr.MoveBy(id, -parameter.MoveStepX, 0)
		}
	case input.ActionMoveRight:
		if id, ok := focused(); ok {
			d.mgr.MoveBy(id, parameter.MoveStepX, 0)
		}
	case input.ActionMoveUp:
		if id, ok := focused(); ok {
			d.mgr.MoveBy(id, 0, -parameter.MoveStepY)
		}
	case input.ActionMoveDown:
		if id, ok := focused(); ok {
			d.mgr.MoveBy(id, 0, parameter.MoveStepY)
		}
	case input.ActionGrowWidth:
		if id, ok := focused(); ok {
			d.mgr.ResizeBy(id, 0, 0, parameter.ResizeStepX, 0)
		}
	case input.ActionShrinkWidth:
		if id, ok := focused(); ok {
			d.mgr.ResizeBy(id, 0, 0, -parameter.ResizeStepX, 0)
		}
	case input.ActionGrowHeight:
		if id, ok := focused(); ok {
			d.mgr.ResizeBy(id, 0, 0, 0, parameter.ResizeStepY)
		}
	case input.ActionShrinkHeight:
		if id, ok := focused(); ok {
			d.mgr.ResizeBy(id, 0, 0, 0, -parameter.ResizeStepY)
		}
	case input.ActionToggleMaximize:
		if id, ok := focused(); ok {
			d.mgr.ToggleMaximize(id)
		}
	case input.ActionMinimize:
		if id, ok := focused(); ok {
			d.mgr.Minimize(id)
		}
	case input.ActionShowMonitor:
		d.Spawn("monitor")
	}
}

// handleMouse implements the fixed desktop mouse policy: click raises,
// title drags move, border drags resize, the close glyph closes, the
// wheel scrolls the first scroll region of the window under it
func (d *Desktop) handleMouse(ev terminal.Event) {
	switch ev.MouseBtn {
	case terminal.MouseBtnWheelUp:
		d.wheelScroll(ev.MouseX, ev.MouseY, -parameter.WheelScrollLines)
		return
	case terminal.MouseBtnWheelDown:
		d.wheelScroll(ev.MouseX, ev.MouseY, parameter.WheelScrollLines)
		return
	}

	switch ev.MouseAction {
	case terminal.MouseActionPress:
		if ev.MouseBtn != terminal.MouseBtnLeft {
			return
		}
		w, hit := d.mgr.HitTest(ev.MouseX, ev.MouseY)
		if w == nil {
			return
		}
		d.mgr.Raise(w.ID)
		switch {
		case hit == render.HitClose:
			d.Close(w.ID)
		case hit == render.HitTitle:
			d.drag = drag{mode: dragMove, win: w.ID, lastX: ev.MouseX, lastY: ev.MouseY}
		case hit.IsResize():
			d.drag = drag{mode: dragResize, win: w.ID, hit: hit, lastX: ev.MouseX, lastY: ev.MouseY}
		}

	case terminal.MouseActionDrag:
		if d.drag.mode == dragNone {
			return
		}
		dx := ev.MouseX - d.drag.lastX
		dy := ev.MouseY - d.drag.lastY
		if dx == 0 && dy == 0 {
			return
		}
		d.drag.lastX = ev.MouseX
		d.drag.lastY = ev.MouseY

		switch d.drag.mode {
		case dragMove:
			d.mgr.MoveBy(d.drag.win, dx, dy)
		case dragResize:
			left, top, right, bottom := d.drag.hit.Edges()
			var ox, oy, dw, dh int
			if left {
				ox, dw = dx, -dx
			}
			if right {
				dw = dx
			}
			if top {
				oy, dh = dy, -dy
			}
			if bottom {
				dh = dy
			}
			d.mgr.ResizeBy(d.drag.win, ox, oy, dw, dh)
		}

	case terminal.MouseActionRelease:
		d.drag = drag{}
	}
}

// wheelScroll routes a wheel notch to the scroll region of the window
// under the pointer, without changing focus
func (d *Desktop) wheelScroll(x, y, lines int) {
	w, hit := d.mgr.HitTest(x, y)
	if w == nil || hit != render.HitContent {
		return
	}
	if s := findScroll(w.tree.Root()); s != nil {
		s.ScrollBy(lines)
	}
}
