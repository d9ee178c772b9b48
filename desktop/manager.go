package desktop

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/parameter"
	"github.com/lixenwraith/termdesk/render"
)

// Manager keeps the window list in back-to-front order: the slice
// index is the z-order, the last entry is the front window. The front
// non-minimized window holds focus. Every mutation marks geometry
// dirty so the compositor rebuilds visibility on the next frame.
type Manager struct {
	windows []*Window
	area    geom.Size // Desktop dimensions for clamping and maximize

	nextSpawn     geom.Point
	geometryDirty bool
}

// NewManager creates a manager for a desktop of the given size
func NewManager(width, height int) *Manager {
	return &Manager{
		area:      geom.Size{W: width, H: height},
		nextSpawn: geom.Point{X: 2, Y: 1},
	}
}

// SetArea updates the desktop size, re-clamping every window
func (m *Manager) SetArea(width, height int) {
	m.area = geom.Size{W: width, H: height}
	for _, w := range m.windows {
		if w.maximized {
			w.Bounds = geom.Rect{W: width, H: height}
		} else {
			w.Bounds = m.clamp(w.Bounds)
		}
	}
	m.geometryDirty = true
}

// Windows returns the back-to-front window list. The slice is owned
// by the manager; callers iterate, never mutate.
func (m *Manager) Windows() []*Window { return m.windows }

// Focused returns the front non-minimized window, nil when none
func (m *Manager) Focused() *Window {
	for i := len(m.windows) - 1; i >= 0; i-- {
		if !m.windows[i].Minimized {
			return m.windows[i]
		}
	}
	return nil
}

// Get returns the window with the given id
func (m *Manager) Get(id uuid.UUID) *Window {
	for _, w := range m.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// Add appends w at the front, assigning a cascade position when the
// bounds carry no origin
func (m *Manager) Add(w *Window) {
	if w.Bounds.X == 0 && w.Bounds.Y == 0 {
		w.Bounds.X = m.nextSpawn.X
		w.Bounds.Y = m.nextSpawn.Y
		m.nextSpawn.X += parameter.CascadeStepX
		m.nextSpawn.Y += parameter.CascadeStepY
		if m.nextSpawn.Y+parameter.MinWindowHeight >= m.area.H ||
			m.nextSpawn.X+parameter.MinWindowWidth >= m.area.W {
			m.nextSpawn = geom.Point{X: 2, Y: 1}
		}
	}
	w.Bounds = m.clamp(w.Bounds)
	m.windows = append(m.windows, w)
	m.geometryDirty = true
}

// Remove detaches the window with the given id, returning it for
// teardown. Order of the remaining windows is preserved.
func (m *Manager) Remove(id uuid.UUID) *Window {
	for i, w := range m.windows {
		if w.ID == id {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			m.geometryDirty = true
			return w
		}
	}
	return nil
}

// Raise moves the window to the front, giving it focus
func (m *Manager) Raise(id uuid.UUID) {
	for i, w := range m.windows {
		if w.ID == id {
			if i == len(m.windows)-1 {
				return
			}
			m.windows = append(append(m.windows[:i], m.windows[i+1:]...), w)
			m.geometryDirty = true
			return
		}
	}
}

// FocusNext raises the lowest non-minimized window, cycling focus
// through the stack front-to-back over repeated calls
func (m *Manager) FocusNext() {
	for _, w := range m.windows {
		if !w.Minimized {
			m.Raise(w.ID)
			return
		}
	}
}

// FocusPrev buries the focused window at the back of the stack,
// handing focus to the window beneath it
func (m *Manager) FocusPrev() {
	f := m.Focused()
	if f == nil || len(m.windows) < 2 {
		return
	}
	for i, w := range m.windows {
		if w == f {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			m.windows = append([]*Window{f}, m.windows...)
			m.geometryDirty = true
			return
		}
	}
}

// MoveBy shifts a window, keeping its title bar reachable
func (m *Manager) MoveBy(id uuid.UUID, dx, dy int) {
	w := m.Get(id)
	if w == nil || w.maximized {
		return
	}
	b := w.Bounds.Translate(dx, dy)
	w.Bounds = m.clamp(b)
	m.geometryDirty = true
}

// ResizeBy adjusts bounds by edge deltas. dx/dy move the origin,
// dw/dh change the extent; a left-edge drag passes dx=+n, dw=-n.
// Size clamps to the chrome minimum with the opposite edge anchored.
func (m *Manager) ResizeBy(id uuid.UUID, dx, dy, dw, dh int) {
	w := m.Get(id)
	if w == nil || w.maximized {
		return
	}
	b := w.Bounds
	b.X += dx
	b.Y += dy
	b.W += dw
	b.H += dh

	// Clamp against the minimum, re-anchoring the dragged edge
	if b.W < parameter.MinWindowWidth {
		if dx != 0 {
			b.X -= parameter.MinWindowWidth - b.W
		}
		b.W = parameter.MinWindowWidth
	}
	if b.H < parameter.MinWindowHeight {
		if dy != 0 {
			b.Y -= parameter.MinWindowHeight - b.H
		}
		b.H = parameter.MinWindowHeight
	}

	w.Bounds = m.clamp(b)
	m.geometryDirty = true
}

// Minimize hides a window from composition and focus
func (m *Manager) Minimize(id uuid.UUID) {
	if w := m.Get(id); w != nil && !w.Minimized {
		w.Minimized = true
		m.geometryDirty = true
	}
}

// Restore unhides a minimized window and raises it
func (m *Manager) Restore(id uuid.UUID) {
	if w := m.Get(id); w != nil && w.Minimized {
		w.Minimized = false
		m.Raise(id)
		m.geometryDirty = true
	}
}

// ToggleMaximize switches between full-desktop bounds and the saved
// restore rectangle
func (m *Manager) ToggleMaximize(id uuid.UUID) {
	w := m.Get(id)
	if w == nil {
		return
	}
	if w.maximized {
		w.maximized = false
		w.Bounds = m.clamp(w.restore)
	} else {
		w.restore = w.Bounds
		w.maximized = true
		w.Bounds = geom.Rect{W: m.area.W, H: m.area.H}
	}
	m.geometryDirty = true
}

// HitTest finds the front-most window containing (x, y) and the
// chrome region hit. Minimized windows are transparent to hits.
func (m *Manager) HitTest(x, y int) (*Window, render.Hit) {
	for i := len(m.windows) - 1; i >= 0; i-- {
		w := m.windows[i]
		if w.Minimized {
			continue
		}
		if hit := render.Classify(x, y, w.Bounds); hit != render.HitNone {
			return w, hit
		}
	}
	return nil, render.HitNone
}

// ConsumeGeometryDirty reports and clears the geometry flag.
// Called once per frame by the pipeline.
func (m *Manager) ConsumeGeometryDirty() bool {
	d := m.geometryDirty
	m.geometryDirty = false
	return d
}

// clamp keeps at least a third of the title bar on the desktop and
// the title row itself within the vertical range
func (m *Manager) clamp(b geom.Rect) geom.Rect {
	minVisible := b.W / 3
	if minVisible < parameter.MinWindowWidth {
		minVisible = parameter.MinWindowWidth
	}
	if b.X+minVisible > m.area.W {
		b.X = m.area.W - minVisible
	}
	if b.Right() < minVisible {
		b.X = minVisible - b.W
	}
	if b.Y < 0 {
		b.Y = 0
	}
	if b.Y >= m.area.H {
		b.Y = m.area.H - 1
	}
	return b
}
