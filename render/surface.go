package render

import (
	"github.com/lixenwraith/termdesk/terminal"
)

// Span is a half-open run [X0, X1) of changed columns within one row
type Span struct {
	X0, X1 int
}

// Surface is a window-local cell buffer with per-cell change tracking.
// Uses []terminal.Cell directly to allow zero-copy export to the compositor,
// worth the coupling.
type Surface struct {
	cells   []terminal.Cell // Optimization: Persistent buffer for blit reuse
	changed []bool
	width   int
	height  int

	bg         terminal.RGB
	needsClear bool
	dirty      bool
}

// NewSurface creates a surface with the specified dimensions and background.
// The first ClearIfNeeded fills it.
func NewSurface(width, height int, bg terminal.RGB) *Surface {
	size := width * height
	return &Surface{
		cells:      make([]terminal.Cell, size),
		changed:    make([]bool, size),
		width:      width,
		height:     height,
		bg:         bg,
		needsClear: true,
	}
}

// Size returns current dimensions
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Background returns the fill color
func (s *Surface) Background() terminal.RGB {
	return s.bg
}

// Resize adjusts dimensions, reallocating only if capacity is insufficient.
// Content is not preserved; the next ClearIfNeeded repaints.
func (s *Surface) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	size := width * height
	if cap(s.cells) < size {
		s.cells = make([]terminal.Cell, size)
		s.changed = make([]bool, size)
	} else {
		s.cells = s.cells[:size]
		s.changed = s.changed[:size]
	}
	s.width = width
	s.height = height
	s.needsClear = true
}

// SetBackground schedules a background refill when the color differs
func (s *Surface) SetBackground(bg terminal.RGB) {
	if bg == s.bg {
		return
	}
	s.bg = bg
	s.needsClear = true
}

// ClearIfNeeded fills the surface with blank background cells when a
// resize or background change is pending. Every cell is marked
// changed. Returns whether a clear ran, so callers know a full repaint
// must follow.
func (s *Surface) ClearIfNeeded() bool {
	if !s.needsClear {
		return false
	}
	s.needsClear = false
	s.dirty = true
	if len(s.cells) == 0 {
		return true
	}

	s.cells[0] = terminal.Cell{Rune: 0, Bg: s.bg}
	s.changed[0] = true
	// Exponential copy
	for filled := 1; filled < len(s.cells); filled *= 2 {
		copy(s.cells[filled:], s.cells[:filled])
	}
	for filled := 1; filled < len(s.changed); filled *= 2 {
		copy(s.changed[filled:], s.changed[:filled])
	}
	return true
}

// inBounds returns true if within surface bounds
func (s *Surface) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// SetCell writes one cell with bounds clipping. Writing a value identical
// to the current content records no change.
func (s *Surface) SetCell(x, y int, c terminal.Cell) {
	if !s.inBounds(x, y) {
		return
	}
	idx := y*s.width + x
	if terminal.CellEqual(s.cells[idx], c) {
		return
	}
	s.cells[idx] = c
	s.changed[idx] = true
	s.dirty = true
}

// Set writes rune and colors with no attributes.
// Unwrapped for performance: this is the hot path for text and fills.
func (s *Surface) Set(x, y int, r rune, fg, bg terminal.RGB) {
	if !s.inBounds(x, y) {
		return
	}
	idx := y*s.width + x
	dst := &s.cells[idx]
	if dst.Rune == r && dst.Bg == bg && dst.Attrs == 0 && (r == 0 || dst.Fg == fg) {
		return
	}
	dst.Rune = r
	dst.Fg = fg
	dst.Bg = bg
	dst.Attrs = terminal.AttrNone
	s.changed[idx] = true
	s.dirty = true
}

// Cell returns the cell at (x, y), reporting false out of bounds
func (s *Surface) Cell(x, y int) (terminal.Cell, bool) {
	if !s.inBounds(x, y) {
		return terminal.Cell{}, false
	}
	return s.cells[y*s.width+x], true
}

// Row returns the backing cells of one row for zero-copy blitting.
// The slice is valid until the next Resize.
func (s *Surface) Row(y int) []terminal.Cell {
	start := y * s.width
	return s.cells[start : start+s.width]
}

// Dirty reports whether any cell changed since the last ResetChanged
func (s *Surface) Dirty() bool {
	return s.dirty || s.needsClear
}

// ChangedSpans appends the maximal contiguous changed runs of row y to out
func (s *Surface) ChangedSpans(y int, out []Span) []Span {
	rowStart := y * s.width
	row := s.changed[rowStart : rowStart+s.width]
	x := 0
	for x < s.width {
		if !row[x] {
			x++
			continue
		}
		x0 := x
		for x < s.width && row[x] {
			x++
		}
		out = append(out, Span{x0, x})
	}
	return out
}

// ResetChanged clears all change tracking, ending the frame.
// A frame that consumes spans and writes nothing new sees no spans.
func (s *Surface) ResetChanged() {
	if !s.dirty {
		return
	}
	s.dirty = false
	if len(s.changed) == 0 {
		return
	}
	s.changed[0] = false
	for filled := 1; filled < len(s.changed); filled *= 2 {
		copy(s.changed[filled:], s.changed[:filled])
	}
}
