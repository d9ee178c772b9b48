package layout

import (
	"github.com/lixenwraith/termdesk/geom"
)

// Scroll shows a taller child through a viewport at a vertical offset.
// The child is arranged above the viewport by the offset; the ancestor
// clip chain hides the off-screen rows, so no separate buffer exists.
type Scroll struct {
	node
	child    Control
	offset   int
	contentH int
}

// NewScroll wraps child in a vertical scroll viewport
func NewScroll(child Control) *Scroll {
	s := &Scroll{child: child}
	s.adoptChild(child)
	return s
}

// Children returns the single wrapped control
func (s *Scroll) Children() []Control { return []Control{s.child} }

// Measure reports the child's desired extent; the parent decides the
// viewport size and the overflow scrolls
func (s *Scroll) Measure(c Constraints) geom.Size {
	return s.cachedMeasure(c, func(c Constraints) geom.Size {
		return s.child.Measure(c.LoosenH())
	})
}

// Arrange places the child at full content height, shifted up by the
// clamped offset
func (s *Scroll) Arrange(r geom.Rect) {
	s.bounds = r
	d := s.child.Measure(Loose(geom.Size{W: r.W, H: Unbounded}))
	s.contentH = d.H
	s.clampOffset()
	s.child.Arrange(geom.Rect{X: r.X, Y: r.Y - s.offset, W: r.W, H: s.contentH})
}

// Paint draws nothing; the child paints through the clip
func (s *Scroll) Paint(p *Painter) {}

// ScrollBy moves the viewport by dy rows, clamped to the content
func (s *Scroll) ScrollBy(dy int) {
	old := s.offset
	s.offset += dy
	s.clampOffset()
	if s.offset != old {
		s.Invalidate()
	}
}

// ScrollTo jumps to an absolute offset, clamped to the content
func (s *Scroll) ScrollTo(offset int) {
	s.ScrollBy(offset - s.offset)
}

// Offset returns the current scroll offset in rows
func (s *Scroll) Offset() int { return s.offset }

// MaxOffset returns the largest useful offset for the current layout
func (s *Scroll) MaxOffset() int {
	m := s.contentH - s.bounds.H
	if m < 0 {
		m = 0
	}
	return m
}

func (s *Scroll) clampOffset() {
	if s.offset > s.MaxOffset() {
		s.offset = s.MaxOffset()
	}
	if s.offset < 0 {
		s.offset = 0
	}
}
