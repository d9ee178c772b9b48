package layout

import (
	"github.com/lixenwraith/termdesk/geom"
)

// Axis selects the direction a Stack lays its children along
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

type stackChild struct {
	control Control
	fixed   int // Cells along the axis; 0 means weighted
	weight  int
}

// Stack arranges children along one axis. Fixed children take their
// declared extent; the remaining space is split between weighted
// children in proportion to their weights.
type Stack struct {
	node
	axis     Axis
	spacing  int
	children []stackChild
	controls []Control
}

// NewStack creates an empty stack along axis
func NewStack(axis Axis) *Stack {
	return &Stack{axis: axis}
}

// WithSpacing sets the gap between adjacent children
func (s *Stack) WithSpacing(n int) *Stack {
	s.spacing = n
	return s
}

// AddFixed appends a child occupying exactly size cells along the axis
func (s *Stack) AddFixed(c Control, size int) *Stack {
	s.children = append(s.children, stackChild{control: c, fixed: size})
	s.controls = append(s.controls, c)
	s.adoptChild(c)
	s.Invalidate()
	return s
}

// Add appends a weighted child sharing the leftover space
func (s *Stack) Add(c Control, weight int) *Stack {
	if weight < 1 {
		weight = 1
	}
	s.children = append(s.children, stackChild{control: c, weight: weight})
	s.controls = append(s.controls, c)
	s.adoptChild(c)
	s.Invalidate()
	return s
}

// Children returns the contained controls in arrangement order
func (s *Stack) Children() []Control { return s.controls }

// Measure sums fixed extents and weighted children's desired extents
// along the axis; the cross extent is the maximum child cross extent
func (s *Stack) Measure(c Constraints) geom.Size {
	return s.cachedMeasure(c, func(c Constraints) geom.Size {
		along, cross := 0, 0
		for i, ch := range s.children {
			if i > 0 {
				along += s.spacing
			}
			var d geom.Size
			if ch.fixed > 0 {
				d = ch.control.Measure(s.childConstraints(c, ch.fixed))
				s.setAlong(&d, ch.fixed)
			} else {
				d = ch.control.Measure(s.childConstraints(c, 0))
			}
			along += s.along(d)
			if s.cross(d) > cross {
				cross = s.cross(d)
			}
		}
		if s.axis == Horizontal {
			return geom.Size{W: along, H: cross}
		}
		return geom.Size{W: cross, H: along}
	})
}

// Arrange splits r along the axis: fixed children first, then leftover
// distributed by weight with the remainder going to the last weighted
// child so the full extent is always covered
func (s *Stack) Arrange(r geom.Rect) {
	s.bounds = r

	avail := s.along(geom.Size{W: r.W, H: r.H})
	fixedSum, weightSum := 0, 0
	lastWeighted := -1
	for i, ch := range s.children {
		if i > 0 {
			avail -= s.spacing
		}
		if ch.fixed > 0 {
			fixedSum += ch.fixed
		} else {
			weightSum += ch.weight
			lastWeighted = i
		}
	}

	leftover := avail - fixedSum
	if leftover < 0 {
		leftover = 0
	}

	pos := 0
	given := 0
	for i, ch := range s.children {
		if i > 0 {
			pos += s.spacing
		}
		extent := ch.fixed
		if extent == 0 {
			if i == lastWeighted {
				extent = leftover - given
			} else {
				extent = leftover * ch.weight / weightSum
				given += extent
			}
		}
		if extent < 0 {
			extent = 0
		}
		var cr geom.Rect
		if s.axis == Horizontal {
			cr = geom.Rect{X: r.X + pos, Y: r.Y, W: extent, H: r.H}
		} else {
			cr = geom.Rect{X: r.X, Y: r.Y + pos, W: r.W, H: extent}
		}
		ch.control.Arrange(cr)
		pos += extent
	}
}

// Paint draws nothing; stacks are transparent containers
func (s *Stack) Paint(p *Painter) {}

func (s *Stack) along(d geom.Size) int {
	if s.axis == Horizontal {
		return d.W
	}
	return d.H
}

func (s *Stack) cross(d geom.Size) int {
	if s.axis == Horizontal {
		return d.H
	}
	return d.W
}

func (s *Stack) setAlong(d *geom.Size, v int) {
	if s.axis == Horizontal {
		d.W = v
	} else {
		d.H = v
	}
}

// childConstraints loosens the axis bound (or pins it for fixed
// children) while passing the cross bound through
func (s *Stack) childConstraints(c Constraints, fixed int) Constraints {
	out := c
	out.Min = geom.Size{}
	if s.axis == Horizontal {
		if fixed > 0 {
			out.Min.W, out.Max.W = fixed, fixed
		} else {
			out.Max.W = Unbounded
		}
	} else {
		if fixed > 0 {
			out.Min.H, out.Max.H = fixed, fixed
		} else {
			out.Max.H = Unbounded
		}
	}
	return out
}
