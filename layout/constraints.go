package layout

import "github.com/lixenwraith/termdesk/geom"

// Unbounded marks a constraint axis with no upper limit
const Unbounded = 1 << 30

// Constraints bound a measurement: the result must fit [Min, Max]
type Constraints struct {
	Min geom.Size
	Max geom.Size
}

// Tight returns constraints forcing exactly s
func Tight(s geom.Size) Constraints {
	return Constraints{Min: s, Max: s}
}

// Loose returns constraints allowing anything up to s
func Loose(s geom.Size) Constraints {
	return Constraints{Max: s}
}

// Constrain clamps s into the constraint bounds
func (c Constraints) Constrain(s geom.Size) geom.Size {
	if s.W < c.Min.W {
		s.W = c.Min.W
	}
	if s.H < c.Min.H {
		s.H = c.Min.H
	}
	if s.W > c.Max.W {
		s.W = c.Max.W
	}
	if s.H > c.Max.H {
		s.H = c.Max.H
	}
	return s
}

// LoosenH drops the vertical bounds for content that may overflow
func (c Constraints) LoosenH() Constraints {
	c.Min.H = 0
	c.Max.H = Unbounded
	return c
}
