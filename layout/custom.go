package layout

import (
	"github.com/lixenwraith/termdesk/geom"
)

// Custom delegates measurement and painting to caller functions.
// It is the escape hatch for content the closed node set does not
// cover, such as ported tcell-style paint code behind compat.
type Custom struct {
	node

	// MeasureFunc returns the desired size; nil takes all offered space
	MeasureFunc func(c Constraints) geom.Size

	// PaintFunc draws into p within bounds; nil paints nothing
	PaintFunc func(p *Painter, bounds geom.Rect)
}

// NewCustom creates a custom node from a paint function
func NewCustom(paint func(p *Painter, bounds geom.Rect)) *Custom {
	return &Custom{PaintFunc: paint}
}

// Children returns nil; custom nodes are leaves
func (c *Custom) Children() []Control { return nil }

// Measure delegates to MeasureFunc, defaulting to the full offer
func (c *Custom) Measure(cons Constraints) geom.Size {
	return c.cachedMeasure(cons, func(cons Constraints) geom.Size {
		if c.MeasureFunc != nil {
			return c.MeasureFunc(cons)
		}
		return cons.Max
	})
}

// Arrange records the assigned rectangle
func (c *Custom) Arrange(r geom.Rect) {
	c.bounds = r
}

// Paint delegates to PaintFunc
func (c *Custom) Paint(p *Painter) {
	if c.PaintFunc != nil {
		c.PaintFunc(p, c.bounds)
	}
}

// Redraw schedules a repaint after external state feeding PaintFunc
// changed
func (c *Custom) Redraw() {
	c.Invalidate()
}
