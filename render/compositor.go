package render

import (
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/terminal"
)

// Layer pairs a window surface with its desktop-space bounds.
// Slices passed to the compositor are ordered bottom to top.
type Layer struct {
	Surface *Surface
	Bounds  geom.Rect
}

// Compositor assembles window surfaces into the desktop back buffer.
// Each layer's visible region is its bounds minus the bounds of every
// layer above it, so ownership of any back-buffer cell is unique. While
// geometry, order, and visibility hold still, only surfaces with
// consumed changes re-blit, restricted to their visible regions.
type Compositor struct {
	back   []terminal.Cell
	width  int
	height int
	bg     terminal.Cell

	regions []geom.Region // Visible region per layer, aligned by index
	full    bool
	spans   []Span // Scratch for changed-span extraction
}

// NewCompositor creates a compositor for the given desktop size
func NewCompositor(width, height int) *Compositor {
	c := &Compositor{bg: terminal.Cell{}}
	c.Resize(width, height)
	return c
}

// Resize adjusts the back buffer, forcing a full recomposite
func (c *Compositor) Resize(width, height int) {
	size := width * height
	if cap(c.back) < size {
		c.back = make([]terminal.Cell, size)
	} else {
		c.back = c.back[:size]
	}
	c.width = width
	c.height = height
	c.full = true
}

// SetBackground sets the fill cell for desktop cells no window covers
func (c *Compositor) SetBackground(bg terminal.Cell) {
	if bg == c.bg {
		return
	}
	c.bg = bg
	c.full = true
}

// Size returns back buffer dimensions
func (c *Compositor) Size() (int, int) {
	return c.width, c.height
}

// Back returns the desktop back buffer for flushing.
// The slice is valid until the next Resize.
func (c *Compositor) Back() []terminal.Cell {
	return c.back
}

// Invalidate forces the next composite to rebuild visibility and repaint.
// Callers invoke it on any window geometry, order, or visibility change.
func (c *Compositor) Invalidate() {
	c.full = true
}

// VisibleRegion returns the computed visible region of layer i from the
// last full composite. The result aliases compositor state.
func (c *Compositor) VisibleRegion(i int) geom.Region {
	if i < 0 || i >= len(c.regions) {
		return nil
	}
	return c.regions[i]
}

// Composite updates the back buffer from the layers and consumes their
// surface change tracking.
func (c *Compositor) Composite(layers []Layer) {
	if c.full || len(layers) != len(c.regions) {
		c.recomposite(layers)
		c.full = false
		return
	}
	for i := range layers {
		l := &layers[i]
		if !l.Surface.Dirty() {
			continue
		}
		c.blitChanged(l, c.regions[i])
		l.Surface.ResetChanged()
	}
}

// recomposite rebuilds visible regions and repaints the whole back buffer
func (c *Compositor) recomposite(layers []Layer) {
	screen := geom.Rect{W: c.width, H: c.height}

	if cap(c.regions) < len(layers) {
		c.regions = make([]geom.Region, len(layers))
	} else {
		c.regions = c.regions[:len(layers)]
	}
	for i := range layers {
		vis := geom.RegionOf(layers[i].Bounds.Intersect(screen))
		for j := i + 1; j < len(layers); j++ {
			if vis.Empty() {
				break
			}
			vis = vis.Subtract(layers[j].Bounds)
		}
		c.regions[i] = vis
	}

	// Background fill using exponential copy
	if len(c.back) > 0 {
		c.back[0] = c.bg
		for filled := 1; filled < len(c.back); filled *= 2 {
			copy(c.back[filled:], c.back[:filled])
		}
	}

	for i := range layers {
		l := &layers[i]
		for _, r := range c.regions[i] {
			c.blitRect(l, r, c.regions[i])
		}
		l.Surface.ResetChanged()
	}
}

// blitRect copies one visible fragment of a layer into the back buffer
func (c *Compositor) blitRect(l *Layer, r geom.Rect, vis geom.Region) {
	bx, by := l.Bounds.X, l.Bounds.Y
	for y := r.Y; y < r.Bottom(); y++ {
		srcRow := l.Surface.Row(y - by)
		dst := c.back[y*c.width+r.X : y*c.width+r.Right()]
		copy(dst, srcRow[r.X-bx:r.Right()-bx])
		c.fixRightSeam(dst, vis, r.Right(), y)
	}
}

// blitChanged copies only the layer's changed spans, clipped to its
// visible region.
func (c *Compositor) blitChanged(l *Layer, vis geom.Region) {
	_, h := l.Surface.Size()
	bx, by := l.Bounds.X, l.Bounds.Y

	for y := 0; y < h; y++ {
		c.spans = l.Surface.ChangedSpans(y, c.spans[:0])
		if len(c.spans) == 0 {
			continue
		}
		srcRow := l.Surface.Row(y)
		sy := by + y

		for _, sp := range c.spans {
			for _, vr := range vis {
				if sy < vr.Y || sy >= vr.Bottom() {
					continue
				}
				x0 := bx + sp.X0
				x1 := bx + sp.X1
				if x0 < vr.X {
					x0 = vr.X
				}
				if x1 > vr.Right() {
					x1 = vr.Right()
				}
				if x0 >= x1 {
					continue
				}
				// Pull the lead back in when the clip starts on a
				// wide rune's continuation cell
				if x0 > vr.X && wideLead(srcRow[x0-1-bx]) {
					x0--
				}
				dst := c.back[sy*c.width+x0 : sy*c.width+x1]
				copy(dst, srcRow[x0-bx:x1-bx])
				c.fixRightSeam(dst, vis, x1, sy)
			}
		}
	}
}

// fixRightSeam blanks a wide lead whose continuation cell fell outside
// the visible region, so the pair is never half-drawn over a neighbor.
func (c *Compositor) fixRightSeam(dst []terminal.Cell, vis geom.Region, endX, y int) {
	n := len(dst)
	if n == 0 || !wideLead(dst[n-1]) {
		return
	}
	if vis.Contains(endX, y) {
		return
	}
	dst[n-1].Rune = ' '
}

func wideLead(c terminal.Cell) bool {
	return c.Rune != 0 && terminal.RuneCellWidth(c.Rune) == 2
}
