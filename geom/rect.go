package geom

// Point is a column/row coordinate on the cell grid.
type Point struct {
	X, Y int
}

// Size is a width/height pair in cells.
type Size struct {
	W, H int
}

// Rect is a half-open rectangle: it covers columns [X, X+W) and rows
// [Y, Y+H). Width or height <= 0 means the rectangle is empty.
type Rect struct {
	X, Y, W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Right returns the exclusive right edge, X+W.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive bottom edge, Y+H.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
// Cells on the right and bottom edges are outside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Overlaps reports whether any cell lies in both rectangles.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Intersect returns the overlapping rectangle, or a zero Rect when the
// rectangles are disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x0 := r.X
	if o.X > x0 {
		x0 = o.X
	}
	y0 := r.Y
	if o.Y > y0 {
		y0 = o.Y
	}
	x1 := r.Right()
	if o.Right() < x1 {
		x1 = o.Right()
	}
	y1 := r.Bottom()
	if o.Bottom() < y1 {
		y1 = o.Bottom()
	}
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest rectangle covering both.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0 := r.X
	if o.X < x0 {
		x0 = o.X
	}
	y0 := r.Y
	if o.Y < y0 {
		y0 = o.Y
	}
	x1 := r.Right()
	if o.Right() > x1 {
		x1 = o.Right()
	}
	y1 := r.Bottom()
	if o.Bottom() > y1 {
		y1 = o.Bottom()
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset shrinks the rectangle by n cells on every side. May produce an
// empty rectangle.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// Subtract returns r minus o as disjoint fragments, at most four, in a
// fixed order: the band above the overlap, the band to its left, the band
// to its right, the band below. Returns r itself when the rectangles are
// disjoint and nil when o fully covers r.
func (r Rect) Subtract(o Rect) []Rect {
	ov := r.Intersect(o)
	if ov.Empty() {
		if r.Empty() {
			return nil
		}
		return []Rect{r}
	}
	if ov == r {
		return nil
	}
	out := make([]Rect, 0, 4)
	if ov.Y > r.Y {
		out = append(out, Rect{X: r.X, Y: r.Y, W: r.W, H: ov.Y - r.Y})
	}
	if ov.X > r.X {
		out = append(out, Rect{X: r.X, Y: ov.Y, W: ov.X - r.X, H: ov.H})
	}
	if ov.Right() < r.Right() {
		out = append(out, Rect{X: ov.Right(), Y: ov.Y, W: r.Right() - ov.Right(), H: ov.H})
	}
	if ov.Bottom() < r.Bottom() {
		out = append(out, Rect{X: r.X, Y: ov.Bottom(), W: r.W, H: r.Bottom() - ov.Bottom()})
	}
	return out
}
