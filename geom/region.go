package geom

// Region is a list of pairwise-disjoint rectangles. The zero value is an
// empty region. Operations preserve disjointness and produce deterministic
// rectangle order for identical inputs.
type Region []Rect

// RegionOf returns a region covering exactly r.
func RegionOf(r Rect) Region {
	if r.Empty() {
		return nil
	}
	return Region{r}
}

// Subtract removes o from the region. Each input rectangle contributes its
// fragments in Rect.Subtract order.
func (g Region) Subtract(o Rect) Region {
	if o.Empty() {
		return g
	}
	out := make(Region, 0, len(g)+2)
	for _, r := range g {
		if !r.Overlaps(o) {
			if !r.Empty() {
				out = append(out, r)
			}
			continue
		}
		out = append(out, r.Subtract(o)...)
	}
	return out
}

// Intersect clips every rectangle to b, dropping the ones that fall
// entirely outside.
func (g Region) Intersect(b Rect) Region {
	out := make(Region, 0, len(g))
	for _, r := range g {
		if c := r.Intersect(b); !c.Empty() {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether any rectangle covers (x, y).
func (g Region) Contains(x, y int) bool {
	for _, r := range g {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// Empty reports whether the region covers no cells.
func (g Region) Empty() bool {
	for _, r := range g {
		if !r.Empty() {
			return false
		}
	}
	return true
}

// Area returns the covered cell count. Disjointness makes it a plain sum.
func (g Region) Area() int {
	n := 0
	for _, r := range g {
		n += r.Area()
	}
	return n
}

// Bounds returns the smallest rectangle covering the region.
func (g Region) Bounds() Rect {
	var b Rect
	for _, r := range g {
		b = b.Union(r)
	}
	return b
}
