package layout

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/render"
	"github.com/lixenwraith/termdesk/terminal"
)

// StyleContext carries fully resolved colors into the paint pass.
// Theme lookup happens before the frame; Paint never consults a theme.
type StyleContext struct {
	Fg     terminal.RGB
	Bg     terminal.RGB
	Accent terminal.RGB
	Muted  terminal.RGB
}

// Painter writes cells into a window surface, clipping every write to
// the active clip rectangle. Coordinates are surface-local. Painters
// are small values; Clipped derives child painters without allocation.
type Painter struct {
	Style StyleContext

	surface *render.Surface
	clip    geom.Rect
}

// NewPainter creates a painter over s restricted to clip
func NewPainter(s *render.Surface, clip geom.Rect, style StyleContext) Painter {
	w, h := s.Size()
	return Painter{
		Style:   style,
		surface: s,
		clip:    clip.Intersect(geom.Rect{W: w, H: h}),
	}
}

// Clipped returns a painter restricted to the intersection of the
// current clip and r
func (p *Painter) Clipped(r geom.Rect) Painter {
	cp := *p
	cp.clip = p.clip.Intersect(r)
	return cp
}

// Empty reports whether no cell can be written
func (p *Painter) Empty() bool { return p.clip.Empty() }

// Clip returns the active clip rectangle
func (p *Painter) Clip() geom.Rect { return p.clip }

// Surface exposes the underlying surface for facades that draw through
// their own cell API. Such writes bypass the clip; pair with Clip.
func (p *Painter) Surface() *render.Surface { return p.surface }

// Set writes one rune cell, dropped silently outside the clip
func (p *Painter) Set(x, y int, r rune, fg, bg terminal.RGB) {
	if !p.clip.Contains(x, y) {
		return
	}
	p.surface.Set(x, y, r, fg, bg)
}

// SetCell writes one full cell, dropped silently outside the clip
func (p *Painter) SetCell(x, y int, c terminal.Cell) {
	if !p.clip.Contains(x, y) {
		return
	}
	p.surface.SetCell(x, y, c)
}

// Fill writes blank background cells over r intersected with the clip
func (p *Painter) Fill(r geom.Rect, bg terminal.RGB) {
	c := r.Intersect(p.clip)
	for y := c.Y; y < c.Bottom(); y++ {
		for x := c.X; x < c.Right(); x++ {
			p.surface.Set(x, y, 0, terminal.Black, bg)
		}
	}
}

// Text draws s starting at (x, y), advancing by display width.
// Grapheme clusters are kept whole; a wide cluster writes its lead
// rune plus a continuation cell. Returns the columns advanced,
// including any clipped portion.
func (p *Painter) Text(x, y int, s string, fg, bg terminal.RGB) int {
	startX := x
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if w <= 0 {
			continue
		}
		r := g.Runes()[0]
		if w == 1 {
			p.Set(x, y, r, fg, bg)
			x++
			continue
		}
		// Wide cluster straddling the right clip edge degrades to a
		// space so the pair is never half-drawn
		if p.clip.Contains(x, y) && !p.clip.Contains(x+1, y) {
			p.Set(x, y, ' ', fg, bg)
		} else {
			p.Set(x, y, r, fg, bg)
			p.Set(x+1, y, 0, fg, bg)
		}
		x += 2
	}
	return x - startX
}
