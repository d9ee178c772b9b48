package compat

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/render"
	"github.com/lixenwraith/termdesk/terminal"
)

// SurfaceScreen is a minimal tcell-Screen-shaped facade over a clipped
// surface view. Coordinates are local to the view; writes outside it
// are dropped like any other surface write. It covers the drawing
// subset of tcell.Screen, not lifecycle or input.
type SurfaceScreen struct {
	surface *render.Surface
	view    geom.Rect
	defFg   terminal.RGB
	defBg   terminal.RGB
}

// NewSurfaceScreen creates a facade over the view rectangle of s.
// Default colors substitute for tcell.ColorDefault.
func NewSurfaceScreen(s *render.Surface, view geom.Rect, defFg, defBg terminal.RGB) *SurfaceScreen {
	w, h := s.Size()
	return &SurfaceScreen{
		surface: s,
		view:    view.Intersect(geom.Rect{W: w, H: h}),
		defFg:   defFg,
		defBg:   defBg,
	}
}

// Size returns the view dimensions
func (s *SurfaceScreen) Size() (int, int) {
	return s.view.W, s.view.H
}

// SetContent writes one cell at view-local coordinates. Combining
// runes are dropped: the cell model stores a single grapheme lead.
func (s *SurfaceScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if x < 0 || x >= s.view.W || y < 0 || y >= s.view.H {
		return
	}
	c := CellFromStyle(primary, style, s.defFg, s.defBg)
	sx, sy := s.view.X+x, s.view.Y+y
	s.surface.SetCell(sx, sy, c)
	if terminal.RuneCellWidth(primary) == 2 {
		cont := c
		cont.Rune = 0
		s.surface.SetCell(sx+1, sy, cont)
	}
}

// Fill covers the whole view with one rune and style
func (s *SurfaceScreen) Fill(r rune, style tcell.Style) {
	c := CellFromStyle(r, style, s.defFg, s.defBg)
	for y := 0; y < s.view.H; y++ {
		for x := 0; x < s.view.W; x++ {
			s.surface.SetCell(s.view.X+x, s.view.Y+y, c)
		}
	}
}

// Clear fills the view with blank default-background cells
func (s *SurfaceScreen) Clear() {
	s.Fill(' ', tcell.StyleDefault)
}
