package render

import (
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/terminal"
)

// LineStyle specifies box drawing character style
type LineStyle uint8

const (
	LineSingle  LineStyle = iota // ┌─┐│└┘
	LineDouble                   // ╔═╗║╚╝
	LineRounded                  // ╭─╮│╰╯
	LineHeavy                    // ┏━┓┃┗┛
	LineNone                     // spaces (invisible border with padding)
)

// boxChars contains box drawing character sets indexed by LineStyle
var boxChars = [...][6]rune{
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	LineHeavy:   {'┏', '━', '┓', '┃', '┗', '┛'},
	LineNone:    {' ', ' ', ' ', ' ', ' ', ' '},
}

const (
	boxTL = 0 // top-left
	boxH  = 1 // horizontal
	boxTR = 2 // top-right
	boxV  = 3 // vertical
	boxBL = 4 // bottom-left
	boxBR = 5 // bottom-right
)

const closeGlyph = '×'

// Hit classifies a point against a window's chrome
type Hit uint8

const (
	HitNone    Hit = iota // Outside the window
	HitContent            // Inside the border ring
	HitTitle              // Top row between the corners
	HitClose              // Close glyph cell
	HitResizeLeft
	HitResizeRight
	HitResizeTop
	HitResizeBottom
	HitResizeTopLeft
	HitResizeTopRight
	HitResizeBottomLeft
	HitResizeBottomRight
)

// IsResize reports whether the hit is any resize handle
func (h Hit) IsResize() bool {
	return h >= HitResizeLeft
}

// Edges returns which window edges a resize hit moves
func (h Hit) Edges() (left, top, right, bottom bool) {
	switch h {
	case HitResizeLeft:
		left = true
	case HitResizeRight:
		right = true
	case HitResizeTop:
		top = true
	case HitResizeBottom:
		bottom = true
	case HitResizeTopLeft:
		left, top = true, true
	case HitResizeTopRight:
		right, top = true, true
	case HitResizeBottomLeft:
		left, bottom = true, true
	case HitResizeBottomRight:
		right, bottom = true, true
	}
	return
}

// Classify maps a screen point to the chrome region it lands on.
// bounds is the window's half-open outer rectangle. The top row is title
// bar except its two corner cells; all other border cells are resize
// handles.
func Classify(x, y int, bounds geom.Rect) Hit {
	if !bounds.Contains(x, y) {
		return HitNone
	}
	lx := x - bounds.X
	ly := y - bounds.Y
	right := bounds.W - 1
	bottom := bounds.H - 1

	switch {
	case ly == 0 && lx == 0:
		return HitResizeTopLeft
	case ly == 0 && lx == right:
		return HitResizeTopRight
	case ly == bottom && lx == 0:
		return HitResizeBottomLeft
	case ly == bottom && lx == right:
		return HitResizeBottomRight
	case ly == 0:
		if lx == right-1 && bounds.W >= 4 {
			return HitClose
		}
		return HitTitle
	case ly == bottom:
		return HitResizeBottom
	case lx == 0:
		return HitResizeLeft
	case lx == right:
		return HitResizeRight
	}
	return HitContent
}

// ChromeStyle holds the concrete colors and line style for one focus state
type ChromeStyle struct {
	Line    LineStyle
	Border  terminal.RGB
	Title   terminal.RGB
	TitleBg terminal.RGB
	Close   terminal.RGB
}

// Chrome stamps a window's border ring and title bar into its surface.
// The top and bottom rows are cached and rebuilt only when the window's
// size, title, focus state, or style changes.
type Chrome struct {
	Focused ChromeStyle
	Blurred ChromeStyle

	// Cache key
	width   int
	height  int
	title   string
	focused bool
	style   ChromeStyle
	bg      terminal.RGB
	valid   bool

	top    []terminal.Cell
	bottom []terminal.Cell
}

// Paint stamps the border into s. Cells already holding the correct
// chrome record no change in the surface.
func (c *Chrome) Paint(s *Surface, title string, focused bool) {
	w, h := s.Size()
	if w < 2 || h < 2 {
		return
	}

	style := c.Blurred
	if focused {
		style = c.Focused
	}
	bg := s.Background()
	if !c.valid || w != c.width || h != c.height || title != c.title ||
		focused != c.focused || style != c.style || bg != c.bg {
		c.width = w
		c.height = h
		c.title = title
		c.focused = focused
		c.style = style
		c.bg = bg
		c.rebuild()
		c.valid = true
	}

	for x := 0; x < w; x++ {
		s.SetCell(x, 0, c.top[x])
		s.SetCell(x, h-1, c.bottom[x])
	}
	edge := terminal.Cell{Rune: boxChars[style.Line][boxV], Fg: style.Border, Bg: bg}
	for y := 1; y < h-1; y++ {
		s.SetCell(0, y, edge)
		s.SetCell(w-1, y, edge)
	}
}

// rebuild recomputes the cached top and bottom rows
func (c *Chrome) rebuild() {
	chars := boxChars[c.style.Line]
	w := c.width

	if cap(c.top) < w {
		c.top = make([]terminal.Cell, w)
		c.bottom = make([]terminal.Cell, w)
	} else {
		c.top = c.top[:w]
		c.bottom = c.bottom[:w]
	}

	barCell := terminal.Cell{Rune: chars[boxH], Fg: c.style.Border, Bg: c.style.TitleBg}
	for x := 1; x < w-1; x++ {
		c.top[x] = barCell
		c.bottom[x] = terminal.Cell{Rune: chars[boxH], Fg: c.style.Border, Bg: c.bg}
	}
	c.top[0] = terminal.Cell{Rune: chars[boxTL], Fg: c.style.Border, Bg: c.bg}
	c.top[w-1] = terminal.Cell{Rune: chars[boxTR], Fg: c.style.Border, Bg: c.bg}
	c.bottom[0] = terminal.Cell{Rune: chars[boxBL], Fg: c.style.Border, Bg: c.bg}
	c.bottom[w-1] = terminal.Cell{Rune: chars[boxBR], Fg: c.style.Border, Bg: c.bg}

	// Title from column 2, padded with one space each side, leaving room
	// for the close glyph at the title bar's right edge
	if maxTitle := w - 6; maxTitle > 0 && c.title != "" {
		text := " " + TruncateWidth(c.title, maxTitle) + " "
		x := 2
		for _, r := range text {
			rw := terminal.RuneCellWidth(r)
			if x+rw > w-3 {
				break
			}
			c.top[x] = terminal.Cell{Rune: r, Fg: c.style.Title, Bg: c.style.TitleBg, Attrs: terminal.AttrBold}
			if rw == 2 {
				c.top[x+1] = terminal.Cell{Rune: 0, Fg: c.style.Title, Bg: c.style.TitleBg}
			}
			x += rw
		}
	}

	if w >= 4 {
		c.top[w-2] = terminal.Cell{Rune: closeGlyph, Fg: c.style.Close, Bg: c.style.TitleBg}
	}
}
