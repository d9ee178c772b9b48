package terminal

import "github.com/mattn/go-runewidth"

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	AttrFg256     Attr = 1 << 6 // Fg.R is 256-color palette index
	AttrBg256     Attr = 1 << 7 // Bg.R is 256-color palette index
)

// AttrStyle masks only the style bits (excludes color mode flags)
const AttrStyle Attr = AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse

// Cell represents a single terminal cell.
// A zero Rune is a blank rendered as a space in the cell's background.
// The cell to the right of a double-width rune must hold a zero Rune;
// it is a continuation and is never written on its own.
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// CellEqual compares two cells for dirtiness checks.
// Optimization: blanks skip the foreground comparison, only background shows
func CellEqual(a, b Cell) bool {
	if a.Rune != b.Rune || a.Attrs != b.Attrs {
		return false
	}
	if a.Rune == 0 {
		return a.Bg == b.Bg
	}
	return a.Fg == b.Fg && a.Bg == b.Bg
}

// RuneCellWidth returns the column count a rune occupies, clamped to 1 or 2.
// Zero-width combining marks count as 1 here; composing input is out of scope.
func RuneCellWidth(r rune) int {
	if r < 0x80 {
		return 1 // Fast path: ASCII, including the blank zero rune
	}
	w := runewidth.RuneWidth(r)
	if w <= 1 {
		return 1
	}
	return 2
}
