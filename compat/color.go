// Package compat bridges tcell types to the native cell model so code
// written against tcell idioms can paint a window body without pulling
// a second terminal runtime into the process.
package compat

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termdesk/terminal"
)

// TcellToRGB converts a tcell color, mapping ColorDefault to def
func TcellToRGB(c tcell.Color, def terminal.RGB) terminal.RGB {
	if c == tcell.ColorDefault {
		return def
	}
	r, g, b := c.RGB()
	return terminal.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// RGBToTcell converts a native color to tcell
func RGBToTcell(c terminal.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// AttrsFromMask converts the tcell attribute mask to native attribute
// bits. Attributes without a native counterpart are dropped.
func AttrsFromMask(m tcell.AttrMask) terminal.Attr {
	var a terminal.Attr
	if m&tcell.AttrBold != 0 {
		a |= terminal.AttrBold
	}
	if m&tcell.AttrDim != 0 {
		a |= terminal.AttrDim
	}
	if m&tcell.AttrItalic != 0 {
		a |= terminal.AttrItalic
	}
	if m&tcell.AttrUnderline != 0 {
		a |= terminal.AttrUnderline
	}
	if m&tcell.AttrBlink != 0 {
		a |= terminal.AttrBlink
	}
	if m&tcell.AttrReverse != 0 {
		a |= terminal.AttrReverse
	}
	return a
}

// CellFromStyle builds a native cell from a rune and a tcell style,
// substituting defaults for tcell's default colors
func CellFromStyle(r rune, style tcell.Style, defFg, defBg terminal.RGB) terminal.Cell {
	fg, bg, attrs := style.Decompose()
	return terminal.Cell{
		Rune:  r,
		Fg:    TcellToRGB(fg, defFg),
		Bg:    TcellToRGB(bg, defBg),
		Attrs: AttrsFromMask(attrs),
	}
}
