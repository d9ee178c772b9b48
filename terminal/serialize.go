package terminal

import "bufio"

// styleState tracks the SGR state the terminal is currently left in.
type styleState struct {
	fg    RGB
	bg    RGB
	attr  Attr
	valid bool
}

// lineSerializer converts cell runs into ANSI text, coalescing SGR
// sequences across writes. A style emitted for any column strictly before
// the current one is still active: a run starting exactly where the
// previous run ended continues without re-emitting its style.
type lineSerializer struct {
	colorMode ColorMode
	state     styleState
}

// invalidate forgets the terminal's SGR state, forcing the next cell to
// emit a full style sequence.
func (s *lineSerializer) invalidate() {
	s.state.valid = false
}

// writeRun serializes cells[from:to) of one row. The caller must have
// positioned the cursor at column from. Returns columns consumed; wide
// runes advance two, their continuation cell is never written alone.
func (s *lineSerializer) writeRun(w *bufio.Writer, cells []Cell, from, to int) int {
	x := from
	for x < to {
		c := cells[x]
		s.writeStyle(w, c.Fg, c.Bg, c.Attrs)

		r := c.Rune
		if r == 0 {
			r = ' '
		}
		if r < 0x80 {
			w.WriteByte(byte(r))
			x++
			continue
		}
		if RuneCellWidth(r) == 2 {
			if x+1 < to {
				w.WriteRune(r)
				x += 2
				continue
			}
			// Wide rune with no room for its continuation cell
			w.WriteByte(' ')
			x++
			continue
		}
		w.WriteRune(r)
		x++
	}
	return x - from
}

// writeStyle emits a single combined SGR sequence when style changes
func (s *lineSerializer) writeStyle(w *bufio.Writer, fg, bg RGB, attr Attr) {
	fgChanged := !s.state.valid || fg != s.state.fg || (attr&AttrFg256) != (s.state.attr&AttrFg256)
	bgChanged := !s.state.valid || bg != s.state.bg || (attr&AttrBg256) != (s.state.attr&AttrBg256)
	styleAttr := attr & AttrStyle
	attrChanged := !s.state.valid || styleAttr != s.state.attr&AttrStyle

	if !fgChanged && !bgChanged && !attrChanged {
		return
	}

	// Attribute bits can only be dropped by a reset, so emit one combined
	// reset+style+color sequence whenever they change
	if attrChanged {
		w.Write(csi)
		w.WriteByte('0')
		if styleAttr&AttrBold != 0 {
			w.Write([]byte(";1"))
		}
		if styleAttr&AttrDim != 0 {
			w.Write([]byte(";2"))
		}
		if styleAttr&AttrItalic != 0 {
			w.Write([]byte(";3"))
		}
		if styleAttr&AttrUnderline != 0 {
			w.Write([]byte(";4"))
		}
		if styleAttr&AttrBlink != 0 {
			w.Write([]byte(";5"))
		}
		if styleAttr&AttrReverse != 0 {
			w.Write([]byte(";7"))
		}
		s.writeFgInline(w, fg, attr)
		s.writeBgInline(w, bg, attr)
		w.WriteByte('m')
	} else {
		// Only colors changed, emit minimal sequence
		if fgChanged && bgChanged {
			w.Write(csi)
			s.writeFgInline(w, fg, attr)
			s.writeBgInline(w, bg, attr)
			w.WriteByte('m')
		} else if fgChanged {
			s.writeFgFull(w, fg, attr)
		} else if bgChanged {
			s.writeBgFull(w, bg, attr)
		}
	}

	s.state.fg = fg
	s.state.bg = bg
	s.state.attr = attr
	s.state.valid = true
}

// writeFgInline writes fg color parameters (no CSI prefix, no 'm' suffix)
func (s *lineSerializer) writeFgInline(w *bufio.Writer, fg RGB, attr Attr) {
	w.WriteByte(';')
	if attr&AttrFg256 != 0 {
		// 256-color: 38;5;N
		w.Write([]byte("38;5;"))
		writeInt(w, int(fg.R))
	} else if s.colorMode == ColorModeTrueColor {
		// True color: 38;2;R;G;B
		w.Write([]byte("38;2;"))
		writeInt(w, int(fg.R))
		w.WriteByte(';')
		writeInt(w, int(fg.G))
		w.WriteByte(';')
		writeInt(w, int(fg.B))
	} else {
		// Fallback 256: 38;5;N
		w.Write([]byte("38;5;"))
		writeInt(w, int(RGBTo256(fg)))
	}
}

// writeBgInline writes bg color parameters (no CSI prefix, no 'm' suffix)
func (s *lineSerializer) writeBgInline(w *bufio.Writer, bg RGB, attr Attr) {
	w.WriteByte(';')
	if attr&AttrBg256 != 0 {
		// 256-color: 48;5;N
		w.Write([]byte("48;5;"))
		writeInt(w, int(bg.R))
	} else if s.colorMode == ColorModeTrueColor {
		// True color: 48;2;R;G;B
		w.Write([]byte("48;2;"))
		writeInt(w, int(bg.R))
		w.WriteByte(';')
		writeInt(w, int(bg.G))
		w.WriteByte(';')
		writeInt(w, int(bg.B))
	} else {
		// Fallback 256: 48;5;N
		w.Write([]byte("48;5;"))
		writeInt(w, int(RGBTo256(bg)))
	}
}

// writeFgFull writes complete fg color sequence
func (s *lineSerializer) writeFgFull(w *bufio.Writer, fg RGB, attr Attr) {
	if attr&AttrFg256 != 0 {
		w.Write(csiFg256)
		writeInt(w, int(fg.R))
		w.WriteByte('m')
	} else if s.colorMode == ColorModeTrueColor {
		w.Write(csiFgRGB)
		writeInt(w, int(fg.R))
		w.WriteByte(';')
		writeInt(w, int(fg.G))
		w.WriteByte(';')
		writeInt(w, int(fg.B))
		w.WriteByte('m')
	} else {
		w.Write(csiFg256)
		writeInt(w, int(RGBTo256(fg)))
		w.WriteByte('m')
	}
}

// writeBgFull writes complete bg color sequence
func (s *lineSerializer) writeBgFull(w *bufio.Writer, bg RGB, attr Attr) {
	if attr&AttrBg256 != 0 {
		w.Write(csiBg256)
		writeInt(w, int(bg.R))
		w.WriteByte('m')
	} else if s.colorMode == ColorModeTrueColor {
		w.Write(csiBgRGB)
		writeInt(w, int(bg.R))
		w.WriteByte(';')
		writeInt(w, int(bg.G))
		w.WriteByte(';')
		writeInt(w, int(bg.B))
		w.WriteByte('m')
	} else {
		w.Write(csiBg256)
		writeInt(w, int(RGBTo256(bg)))
		w.WriteByte('m')
	}
}
