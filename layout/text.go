package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/terminal"
)

// Text displays lines of text, optionally word-wrapped to the arranged
// width. Colors default to the painter's style context; SetColors pins
// explicit ones.
type Text struct {
	node
	text string
	wrap bool

	fg, bg   terminal.RGB
	explicit bool

	lines     []string // Valid for wrapWidth
	wrapWidth int
}

// NewText creates an unwrapped text node
func NewText(s string) *Text {
	return &Text{text: s}
}

// NewWrappedText creates a text node that wraps to its arranged width
func NewWrappedText(s string) *Text {
	return &Text{text: s, wrap: true}
}

// SetText replaces the content, invalidating layout on change
func (t *Text) SetText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.lines = nil
	t.Invalidate()
}

// Text returns the current content
func (t *Text) Text() string { return t.text }

// SetColors pins explicit foreground and background colors
func (t *Text) SetColors(fg, bg terminal.RGB) {
	t.fg, t.bg = fg, bg
	t.explicit = true
	t.Invalidate()
}

// Children returns nil; text is a leaf
func (t *Text) Children() []Control { return nil }

// Measure returns the line grid extent: widest line by line count.
// Wrapped text reflows to the constraint width first.
func (t *Text) Measure(c Constraints) geom.Size {
	return t.cachedMeasure(c, func(c Constraints) geom.Size {
		w := c.Max.W
		if !t.wrap || w >= Unbounded {
			w = 0
		}
		lines := t.reflow(w)
		widest := 0
		for _, l := range lines {
			if lw := runewidth.StringWidth(l); lw > widest {
				widest = lw
			}
		}
		return geom.Size{W: widest, H: len(lines)}
	})
}

// Arrange records the rectangle and reflows when the width changed
func (t *Text) Arrange(r geom.Rect) {
	t.bounds = r
	if t.wrap {
		t.reflow(r.W)
	} else {
		t.reflow(0)
	}
}

// Paint draws the visible lines; rows past the bounds are clipped by
// the painter
func (t *Text) Paint(p *Painter) {
	fg, bg := t.fg, t.bg
	if !t.explicit {
		fg, bg = p.Style.Fg, p.Style.Bg
	}
	p.Fill(t.bounds, bg)
	for i, line := range t.lines {
		p.Text(t.bounds.X, t.bounds.Y+i, line, fg, bg)
	}
}

// LineCount returns the laid-out line count for scroll sizing
func (t *Text) LineCount() int { return len(t.lines) }

// reflow recomputes the line cache for the given wrap width.
// Width 0 means no wrapping.
func (t *Text) reflow(width int) []string {
	if t.lines != nil && t.wrapWidth == width {
		return t.lines
	}
	t.wrapWidth = width
	raw := strings.Split(t.text, "\n")
	if width <= 0 {
		t.lines = raw
		return t.lines
	}
	t.lines = t.lines[:0]
	for _, l := range raw {
		t.lines = appendWrapped(t.lines, l, width)
	}
	return t.lines
}

// appendWrapped word-wraps line to width columns, hard-breaking words
// longer than a full line at grapheme boundaries
func appendWrapped(out []string, line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return append(out, line)
	}
	var b strings.Builder
	col := 0
	for _, word := range strings.Split(line, " ") {
		ww := runewidth.StringWidth(word)
		sep := 0
		if col > 0 {
			sep = 1
		}
		if col+sep+ww <= width {
			if sep == 1 {
				b.WriteByte(' ')
			}
			b.WriteString(word)
			col += sep + ww
			continue
		}
		if col > 0 {
			out = append(out, b.String())
			b.Reset()
			col = 0
		}
		if ww <= width {
			b.WriteString(word)
			col = ww
			continue
		}
		// Hard break: grapheme clusters never split
		g := uniseg.NewGraphemes(word)
		for g.Next() {
			cw := runewidth.StringWidth(g.Str())
			if col+cw > width && col > 0 {
				out = append(out, b.String())
				b.Reset()
				col = 0
			}
			b.WriteString(g.Str())
			col += cw
		}
	}
	if col > 0 || len(out) == 0 {
		out = append(out, b.String())
	}
	return out
}
