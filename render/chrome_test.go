package render

import (
	"testing"

	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/terminal"
)

func TestClassify(t *testing.T) {
	bounds := geom.NewRect(10, 5, 20, 8)

	tests := []struct {
		name string
		x, y int
		want Hit
	}{
		{"Outside", 0, 0, HitNone},
		{"OutsideRightEdge", 30, 6, HitNone},
		{"OutsideBottomEdge", 15, 13, HitNone},
		{"TopLeftCorner", 10, 5, HitResizeTopLeft},
		{"TopRightCorner", 29, 5, HitResizeTopRight},
		{"BottomLeftCorner", 10, 12, HitResizeBottomLeft},
		{"BottomRightCorner", 29, 12, HitResizeBottomRight},
		{"TitleBar", 15, 5, HitTitle},
		{"TitleBarLeftOfClose", 27, 5, HitTitle},
		{"CloseGlyph", 28, 5, HitClose},
		{"LeftEdge", 10, 8, HitResizeLeft},
		{"RightEdge", 29, 8, HitResizeRight},
		{"BottomEdge", 15, 12, HitResizeBottom},
		{"Content", 15, 8, HitContent},
		{"ContentNextToBorder", 11, 6, HitContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.x, tt.y, bounds); got != tt.want {
				t.Errorf("Classify(%d,%d): expected %v, got %v", tt.x, tt.y, tt.want, got)
			}
		})
	}
}

func TestHitEdges(t *testing.T) {
	tests := []struct {
		hit                      Hit
		left, top, right, bottom bool
	}{
		{HitResizeLeft, true, false, false, false},
		{HitResizeRight, false, false, true, false},
		{HitResizeTop, false, true, false, false},
		{HitResizeBottom, false, false, false, true},
		{HitResizeTopLeft, true, true, false, false},
		{HitResizeBottomRight, false, false, true, true},
		{HitContent, false, false, false, false},
	}

	for _, tt := range tests {
		l, tp, r, b := tt.hit.Edges()
		if l != tt.left || tp != tt.top || r != tt.right || b != tt.bottom {
			t.Errorf("%v: expected (%v,%v,%v,%v), got (%v,%v,%v,%v)",
				tt.hit, tt.left, tt.top, tt.right, tt.bottom, l, tp, r, b)
		}
	}
}

func TestHitIsResize(t *testing.T) {
	for _, h := range []Hit{HitResizeLeft, HitResizeRight, HitResizeTop, HitResizeBottom,
		HitResizeTopLeft, HitResizeTopRight, HitResizeBottomLeft, HitResizeBottomRight} {
		if !h.IsResize() {
			t.Errorf("Expected %v to be a resize hit", h)
		}
	}
	for _, h := range []Hit{HitNone, HitContent, HitTitle, HitClose} {
		if h.IsResize() {
			t.Errorf("Expected %v not to be a resize hit", h)
		}
	}
}

func testChrome() *Chrome {
	return &Chrome{
		Focused: ChromeStyle{
			Line:    LineDouble,
			Border:  terminal.White,
			Title:   terminal.White,
			TitleBg: terminal.SteelBlue,
			Close:   terminal.BrightRed,
		},
		Blurred: ChromeStyle{
			Line:    LineSingle,
			Border:  terminal.Gray,
			Title:   terminal.Silver,
			TitleBg: terminal.DarkSlate,
			Close:   terminal.Gray,
		},
	}
}

func TestChromePaint(t *testing.T) {
	s := NewSurface(20, 6, terminal.Black)
	s.ClearIfNeeded()
	c := testChrome()
	c.Paint(s, "Notes", true)

	// Focused style uses double-line corners
	checks := []struct {
		x, y int
		want rune
	}{
		{0, 0, '╔'},
		{19, 0, '╗'},
		{0, 5, '╚'},
		{19, 5, '╝'},
		{0, 2, '║'},
		{19, 2, '║'},
		{5, 5, '═'},
		{18, 0, closeGlyph},
	}
	for _, tt := range checks {
		cell, _ := s.Cell(tt.x, tt.y)
		if cell.Rune != tt.want {
			t.Errorf("(%d,%d): expected %q, got %q", tt.x, tt.y, tt.want, cell.Rune)
		}
	}

	// Title starts after the padding space at column 2
	cell, _ := s.Cell(3, 0)
	if cell.Rune != 'N' {
		t.Errorf("Expected title start, got %q", cell.Rune)
	}
	if cell.Attrs&terminal.AttrBold == 0 {
		t.Error("Expected bold title")
	}
	if cell.Bg != terminal.SteelBlue {
		t.Errorf("Expected title bar background, got %+v", cell.Bg)
	}
}

func TestChromePaintBlurred(t *testing.T) {
	s := NewSurface(20, 6, terminal.Black)
	s.ClearIfNeeded()
	c := testChrome()
	c.Paint(s, "Notes", false)

	cell, _ := s.Cell(0, 0)
	if cell.Rune != '┌' {
		t.Errorf("Expected single-line corner when blurred, got %q", cell.Rune)
	}
	if cell.Fg != terminal.Gray {
		t.Errorf("Expected blurred border color, got %+v", cell.Fg)
	}
}

func TestChromeTitleTruncation(t *testing.T) {
	s := NewSurface(12, 4, terminal.Black)
	s.ClearIfNeeded()
	c := testChrome()
	c.Paint(s, "A Very Long Window Title", true)

	// Max title width is w-6 = 6, so the cut is marked
	found := false
	for x := 2; x < 10; x++ {
		if cell, _ := s.Cell(x, 0); cell.Rune == '…' {
			found = true
		}
	}
	if !found {
		t.Error("Expected truncation marker in title")
	}

	// Close glyph survives at the right edge of the bar
	cell, _ := s.Cell(10, 0)
	if cell.Rune != closeGlyph {
		t.Errorf("Expected close glyph, got %q", cell.Rune)
	}
}

func TestChromeRepaintIsClean(t *testing.T) {
	s := NewSurface(20, 6, terminal.Black)
	s.ClearIfNeeded()
	c := testChrome()
	c.Paint(s, "Notes", true)
	s.ResetChanged()

	// Stamping identical chrome records no surface changes
	c.Paint(s, "Notes", true)
	if s.Dirty() {
		t.Error("Expected identical repaint to record nothing")
	}

	// Focus change restyles the border
	c.Paint(s, "Notes", false)
	if !s.Dirty() {
		t.Error("Expected focus change to repaint")
	}
}
