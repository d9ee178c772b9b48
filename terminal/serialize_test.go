package terminal

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func styledRow(n int, fg, bg RGB, attr Attr) []Cell {
	row := make([]Cell, n)
	for i := range row {
		row[i] = Cell{Rune: rune('a' + i%26), Fg: fg, Bg: bg, Attrs: attr}
	}
	return row
}

// countSGR counts style sequences, skipping cursor sequences ('H', 'C')
func countSGR(out string) int {
	n := 0
	for _, part := range strings.Split(out, "\x1b[") {
		i := 0
		for i < len(part) && (part[i] == ';' || (part[i] >= '0' && part[i] <= '9')) {
			i++
		}
		if i > 0 && i < len(part) && part[i] == 'm' {
			n++
		}
	}
	return n
}

func TestWriteRunSingleStyleOneSequence(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	s := lineSerializer{colorMode: ColorModeTrueColor}

	row := styledRow(20, White, Black, AttrNone)
	adv := s.writeRun(w, row, 0, len(row))
	w.Flush()

	if adv != 20 {
		t.Errorf("Expected 20 columns consumed, got %d", adv)
	}
	if got := countSGR(buf.String()); got != 1 {
		t.Errorf("Expected 1 style sequence, got %d in %q", got, buf.String())
	}
}

func TestWriteRunContinuationAcrossSpans(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	s := lineSerializer{colorMode: ColorModeTrueColor}

	row := styledRow(12, Silver, Gunmetal, AttrNone)

	// A run starting exactly where the previous ended continues the
	// style already active strictly before its first column
	s.writeRun(w, row, 0, 6)
	s.writeRun(w, row, 6, 12)
	w.Flush()

	if got := countSGR(buf.String()); got != 1 {
		t.Errorf("Expected 1 style sequence across adjacent runs, got %d", got)
	}
}

func TestWriteRunStyleChangeEmitsReset(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	s := lineSerializer{colorMode: ColorModeTrueColor}

	row := styledRow(8, White, Black, AttrNone)
	for i := 4; i < 8; i++ {
		row[i].Attrs = AttrBold
	}
	s.writeRun(w, row, 0, 8)
	w.Flush()

	out := buf.String()
	if got := countSGR(out); got != 2 {
		t.Errorf("Expected 2 style sequences, got %d in %q", got, out)
	}
	if !strings.Contains(out, "\x1b[0;1;") {
		t.Errorf("Expected combined reset+bold sequence, got %q", out)
	}
}

func TestWriteRunColorOnlyChangeSkipsReset(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	s := lineSerializer{colorMode: ColorModeTrueColor}

	row := styledRow(4, White, Black, AttrNone)
	row[2].Fg = Red
	row[3].Fg = Red
	s.writeRun(w, row, 0, 4)
	w.Flush()

	out := buf.String()
	if got := countSGR(out); got != 2 {
		t.Fatalf("Expected 2 style sequences, got %d in %q", got, out)
	}
	// Second sequence is fg-only, no reset parameter
	tail := out[strings.LastIndex(out, "\x1b["):]
	if !strings.HasPrefix(tail, "\x1b[38;2;255;0;0m") {
		t.Errorf("Expected minimal fg sequence, got %q", tail)
	}
}

func TestWriteRun256Mode(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	s := lineSerializer{colorMode: ColorMode256}

	row := styledRow(3, Red, Black, AttrNone)
	s.writeRun(w, row, 0, 3)
	w.Flush()

	out := buf.String()
	if !strings.Contains(out, "38;5;") {
		t.Errorf("Expected palette fg in 256 mode, got %q", out)
	}
	if strings.Contains(out, "38;2;") {
		t.Errorf("Expected no truecolor sequence in 256 mode, got %q", out)
	}
}

func TestWriteRunPaletteIndexPassthrough(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	s := lineSerializer{colorMode: ColorModeTrueColor}

	row := []Cell{{Rune: 'x', Fg: RGB{R: 208}, Attrs: AttrFg256}}
	s.writeRun(w, row, 0, 1)
	w.Flush()

	if !strings.Contains(buf.String(), "38;5;208") {
		t.Errorf("Expected raw palette index 208, got %q", buf.String())
	}
}

func TestWriteRunBlanksEmitSpaces(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	s := lineSerializer{colorMode: ColorModeTrueColor}

	row := make([]Cell, 5)
	for i := range row {
		row[i] = Cell{Bg: DarkSlate}
	}
	adv := s.writeRun(w, row, 0, 5)
	w.Flush()

	if adv != 5 {
		t.Errorf("Expected 5 columns, got %d", adv)
	}
	if !strings.HasSuffix(buf.String(), "     ") {
		t.Errorf("Expected five trailing spaces, got %q", buf.String())
	}
}

func TestWriteRunWideRune(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	s := lineSerializer{colorMode: ColorModeTrueColor}

	row := []Cell{
		{Rune: 'a', Fg: White},
		{Rune: '世', Fg: White},
		{Fg: White}, // Continuation
		{Rune: 'b', Fg: White},
	}
	adv := s.writeRun(w, row, 0, 4)
	w.Flush()

	if adv != 4 {
		t.Errorf("Expected 4 columns consumed, got %d", adv)
	}
	out := buf.String()
	if !strings.Contains(out, "a世b") {
		t.Errorf("Expected wide rune between neighbors, got %q", out)
	}
}

func TestWriteRunWideRuneClippedAtBoundary(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	s := lineSerializer{colorMode: ColorModeTrueColor}

	// Wide rune in the final column has no room for its continuation
	row := []Cell{{Rune: 'a', Fg: White}, {Rune: '世', Fg: White}}
	adv := s.writeRun(w, row, 0, 2)
	w.Flush()

	if adv != 2 {
		t.Errorf("Expected 2 columns consumed, got %d", adv)
	}
	if strings.Contains(buf.String(), "世") {
		t.Errorf("Expected clipped wide rune to pad, got %q", buf.String())
	}
}

func TestInvalidateForcesReemission(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	s := lineSerializer{colorMode: ColorModeTrueColor}

	row := styledRow(4, White, Black, AttrNone)
	s.writeRun(w, row, 0, 4)
	s.invalidate()
	s.writeRun(w, row, 0, 4)
	w.Flush()

	if got := countSGR(buf.String()); got != 2 {
		t.Errorf("Expected 2 style sequences after invalidate, got %d", got)
	}
}
