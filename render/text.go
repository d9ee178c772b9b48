package render

import (
	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the terminal column width of s
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth truncates s to at most maxWidth columns, with … marking
// the cut. Wide runes never straddle the limit.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// PadWidth pads s with spaces to exactly width columns, truncating if over
func PadWidth(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w > width {
		return TruncateWidth(s, width)
	}
	if w == width {
		return s
	}
	b := make([]byte, 0, len(s)+(width-w))
	b = append(b, s...)
	for i := w; i < width; i++ {
		b = append(b, ' ')
	}
	return string(b)
}
