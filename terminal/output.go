package terminal

import (
	"bufio"
	"fmt"
	"io"
)

// DiffStrategy selects how changed rows are rewritten.
type DiffStrategy uint8

const (
	// DiffAdaptive estimates output cost per row and picks between run
	// rewrites and a full-row rewrite.
	DiffAdaptive DiffStrategy = iota
	// DiffCellRuns rewrites each maximal run of changed cells.
	DiffCellRuns
	// DiffFullRows rewrites any row containing a changed cell end to end.
	DiffFullRows
)

// String returns the config name for a strategy
func (d DiffStrategy) String() string {
	switch d {
	case DiffCellRuns:
		return "cell"
	case DiffFullRows:
		return "line"
	default:
		return "adaptive"
	}
}

// ParseDiffStrategy resolves a config string to a diff strategy
func ParseDiffStrategy(s string) (DiffStrategy, bool) {
	switch s {
	case "", "adaptive":
		return DiffAdaptive, true
	case "cell", "cells":
		return DiffCellRuns, true
	case "line", "row":
		return DiffFullRows, true
	}
	return DiffAdaptive, false
}

// FrameStats reports the work a single flush performed.
type FrameStats struct {
	BytesWritten int // Bytes handed to the backend
	CellsChanged int // Cells that differed from the front buffer
	RowsTouched  int // Rows with at least one changed cell
}

// Adaptive strategy cost model, in approximate output bytes
const (
	diffMoveCost = 8 // Cursor positioning sequence
	diffCellCost = 2 // Serialized cell without style change
)

const outputWriterSize = 131072 // 128KB

// countingWriter tracks bytes that reach the backend
type countingWriter struct {
	dst io.Writer
	n   int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.dst.Write(p)
	c.n += n
	return n, err
}

// span is a half-open run [x0, x1) of columns within one row
type span struct {
	x0, x1 int
}

// commitRange marks front-buffer cells awaiting a successful flush
type commitRange struct {
	start, end int
}

// outputBuffer manages double-buffered terminal output with diffing.
// The front buffer mirrors what the terminal currently shows. It advances
// only after the backend write goes through: a failed frame leaves it
// untouched and the next flush redraws from scratch.
type outputBuffer struct {
	front    []Cell
	width    int
	height   int
	strategy DiffStrategy

	counter    *countingWriter
	writer     *bufio.Writer
	writerSize int
	ser        lineSerializer

	cursorX     int
	cursorY     int
	cursorValid bool

	spans   []span
	pending []commitRange
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	c := &countingWriter{dst: w}
	return &outputBuffer{
		counter:    c,
		writer:     bufio.NewWriterSize(c, outputWriterSize),
		writerSize: outputWriterSize,
		ser:        lineSerializer{colorMode: colorMode},
	}
}

// resize updates buffer dimensions and invalidates the front buffer
func (o *outputBuffer) resize(width, height int) {
	size := width * height
	if cap(o.front) < size {
		o.front = make([]Cell, size)
	} else {
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height

	// Rune -1 compares unequal to every drawable cell, forcing a rewrite
	for i := range o.front {
		o.front[i] = Cell{Rune: -1}
	}
	o.ser.invalidate()
	o.cursorValid = false

	// Keep a worst-case frame inside a single writer flush
	if need := size*48 + 4096; need > o.writerSize {
		o.writerSize = need
		o.writer = bufio.NewWriterSize(o.counter, need)
	}
}

// setStrategy switches the row rewrite strategy for subsequent flushes
func (o *outputBuffer) setStrategy(s DiffStrategy) {
	o.strategy = s
}

// flush diffs cells against the front buffer and writes the difference.
// Identical buffers write zero bytes. Iteration bounds come from the
// arguments, which must describe cells exactly.
func (o *outputBuffer) flush(cells []Cell, width, height int) (FrameStats, error) {
	if len(cells) != width*height {
		panic(fmt.Sprintf("terminal: flush buffer has %d cells, dimensions say %dx%d", len(cells), width, height))
	}
	if width != o.width || height != o.height {
		o.resize(width, height)
	}

	var stats FrameStats
	w := o.writer
	counted := o.counter.n
	o.pending = o.pending[:0]
	wrote := false

	for y := 0; y < height; y++ {
		rowStart := y * width
		row := cells[rowStart : rowStart+width]
		frontRow := o.front[rowStart : rowStart+width]

		spans, changed := o.rowSpans(row, frontRow)
		if len(spans) == 0 {
			continue
		}
		stats.CellsChanged += changed
		stats.RowsTouched++

		spans = widenSpans(spans, row)
		spans = o.strategySpans(spans, width)

		for _, sp := range spans {
			// Position cursor once per run
			if !o.cursorValid || sp.x0 != o.cursorX || y != o.cursorY {
				if o.cursorValid && y == o.cursorY && sp.x0 > o.cursorX {
					writeCursorForward(w, sp.x0-o.cursorX)
				} else {
					writeCursorPos(w, sp.x0, y)
				}
				o.cursorX = sp.x0
				o.cursorY = y
				o.cursorValid = true
			}

			o.cursorX += o.ser.writeRun(w, row, sp.x0, sp.x1)
			o.pending = append(o.pending, commitRange{rowStart + sp.x0, rowStart + sp.x1})
			wrote = true
		}
	}

	if !wrote {
		return stats, nil
	}

	w.Write(csiSGR0)
	o.ser.invalidate()

	if err := w.Flush(); err != nil {
		// Terminal state is unknown past the failure point. Reset the
		// writer too: bufio holds its error until then.
		w.Reset(o.counter)
		o.forceFullRedraw()
		return stats, err
	}

	for _, p := range o.pending {
		copy(o.front[p.start:p.end], cells[p.start:p.end])
	}
	stats.BytesWritten = o.counter.n - counted
	return stats, nil
}

// rowSpans collects maximal runs of cells differing from the front buffer
func (o *outputBuffer) rowSpans(row, front []Cell) ([]span, int) {
	o.spans = o.spans[:0]
	changed := 0
	width := len(row)
	x := 0
	for x < width {
		if CellEqual(row[x], front[x]) {
			x++
			continue
		}
		x0 := x
		for x < width && !CellEqual(row[x], front[x]) {
			changed++
			x++
		}
		o.spans = append(o.spans, span{x0, x})
	}
	return o.spans, changed
}

// widenSpans grows spans so no wide rune pair is split across a span
// boundary, merging spans that touch after growth.
func widenSpans(spans []span, row []Cell) []span {
	out := spans[:0]
	for i := 0; i < len(spans); i++ {
		sp := spans[i]
		if sp.x0 > 0 && isWideLead(row[sp.x0-1]) {
			sp.x0--
		}
		if sp.x1 < len(row) && isWideLead(row[sp.x1-1]) {
			sp.x1++
		}
		if n := len(out); n > 0 && sp.x0 <= out[n-1].x1 {
			if sp.x1 > out[n-1].x1 {
				out[n-1].x1 = sp.x1
			}
			continue
		}
		out = append(out, sp)
	}
	return out
}

func isWideLead(c Cell) bool {
	return c.Rune != 0 && RuneCellWidth(c.Rune) == 2
}

// strategySpans applies the configured rewrite strategy to one row's spans
func (o *outputBuffer) strategySpans(spans []span, width int) []span {
	switch o.strategy {
	case DiffCellRuns:
		return spans
	case DiffFullRows:
		o.spans = o.spans[:1]
		o.spans[0] = span{0, width}
		return o.spans
	default:
		runCost := 0
		for _, sp := range spans {
			runCost += diffMoveCost + (sp.x1-sp.x0)*diffCellCost
		}
		if diffMoveCost+width*diffCellCost < runCost {
			o.spans = o.spans[:1]
			o.spans[0] = span{0, width}
			return o.spans
		}
		return spans
	}
}

// forceFullRedraw invalidates the front buffer to force a complete rewrite
func (o *outputBuffer) forceFullRedraw() {
	for i := range o.front {
		o.front[i] = Cell{Rune: -1}
	}
	o.ser.invalidate()
	o.cursorValid = false
}

// clear writes a clear screen with specified background
func (o *outputBuffer) clear(bg RGB) {
	w := o.writer
	w.Write(csiSGR0)
	o.ser.writeBgFull(w, bg, 0)
	w.Write(csiClear)

	o.ser.invalidate()
	o.cursorValid = false
	if err := w.Flush(); err != nil {
		w.Reset(o.counter)
	}

	for i := range o.front {
		o.front[i] = Cell{Rune: 0, Bg: bg}
	}
}

// invalidateCursor marks cursor position as unknown
func (o *outputBuffer) invalidateCursor() {
	o.cursorValid = false
}
