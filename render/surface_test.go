package render

import (
	"testing"

	"github.com/lixenwraith/termdesk/terminal"
)

func TestSurfaceSetCellTracksChanges(t *testing.T) {
	s := NewSurface(8, 4, terminal.Black)
	s.ClearIfNeeded()
	s.ResetChanged()

	if s.Dirty() {
		t.Fatal("Expected clean surface after reset")
	}

	c := terminal.Cell{Rune: 'x', Fg: terminal.White, Bg: terminal.Black}
	s.SetCell(3, 1, c)
	if !s.Dirty() {
		t.Error("Expected dirty after write")
	}

	spans := s.ChangedSpans(1, nil)
	if len(spans) != 1 || spans[0] != (Span{3, 4}) {
		t.Errorf("Expected span {3 4}, got %+v", spans)
	}

	// Writing the identical value records nothing
	s.ResetChanged()
	s.SetCell(3, 1, c)
	if s.Dirty() {
		t.Error("Expected no change for identical write")
	}
}

func TestSurfaceSetCellClips(t *testing.T) {
	s := NewSurface(4, 2, terminal.Black)
	s.ClearIfNeeded()
	s.ResetChanged()

	c := terminal.Cell{Rune: 'x'}
	s.SetCell(-1, 0, c)
	s.SetCell(4, 0, c)
	s.SetCell(0, -1, c)
	s.SetCell(0, 2, c)

	if s.Dirty() {
		t.Error("Expected out-of-bounds writes to be dropped")
	}
}

func TestSurfaceChangedSpansMaximalRuns(t *testing.T) {
	s := NewSurface(10, 1, terminal.Black)
	s.ClearIfNeeded()
	s.ResetChanged()

	for _, x := range []int{1, 2, 3, 6, 8, 9} {
		s.SetCell(x, 0, terminal.Cell{Rune: 'x'})
	}

	spans := s.ChangedSpans(0, nil)
	want := []Span{{1, 4}, {6, 7}, {8, 10}}
	if len(spans) != len(want) {
		t.Fatalf("Expected %d spans, got %+v", len(want), spans)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("Span %d: expected %+v, got %+v", i, want[i], spans[i])
		}
	}
}

func TestSurfaceResetChangedIsDestructive(t *testing.T) {
	s := NewSurface(6, 2, terminal.Black)
	s.ClearIfNeeded()
	s.ResetChanged()

	s.SetCell(2, 0, terminal.Cell{Rune: 'x'})
	s.ResetChanged()

	// A frame that consumed the spans and wrote nothing new sees none
	if spans := s.ChangedSpans(0, nil); len(spans) != 0 {
		t.Errorf("Expected no spans after reset, got %+v", spans)
	}
	if s.Dirty() {
		t.Error("Expected clean surface after reset")
	}
}

func TestSurfaceBackgroundClear(t *testing.T) {
	s := NewSurface(4, 2, terminal.Black)
	s.ClearIfNeeded()
	s.ResetChanged()

	// Same background is a no-op
	s.SetBackground(terminal.Black)
	if s.Dirty() {
		t.Error("Expected no clear for unchanged background")
	}

	s.SetBackground(terminal.DarkSlate)
	if !s.Dirty() {
		t.Error("Expected pending clear to report dirty")
	}
	s.ClearIfNeeded()

	cell, ok := s.Cell(3, 1)
	if !ok || cell.Bg != terminal.DarkSlate || cell.Rune != 0 {
		t.Errorf("Expected blank cell with new background, got %+v", cell)
	}

	// Every cell is marked changed
	total := 0
	for y := 0; y < 2; y++ {
		for _, sp := range s.ChangedSpans(y, nil) {
			total += sp.X1 - sp.X0
		}
	}
	if total != 8 {
		t.Errorf("Expected all 8 cells changed, got %d", total)
	}
}

func TestSurfaceResize(t *testing.T) {
	s := NewSurface(4, 2, terminal.Black)
	s.ClearIfNeeded()
	s.ResetChanged()

	s.Resize(6, 3)
	w, h := s.Size()
	if w != 6 || h != 3 {
		t.Errorf("Expected 6x3, got %dx%d", w, h)
	}
	if !s.Dirty() {
		t.Error("Expected resize to schedule a clear")
	}
	s.ClearIfNeeded()

	if _, ok := s.Cell(5, 2); !ok {
		t.Error("Expected new cells in bounds")
	}

	// Same size is a no-op
	s.ResetChanged()
	s.Resize(6, 3)
	if s.Dirty() {
		t.Error("Expected same-size resize to be a no-op")
	}
}
