package apps

import (
	"strings"
	"testing"

	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/layout"
	"github.com/lixenwraith/termdesk/registry"
	"github.com/lixenwraith/termdesk/render"
	"github.com/lixenwraith/termdesk/terminal"
	"github.com/lixenwraith/termdesk/theme"
)

// fakeHost records posted ops and serves a fixed render snapshot
type fakeHost struct {
	ops   []event.Op
	bells int
	info  registry.RenderInfo
}

func (h *fakeHost) Post(op event.Op)            { h.ops = append(h.ops, op) }
func (h *fakeHost) Render() registry.RenderInfo { return h.info }
func (h *fakeHost) Bell()                       { h.bells++ }

func TestRegisterInstallsAllApps(t *testing.T) {
	Register()
	for _, name := range []string{"clock", "notes", "monitor", "paint"} {
		if _, ok := registry.GetApp(name); !ok {
			t.Errorf("Expected app %q registered", name)
		}
	}
}

func keyRune(r rune) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: r}
}

func key(k terminal.Key) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: k}
}

func TestNotesEditing(t *testing.T) {
	h := &fakeHost{}
	spec := Notes(h)
	text := spec.Root.Children()[0].(*layout.Text)
	base := text.Text()

	for _, r := range "abc" {
		if !spec.HandleKey(keyRune(r)) {
			t.Fatalf("Expected rune %q consumed", r)
		}
	}
	if got := text.Text(); got != base+"abc" {
		t.Errorf("Expected appended text, got %q", got)
	}

	spec.HandleKey(key(terminal.KeyEnter))
	spec.HandleKey(keyRune('d'))
	if got := text.Text(); !strings.HasSuffix(got, "abc\nd") {
		t.Errorf("Expected newline insertion, got %q", got)
	}

	spec.HandleKey(key(terminal.KeyBackspace))
	spec.HandleKey(key(terminal.KeyBackspace))
	if got := text.Text(); !strings.HasSuffix(got, "abc") {
		t.Errorf("Expected backspace to erase, got %q", got)
	}

	// Erasing everything stops at the greeting
	for i := 0; i < 100; i++ {
		spec.HandleKey(key(terminal.KeyBackspace))
	}
	if got := text.Text(); got != base {
		t.Errorf("Expected greeting preserved, got %q", got)
	}
	if h.bells == 0 {
		t.Error("Expected bell when erasing past the greeting")
	}

	// Modified chords fall through to desktop bindings
	ev := keyRune('n')
	ev.Modifiers = terminal.ModCtrl
	if spec.HandleKey(ev) {
		t.Error("Expected ctrl chord not consumed")
	}
}

func TestMonitorPaintsSnapshot(t *testing.T) {
	h := &fakeHost{info: registry.RenderInfo{
		Frame:    42,
		Windows:  3,
		FPS:      30,
		Strategy: terminal.DiffAdaptive,
	}}
	spec := Monitor(h)

	s := render.NewSurface(30, 14, theme.Default().WindowBg)
	s.ClearIfNeeded()
	tree := layout.NewTree(spec.Root)
	tree.Layout(geom.Rect{W: 30, H: 14})
	p := layout.NewPainter(s, geom.Rect{W: 30, H: 14}, theme.Default().Style())
	tree.Paint(&p)

	if !surfaceContains(s, "42") {
		t.Error("Expected frame counter in monitor output")
	}
	if !surfaceContains(s, "adaptive") {
		t.Error("Expected strategy name in monitor output")
	}
}

func TestClockTicksPostInvalidate(t *testing.T) {
	h := &fakeHost{}
	spec := Clock(h)
	if spec.Run == nil {
		t.Fatal("Expected clock to declare a run hook")
	}

	s := render.NewSurface(26, 7, theme.Default().WindowBg)
	s.ClearIfNeeded()
	tree := layout.NewTree(spec.Root)
	tree.Layout(geom.Rect{W: 26, H: 7})
	p := layout.NewPainter(s, geom.Rect{W: 26, H: 7}, theme.Default().Style())
	tree.Paint(&p)

	if !surfaceContains(s, ":") {
		t.Error("Expected a time separator on the clock face")
	}
}

func TestPaintDrawsGradient(t *testing.T) {
	spec := Paint(&fakeHost{})

	s := render.NewSurface(20, 10, theme.Default().WindowBg)
	s.ClearIfNeeded()
	tree := layout.NewTree(spec.Root)
	tree.Layout(geom.Rect{W: 20, H: 10})
	p := layout.NewPainter(s, geom.Rect{W: 20, H: 10}, theme.Default().Style())
	tree.Paint(&p)

	// Adjacent columns carry different hues
	a, _ := s.Cell(0, 5)
	b, _ := s.Cell(10, 5)
	if a.Bg == b.Bg {
		t.Errorf("Expected gradient across columns, both %v", a.Bg)
	}

	// Cursor key moves the brush and requests a redraw
	if !spec.HandleKey(key(terminal.KeyRight)) {
		t.Error("Expected arrow key consumed")
	}
}

// surfaceContains scans every row for the given substring
func surfaceContains(s *render.Surface, sub string) bool {
	w, h := s.Size()
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c, _ := s.Cell(x, y)
			if c.Rune > 0 {
				b.WriteRune(c.Rune)
			} else {
				b.WriteRune(' ')
			}
		}
		if strings.Contains(b.String(), sub) {
			return true
		}
	}
	return false
}
