package terminal

import (
	"testing"
)

func drainEvents(r *inputReader) []Event {
	var evs []Event
	for {
		select {
		case ev := <-r.eventCh:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

func TestParsePrintableRunes(t *testing.T) {
	r := newInputReader(nil)
	consumed := r.parseInput([]byte("abc"))
	if consumed != 3 {
		t.Errorf("Expected 3 bytes consumed, got %d", consumed)
	}

	evs := drainEvents(r)
	if len(evs) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(evs))
	}
	for i, want := range "abc" {
		if evs[i].Key != KeyRune || evs[i].Rune != want {
			t.Errorf("Event %d: expected rune %q, got %+v", i, want, evs[i])
		}
	}
}

func TestParseUTF8(t *testing.T) {
	r := newInputReader(nil)
	consumed := r.parseInput([]byte("h\xc3\xa9"))
	if consumed != 3 {
		t.Errorf("Expected 3 bytes consumed, got %d", consumed)
	}

	evs := drainEvents(r)
	if len(evs) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(evs))
	}
	if evs[1].Rune != 'é' {
		t.Errorf("Expected é, got %q", evs[1].Rune)
	}
}

func TestParseIncompleteUTF8Retained(t *testing.T) {
	r := newInputReader(nil)
	consumed := r.parseInput([]byte{0xc3})
	if consumed != 0 {
		t.Errorf("Expected incomplete UTF-8 left in buffer, consumed %d", consumed)
	}
	if evs := drainEvents(r); len(evs) != 0 {
		t.Errorf("Expected no events, got %+v", evs)
	}
}

func TestParseControlKeys(t *testing.T) {
	tests := []struct {
		b    byte
		want Key
	}{
		{0x03, KeyCtrlC},
		{0x09, KeyTab},
		{0x0d, KeyEnter},
		{0x0a, KeyEnter},
		{0x7f, KeyBackspace},
	}

	for _, tt := range tests {
		r := newInputReader(nil)
		r.parseInput([]byte{tt.b})
		evs := drainEvents(r)
		if len(evs) != 1 || evs[0].Key != tt.want {
			t.Errorf("Byte 0x%02x: expected key %v, got %+v", tt.b, tt.want, evs)
		}
	}
}

func TestParseCSIKeys(t *testing.T) {
	tests := []struct {
		in  string
		key Key
		mod Modifier
	}{
		{"\x1b[A", KeyUp, ModNone},
		{"\x1b[B", KeyDown, ModNone},
		{"\x1b[1;5C", KeyRight, ModCtrl},
		{"\x1b[3~", KeyDelete, ModNone},
		{"\x1b[15~", KeyF5, ModNone},
		{"\x1bOP", KeyF1, ModNone},
	}

	for _, tt := range tests {
		r := newInputReader(nil)
		consumed := r.parseInput([]byte(tt.in))
		if consumed != len(tt.in) {
			t.Errorf("%q: expected %d consumed, got %d", tt.in, len(tt.in), consumed)
		}
		evs := drainEvents(r)
		if len(evs) != 1 || evs[0].Key != tt.key || evs[0].Modifiers != tt.mod {
			t.Errorf("%q: expected key %v mod %v, got %+v", tt.in, tt.key, tt.mod, evs)
		}
	}
}

func TestParseIncompleteCSIRetained(t *testing.T) {
	r := newInputReader(nil)
	if consumed := r.parseInput([]byte("\x1b[")); consumed != 0 {
		t.Errorf("Expected incomplete CSI left in buffer, consumed %d", consumed)
	}

	// Completing the sequence in a later read produces the key
	if consumed := r.parseInput([]byte("\x1b[A")); consumed != 3 {
		t.Errorf("Expected 3 consumed, got %d", consumed)
	}
	evs := drainEvents(r)
	if len(evs) != 1 || evs[0].Key != KeyUp {
		t.Errorf("Expected KeyUp, got %+v", evs)
	}
}

func TestParseAltModifier(t *testing.T) {
	r := newInputReader(nil)
	r.parseInput([]byte("\x1bx"))
	evs := drainEvents(r)
	if len(evs) != 1 || evs[0].Key != KeyRune || evs[0].Rune != 'x' || evs[0].Modifiers != ModAlt {
		t.Errorf("Expected Alt+x, got %+v", evs)
	}
}

func TestParseSGRMouse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		x, y   int
		btn    MouseButton
		action MouseAction
		mod    Modifier
	}{
		{"LeftPress", "\x1b[<0;10;5M", 9, 4, MouseBtnLeft, MouseActionPress, ModNone},
		{"LeftRelease", "\x1b[<0;10;5m", 9, 4, MouseBtnLeft, MouseActionRelease, ModNone},
		{"RightPress", "\x1b[<2;1;1M", 0, 0, MouseBtnRight, MouseActionPress, ModNone},
		{"WheelUp", "\x1b[<64;3;4M", 2, 3, MouseBtnWheelUp, MouseActionPress, ModNone},
		{"WheelDown", "\x1b[<65;3;4M", 2, 3, MouseBtnWheelDown, MouseActionPress, ModNone},
		{"LeftDrag", "\x1b[<32;7;8M", 6, 7, MouseBtnLeft, MouseActionDrag, ModNone},
		{"Motion", "\x1b[<35;7;8M", 6, 7, MouseBtnNone, MouseActionMove, ModNone},
		{"ShiftClick", "\x1b[<4;2;2M", 1, 1, MouseBtnLeft, MouseActionPress, ModShift},
		{"CtrlClick", "\x1b[<16;2;2M", 1, 1, MouseBtnLeft, MouseActionPress, ModCtrl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newInputReader(nil)
			consumed := r.parseInput([]byte(tt.in))
			if consumed != len(tt.in) {
				t.Errorf("Expected %d consumed, got %d", len(tt.in), consumed)
			}

			evs := drainEvents(r)
			if len(evs) != 1 {
				t.Fatalf("Expected 1 event, got %d", len(evs))
			}
			ev := evs[0]
			if ev.Type != EventMouse {
				t.Fatalf("Expected mouse event, got %+v", ev)
			}
			if ev.MouseX != tt.x || ev.MouseY != tt.y {
				t.Errorf("Expected position (%d,%d), got (%d,%d)", tt.x, tt.y, ev.MouseX, ev.MouseY)
			}
			if ev.MouseBtn != tt.btn {
				t.Errorf("Expected button %v, got %v", tt.btn, ev.MouseBtn)
			}
			if ev.MouseAction != tt.action {
				t.Errorf("Expected action %v, got %v", tt.action, ev.MouseAction)
			}
			if ev.Modifiers != tt.mod {
				t.Errorf("Expected modifiers %v, got %v", tt.mod, ev.Modifiers)
			}
		})
	}
}

func TestParseSGRParams(t *testing.T) {
	tests := []struct {
		in   string
		btn  int
		x, y int
		ok   bool
	}{
		{"0;10;5", 0, 10, 5, true},
		{"64;1;1", 64, 1, 1, true},
		{"0;10", 0, 0, 0, false},
		{"0;10;5;9", 0, 0, 0, false},
		{"a;b;c", 0, 0, 0, false},
		{"", 0, 0, 0, false},
	}

	for _, tt := range tests {
		btn, x, y, ok := parseSGRParams([]byte(tt.in))
		if ok != tt.ok {
			t.Errorf("%q: expected ok=%v, got %v", tt.in, tt.ok, ok)
			continue
		}
		if ok && (btn != tt.btn || x != tt.x || y != tt.y) {
			t.Errorf("%q: expected (%d,%d,%d), got (%d,%d,%d)", tt.in, tt.btn, tt.x, tt.y, btn, x, y)
		}
	}
}

func TestParseBracketedPaste(t *testing.T) {
	r := newInputReader(nil)
	consumed := r.parseInput([]byte("\x1b[200~hello\x1b[201~"))
	if consumed != 17 {
		t.Errorf("Expected 17 consumed, got %d", consumed)
	}

	evs := drainEvents(r)
	if len(evs) != 1 {
		t.Fatalf("Expected 1 event, got %d: %+v", len(evs), evs)
	}
	if evs[0].Type != EventPaste || evs[0].Paste != "hello" {
		t.Errorf("Expected paste %q, got %+v", "hello", evs[0])
	}
}

func TestParseBracketedPasteSplitAcrossReads(t *testing.T) {
	r := newInputReader(nil)

	// Start marker plus partial content
	if consumed := r.parseInput([]byte("\x1b[200~hel")); consumed != 9 {
		t.Errorf("Expected 9 consumed, got %d", consumed)
	}
	// Content ending in a partial end marker, which must be retained
	data := []byte("lo\x1b[201")
	consumed := r.parseInput(data)
	if consumed != 2 {
		t.Errorf("Expected partial end marker retained, consumed %d", consumed)
	}
	// The remainder completes the marker
	r.parseInput([]byte("\x1b[201~"))

	evs := drainEvents(r)
	if len(evs) != 1 {
		t.Fatalf("Expected 1 event, got %d: %+v", len(evs), evs)
	}
	if evs[0].Type != EventPaste || evs[0].Paste != "hello" {
		t.Errorf("Expected paste %q, got %+v", "hello", evs[0])
	}
}

func TestParsePasteHoldsControlBytes(t *testing.T) {
	r := newInputReader(nil)
	r.parseInput([]byte("\x1b[200~a\tb\nc\x1b[201~"))

	evs := drainEvents(r)
	if len(evs) != 1 {
		t.Fatalf("Expected pasted control bytes to stay in the block, got %+v", evs)
	}
	if evs[0].Paste != "a\tb\nc" {
		t.Errorf("Expected paste %q, got %q", "a\tb\nc", evs[0].Paste)
	}
}

func TestPartialSuffixLen(t *testing.T) {
	seq := []byte("\x1b[201~")
	tests := []struct {
		data string
		want int
	}{
		{"hello", 0},
		{"hello\x1b", 1},
		{"hello\x1b[", 2},
		{"hello\x1b[201", 5},
		{"\x1b[2", 3},
		{"", 0},
		{"\x1b[201~", 0}, // Full marker is not a partial
	}

	for _, tt := range tests {
		if got := partialSuffixLen([]byte(tt.data), seq); got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.data, tt.want, got)
		}
	}
}

func TestDecodeRuneInvalid(t *testing.T) {
	tests := [][]byte{
		{0xff},             // Invalid start byte
		{0xc3, 0x28},       // Invalid continuation
		{0xc0, 0x80},       // Overlong encoding
		{0xe0, 0x80, 0x80}, // Overlong encoding
	}

	for _, in := range tests {
		r, _ := decodeRune(in)
		if r != 0xFFFD {
			t.Errorf("%v: expected replacement char, got %q", in, r)
		}
	}
}
