// Package event carries frame-boundary desktop operations from
// producer goroutines (input handling, services, apps) to the render
// loop. The loop drains the queue between frames; window state is
// never mutated while a frame is mid-flight.
package event

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/termdesk/geom"
)

// OpKind discriminates desktop operations
type OpKind uint8

const (
	OpNone OpKind = iota

	// Window lifecycle
	OpSpawn // Name = registered app
	OpClose
	OpRaise
	OpFocusNext
	OpFocusPrev
	OpMinimize
	OpRestore
	OpToggleMaximize

	// Geometry, deltas in cells
	OpMove
	OpResize
	OpSetBounds // Bounds holds the absolute target

	// Content
	OpInvalidate // Window content must re-layout and repaint
	OpSetTitle

	// Runtime
	OpReloadConfig
	OpVisualBell
	OpQuit
)

// Op is one queued desktop operation. Fields beyond Kind are used per
// kind; unused ones stay zero. Ops are plain values so queue slots
// never share memory with producers after publication.
type Op struct {
	Kind   OpKind
	Window uuid.UUID // Target window; uuid.Nil targets the focused one
	DX, DY int
	DW, DH int
	Bounds geom.Rect
	Name   string // App name for OpSpawn, title for OpSetTitle
}
