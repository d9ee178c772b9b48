package parameter

// Window geometry limits and placement
const (
	// MinWindowWidth/Height include the chrome ring. Below these the
	// title bar and resize handles stop being distinguishable.
	MinWindowWidth  = 6
	MinWindowHeight = 3

	// DefaultWindowWidth/Height for apps that declare no size
	DefaultWindowWidth  = 40
	DefaultWindowHeight = 12

	// CascadeStepX/Y offset each newly spawned window from the last
	CascadeStepX = 3
	CascadeStepY = 2

	// DesktopDotStep spaces the background pattern dots
	DesktopDotStep = 4

	// MoveStepX/Y per keyboard move action. Cells are taller than
	// wide, so horizontal steps are doubled.
	MoveStepX = 2
	MoveStepY = 1

	// ResizeStepX/Y per keyboard resize action
	ResizeStepX = 2
	ResizeStepY = 1

	// WheelScrollLines scrolled per wheel notch
	WheelScrollLines = 3
)

// Frame pacing
const (
	// DefaultFPS drives the render loop ticker. Terminal output is
	// diff-bounded, so idle frames cost one comparison pass.
	DefaultFPS = 30

	MinFPS = 1
	MaxFPS = 120
)
