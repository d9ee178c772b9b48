package desktop

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/termdesk/config"
	"github.com/lixenwraith/termdesk/core"
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/input"
	"github.com/lixenwraith/termdesk/layout"
	"github.com/lixenwraith/termdesk/parameter"
	"github.com/lixenwraith/termdesk/registry"
	"github.com/lixenwraith/termdesk/render"
	"github.com/lixenwraith/termdesk/terminal"
	"github.com/lixenwraith/termdesk/theme"
)

// Desktop drives the frame pipeline over one terminal. All window and
// layout state is owned by the goroutine calling Present/Run; other
// goroutines communicate through the op queue (registry.Host).
type Desktop struct {
	term     terminal.Terminal
	mgr      *Manager
	comp     *render.Compositor
	ops      *event.Queue
	theme    theme.Theme
	bindings *input.Bindings

	width, height int
	bg            *render.Surface // Desktop background pattern layer
	layers        []render.Layer  // Scratch, rebuilt per frame

	fps        int
	strategy   terminal.DiffStrategy
	defaultApp string
	frame      uint64
	flash      int // Visual bell frames remaining
	quit       bool
	drag       drag
	bellFn     func()

	ctx    context.Context
	cancel context.CancelFunc

	infoMu sync.Mutex
	info   registry.RenderInfo

	cfgMu      sync.Mutex
	pendingCfg *config.Config
}

// New creates a desktop over an initialized terminal. ops may be
// shared with services that post desktop operations; nil allocates a
// private queue.
func New(term terminal.Terminal, ops *event.Queue, cfg config.Config) *Desktop {
	if ops == nil {
		ops = event.NewQueue()
	}
	w, h := term.Size()
	d := &Desktop{
		term:     term,
		mgr:      NewManager(w, h),
		comp:     render.NewCompositor(w, h),
		ops:      ops,
		theme:    theme.Default(),
		bindings: input.DefaultBindings(),
		width:    w,
		height:   h,
		fps:      parameter.DefaultFPS,
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.bg = render.NewSurface(w, h, d.theme.DesktopBg)
	d.applyConfig(cfg)
	return d
}

// SetDefaultApp names the app OpSpawn launches when the op carries no
// name (the new-window binding)
func (d *Desktop) SetDefaultApp(name string) { d.defaultApp = name }

// Ops returns the op queue for producers outside the render loop
func (d *Desktop) Ops() *event.Queue { return d.ops }

// Post implements registry.Host
func (d *Desktop) Post(op event.Op) { d.ops.Push(op) }

// SetBell installs the bell ringer Bell delegates to. Must be called
// before the run loop starts.
func (d *Desktop) SetBell(ring func()) { d.bellFn = ring }

// Bell implements registry.Host. Without a ringer it degrades to the
// visual flash.
func (d *Desktop) Bell() {
	if d.bellFn != nil {
		d.bellFn()
		return
	}
	d.ops.Push(event.Op{Kind: event.OpVisualBell})
}

// Render implements registry.Host
func (d *Desktop) Render() registry.RenderInfo {
	d.infoMu.Lock()
	defer d.infoMu.Unlock()
	return d.info
}

// QueueConfig stages a reloaded config and posts the reload op.
// Called from the watcher goroutine.
func (d *Desktop) QueueConfig(cfg config.Config) {
	d.cfgMu.Lock()
	d.pendingCfg = &cfg
	d.cfgMu.Unlock()
	d.ops.Push(event.Op{Kind: event.OpReloadConfig})
}

// Spawn creates a window for a registered app. Safe only on the
// render loop goroutine; use OpSpawn from anywhere else.
func (d *Desktop) Spawn(name string) *Window {
	factory, ok := registry.GetApp(name)
	if !ok {
		return nil
	}
	spec := factory(d)

	size := spec.Size
	if size.W < parameter.MinWindowWidth {
		size.W = parameter.DefaultWindowWidth
	}
	if size.H < parameter.MinWindowHeight {
		size.H = parameter.DefaultWindowHeight
	}

	w := &Window{
		ID:        uuid.New(),
		Title:     spec.Title,
		Bounds:    geom.Rect{W: size.W, H: size.H},
		surface:   render.NewSurface(size.W, size.H, d.theme.WindowBg),
		tree:      layout.NewTree(spec.Root),
		handleKey: spec.HandleKey,
	}
	w.chrome.Focused = d.theme.ChromeFocused()
	w.chrome.Blurred = d.theme.ChromeBlurred()
	d.mgr.Add(w)

	if spec.Run != nil {
		ctx, cancel := context.WithCancel(d.ctx)
		w.cancel = cancel
		id := w.ID
		run := spec.Run
		core.Go(func() { run(ctx, id) })
	}
	return w
}

// Close tears down a window and its app goroutine
func (d *Desktop) Close(id uuid.UUID) {
	if w := d.mgr.Remove(id); w != nil && w.cancel != nil {
		w.cancel()
	}
}

// Quitting reports whether an OpQuit was applied
func (d *Desktop) Quitting() bool { return d.quit }

// Manager exposes the window manager to the run loop and tests
func (d *Desktop) Manager() *Manager { return d.mgr }

// Present renders one frame: drain ops, paint dirty windows,
// composite, flush. Synchronous; returns after the terminal write
// completes or fails. A failed write abandons the frame, leaving the
// front buffer untouched so the next frame retries the difference.
func (d *Desktop) Present() (terminal.FrameStats, error) {
	start := time.Now()

	for _, op := range d.ops.Consume() {
		d.apply(op)
	}

	dirty := d.paintWindows()
	geometry := d.mgr.ConsumeGeometryDirty()
	if geometry {
		d.comp.Invalidate()
	}

	// Idle frame: nothing changed anywhere, skip composition and
	// emit nothing
	if !dirty && !geometry && d.frame > 0 {
		d.recordInfo(terminal.FrameStats{}, time.Since(start))
		return terminal.FrameStats{}, nil
	}

	d.comp.Composite(d.buildLayers())

	stats, err := d.term.Flush(d.comp.Back(), d.width, d.height)
	d.frame++
	d.recordInfo(stats, time.Since(start))
	if err != nil {
		return stats, err
	}
	return stats, nil
}

// Resize adapts the pipeline to a new terminal size
func (d *Desktop) Resize(width, height int) {
	if width == d.width && height == d.height {
		return
	}
	d.width = width
	d.height = height
	d.comp.Resize(width, height)
	d.bg.Resize(width, height)
	d.mgr.SetArea(width, height)
}

// Stop cancels app goroutines. The terminal stays up; the owner
// finalizes it.
func (d *Desktop) Stop() {
	d.cancel()
}

// paintWindows runs layout and paint for every window needing it,
// plus the background pattern layer. Reports whether any surface
// changed.
func (d *Desktop) paintWindows() bool {
	dirty := d.paintBackground()

	focused := d.mgr.Focused()
	for _, w := range d.mgr.Windows() {
		if w.Minimized {
			continue
		}

		w.surface.Resize(w.Bounds.W, w.Bounds.H)
		cleared := w.surface.ClearIfNeeded()

		w.chrome.Paint(w.surface, w.Title, w == focused)

		content := w.ContentRect()
		needPaint := w.tree.Layout(content) || cleared || w.repaint
		w.repaint = false
		if needPaint && !content.Empty() {
			p := layout.NewPainter(w.surface, content, d.theme.Style())
			w.tree.Paint(&p)
		}

		if w.surface.Dirty() {
			dirty = true
		}
	}
	return dirty
}

// paintBackground refreshes the desktop pattern layer when flashed or
// cleared. The dot grid makes compositor regressions visible: any
// stale cell breaks the pattern.
func (d *Desktop) paintBackground() bool {
	bg := d.theme.DesktopBg
	if d.flash > 0 {
		d.flash--
		bg = d.theme.Accent
	}
	d.bg.SetBackground(bg)
	if !d.bg.ClearIfNeeded() {
		return d.bg.Dirty()
	}
	dot := d.theme.DesktopDot
	if d.flash > 0 {
		dot = bg
	}
	for y := parameter.DesktopDotStep / 2; y < d.height; y += parameter.DesktopDotStep {
		for x := parameter.DesktopDotStep; x < d.width; x += parameter.DesktopDotStep * 2 {
			d.bg.Set(x, y, '·', dot, bg)
		}
	}
	return true
}

// buildLayers assembles the bottom-to-top layer list: background
// first, then windows in z-order
func (d *Desktop) buildLayers() []render.Layer {
	d.layers = d.layers[:0]
	d.layers = append(d.layers, render.Layer{
		Surface: d.bg,
		Bounds:  geom.Rect{W: d.width, H: d.height},
	})
	for _, w := range d.mgr.Windows() {
		if w.Minimized {
			continue
		}
		d.layers = append(d.layers, render.Layer{Surface: w.surface, Bounds: w.Bounds})
	}
	return d.layers
}

func (d *Desktop) recordInfo(stats terminal.FrameStats, dur time.Duration) {
	d.infoMu.Lock()
	d.info = registry.RenderInfo{
		Frame:     d.frame,
		Stats:     stats,
		FrameTime: dur,
		Strategy:  d.strategy,
		Windows:   len(d.mgr.Windows()),
		FPS:       d.fps,
	}
	d.infoMu.Unlock()
}

// apply executes one queued op. Runs on the render loop between
// frames; free to mutate any window state.
func (d *Desktop) apply(op event.Op) {
	target := op.Window
	if target == uuid.Nil {
		if f := d.mgr.Focused(); f != nil {
			target = f.ID
		}
	}

	switch op.Kind {
	case event.OpSpawn:
		name := op.Name
		if name == "" {
			name = d.defaultApp
		}
		d.Spawn(name)
	case event.OpClose:
		d.Close(target)
	case event.OpRaise:
		d.mgr.Raise(target)
	case event.OpFocusNext:
		d.mgr.FocusNext()
	case event.OpFocusPrev:
		d.mgr.FocusPrev()
	case event.OpMinimize:
		d.mgr.Minimize(target)
	case event.OpRestore:
		d.mgr.Restore(target)
	case event.OpToggleMaximize:
		d.mgr.ToggleMaximize(target)
	case event.OpMove:
		d.mgr.MoveBy(target, op.DX, op.DY)
	case event.OpResize:
		d.mgr.ResizeBy(target, op.DX, op.DY, op.DW, op.DH)
	case event.OpSetBounds:
		if w := d.mgr.Get(target); w != nil {
			w.Bounds = op.Bounds
			d.mgr.geometryDirty = true
		}
	case event.OpInvalidate:
		if w := d.mgr.Get(target); w != nil {
			w.repaint = true
		}
	case event.OpSetTitle:
		if w := d.mgr.Get(target); w != nil && w.Title != op.Name {
			w.Title = op.Name
		}
	case event.OpVisualBell:
		d.flash = 2
	case event.OpReloadConfig:
		d.cfgMu.Lock()
		cfg := d.pendingCfg
		d.pendingCfg = nil
		d.cfgMu.Unlock()
		if cfg != nil {
			d.applyConfig(*cfg)
		}
	case event.OpQuit:
		d.quit = true
	}
}

// applyConfig installs runtime-changeable settings: pacing, diff
// strategy, bindings, theme
func (d *Desktop) applyConfig(cfg config.Config) {
	if cfg.FPS >= parameter.MinFPS && cfg.FPS <= parameter.MaxFPS {
		d.fps = cfg.FPS
	}
	if s, ok := terminal.ParseDiffStrategy(cfg.DiffStrategy); ok {
		d.term.SetDiffStrategy(s)
		d.strategy = s
	}
	if cfg.Bindings != nil {
		// Rebuild from defaults so removed overrides revert
		b := input.DefaultBindings()
		if err := b.Apply(cfg.Bindings); err == nil {
			d.bindings = b
		}
	}

	th := theme.Default()
	if cfg.Theme != "" {
		if loaded, err := theme.Load(cfg.Theme); err == nil {
			th = loaded
		}
	}
	d.setTheme(th)
}

// setTheme restyles the background layer and every window's chrome
func (d *Desktop) setTheme(th theme.Theme) {
	d.theme = th
	d.bg.SetBackground(th.DesktopBg)
	for _, w := range d.mgr.Windows() {
		w.chrome.Focused = th.ChromeFocused()
		w.chrome.Blurred = th.ChromeBlurred()
		w.surface.SetBackground(th.WindowBg)
	}
}

// FPS returns the configured frame rate
func (d *Desktop) FPS() int { return d.fps }

// Bindings returns the active binding table
func (d *Desktop) Bindings() *input.Bindings { return d.bindings }
