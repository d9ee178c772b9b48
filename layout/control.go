package layout

import (
	"github.com/lixenwraith/termdesk/geom"
)

// NodeID is a non-owning handle into a Tree's node index.
// Zero means "not attached" and doubles as the root's parent marker.
type NodeID uint32

// Control is the capability set every layout node implements.
// The variant set is closed: Stack, Scroll, Text, Custom. New behavior
// composes these rather than adding subclasses.
type Control interface {
	// Measure computes the desired size under c, bottom-up.
	// Pure: no buffer writes. The result is cached until invalidated.
	Measure(c Constraints) geom.Size

	// Arrange assigns the final rectangle, top-down. Containers place
	// their children inside r.
	Arrange(r geom.Rect)

	// Paint draws this node only into p, which is already clipped to
	// the arranged rectangle. Children are painted by the tree walk.
	Paint(p *Painter)

	// Bounds returns the arranged rectangle
	Bounds() geom.Rect

	// Children returns contained controls in arrangement order
	Children() []Control

	base() *node
}

// node carries the per-control state shared by all variants.
// Embedding it closes the Control set to this package's types.
type node struct {
	tree   *Tree
	id     NodeID
	bounds geom.Rect

	measured   geom.Size
	measuredOK bool
	lastCons   Constraints
}

func (n *node) base() *node { return n }

// Bounds returns the arranged rectangle
func (n *node) Bounds() geom.Rect { return n.bounds }

// Invalidate drops the cached measurement on this node and every
// ancestor and schedules a layout pass. Ancestors are reached through
// the tree's parent index, never through back-pointers.
func (n *node) Invalidate() {
	n.measuredOK = false
	if n.tree != nil {
		n.tree.invalidateUp(n.id)
	}
}

// cachedMeasure runs f only when the constraints changed since the
// last valid measurement
func (n *node) cachedMeasure(c Constraints, f func(Constraints) geom.Size) geom.Size {
	if n.measuredOK && c == n.lastCons {
		return n.measured
	}
	n.measured = c.Constrain(f(c))
	n.lastCons = c
	n.measuredOK = true
	return n.measured
}

// adoptChild indexes a child added after the container joined a tree
func (n *node) adoptChild(c Control) {
	if n.tree != nil {
		n.tree.adopt(c, n.id)
		n.tree.dirty = true
	}
}

// Tree owns a control hierarchy and drives the measure, arrange, and
// paint passes. One tree per window; the window's render loop is the
// only caller during a frame.
type Tree struct {
	root   Control
	nodes  map[NodeID]Control
	parent map[NodeID]NodeID
	nextID NodeID

	dirty     bool
	arranged  bool
	lastAvail geom.Rect
}

// NewTree indexes root and its current subtree
func NewTree(root Control) *Tree {
	t := &Tree{
		root:   root,
		nodes:  make(map[NodeID]Control),
		parent: make(map[NodeID]NodeID),
		dirty:  true,
	}
	t.adopt(root, 0)
	return t
}

// Root returns the tree's root control
func (t *Tree) Root() Control { return t.root }

// adopt assigns IDs to c and its subtree and records parent links
func (t *Tree) adopt(c Control, parent NodeID) {
	t.nextID++
	n := c.base()
	n.tree = t
	n.id = t.nextID
	t.nodes[n.id] = c
	if parent != 0 {
		t.parent[n.id] = parent
	}
	for _, ch := range c.Children() {
		t.adopt(ch, n.id)
	}
}

// invalidateUp clears measurement caches from id to the root
func (t *Tree) invalidateUp(id NodeID) {
	t.dirty = true
	for id != 0 {
		if c, ok := t.nodes[id]; ok {
			c.base().measuredOK = false
		}
		id = t.parent[id]
	}
}

// Dirty reports whether a layout pass is pending
func (t *Tree) Dirty() bool { return t.dirty }

// Layout runs measure and arrange when a node is dirty or the
// available rectangle changed. Returns true when the tree must be
// repainted; false means the surface already holds current content.
func (t *Tree) Layout(avail geom.Rect) bool {
	if !t.dirty && t.arranged && avail == t.lastAvail {
		return false
	}
	t.root.Measure(Tight(geom.Size{W: avail.W, H: avail.H}))
	t.root.Arrange(avail)
	t.lastAvail = avail
	t.arranged = true
	t.dirty = false
	return true
}

// Paint walks the tree, clipping every control to its arranged
// rectangle intersected with the ancestor clip chain. Zero-size and
// fully clipped subtrees are skipped without touching the surface.
func (t *Tree) Paint(p *Painter) {
	paintControl(t.root, p)
}

func paintControl(c Control, p *Painter) {
	cp := p.Clipped(c.Bounds())
	if cp.Empty() {
		return
	}
	c.Paint(&cp)
	for _, ch := range c.Children() {
		paintControl(ch, &cp)
	}
}
