// Package spatial provides a balanced bounding-box tree over canvas
// elements. It supports logarithmic range and radius queries and is the
// backbone of per-frame alignment checks: a drag handler asks for the
// elements near the pointer instead of scanning the whole document.
//
// The tree is an R-tree with R*-style insertion heuristics. Nodes live in
// an arena owned by the Tree and reference each other through integer
// handles, so the structure contains no cyclic pointers and can be reset
// wholesale by bulk loading.
package spatial

import (
	"fmt"
	"math"

	"magnet/geometry"
)

// noNode marks an empty handle (no parent, or an empty tree).
const noNode = int32(-1)

// Config controls the node fan-out of the tree.
type Config struct {
	MinEntries int // minimum entries per non-root node
	MaxEntries int // maximum entries per node before it splits
}

// DefaultConfig returns the fan-out used throughout the editor. The
// values assume documents of a few hundred to a few thousand elements.
func DefaultConfig() Config {
	return Config{MinEntries: 4, MaxEntries: 16}
}

// Validate checks that the configuration yields a well-formed tree.
func (c Config) Validate() error {
	if c.MinEntries < 2 {
		return fmt.Errorf("min entries must be at least 2, got %d", c.MinEntries)
	}
	if c.MinEntries > c.MaxEntries/2 {
		return fmt.Errorf("min entries (%d) must not exceed half of max entries (%d)",
			c.MinEntries, c.MaxEntries)
	}
	return nil
}

// entry is a slot in a node: a rectangle leading either to a child node
// (internal nodes) or to a stored element id (leaf nodes).
type entry struct {
	rect  geometry.Rect
	child int32  // handle of the child node; unused in leaves
	id    string // stored element id; unused in internal nodes
}

// node is a tree node in the arena. Leaves have height 1; an internal
// node is one higher than its children. A node's bounds are not stored on
// the node itself: they live in the parent's entry for it (the root's
// bounds are implicit).
type node struct {
	leaf    bool
	height  int
	parent  int32
	entries []entry
}

// Tree is an in-memory spatial index over element bounding boxes.
// It is not safe for concurrent use; the editor drives it from a single
// goroutine.
type Tree struct {
	cfg    Config
	nodes  []node
	free   []int32
	root   int32
	leaves map[string]int32 // element id -> handle of owning leaf
}

// New creates an empty tree with the default fan-out.
func New() *Tree {
	t, _ := NewWithConfig(DefaultConfig())
	return t
}

// NewWithConfig creates an empty tree with a custom fan-out.
func NewWithConfig(cfg Config) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tree{
		cfg:    cfg,
		root:   noNode,
		leaves: make(map[string]int32),
	}, nil
}

// Size returns the number of distinct element ids currently stored.
func (t *Tree) Size() int {
	return len(t.leaves)
}

// Height returns the height of the tree (0 when empty, 1 for a single
// leaf root).
func (t *Tree) Height() int {
	if t.root == noNode {
		return 0
	}
	return t.nodes[t.root].height
}

// Clear removes everything and releases the arena.
func (t *Tree) Clear() {
	t.nodes = nil
	t.free = nil
	t.root = noNode
	t.leaves = make(map[string]int32)
}

// Insert adds the element's bounding box to the index. Inserting an id
// that is already present replaces its previous bounds, so the tree
// always holds exactly one entry per id. Inverted rectangles are
// normalized before insertion.
func (t *Tree) Insert(id string, rect geometry.Rect) {
	if _, ok := t.leaves[id]; ok {
		t.Remove(id)
	}
	rect = normalize(rect)

	if t.root == noNode {
		t.root = t.alloc(node{leaf: true, height: 1, parent: noNode})
	}

	leaf := t.chooseLeaf(rect)
	t.nodes[leaf].entries = append(t.nodes[leaf].entries, entry{rect: rect, id: id})
	t.leaves[id] = leaf

	t.adjustUpward(leaf)
}

// Remove deletes the element from the index. Removing an id that was
// never inserted is a no-op.
func (t *Tree) Remove(id string) {
	leaf, ok := t.leaves[id]
	if !ok {
		return
	}
	delete(t.leaves, id)

	entries := t.nodes[leaf].entries
	for i := range entries {
		if entries[i].id == id {
			t.nodes[leaf].entries = append(entries[:i], entries[i+1:]...)
			break
		}
	}

	orphans := t.condense(leaf)
	t.shrinkRoot()
	for _, o := range orphans {
		t.Insert(o.id, o.rect)
	}
}

// Update replaces the element's stored bounds. Equivalent to Remove
// followed by Insert; updating an unknown id simply inserts it.
func (t *Tree) Update(id string, rect geometry.Rect) {
	t.Remove(id)
	t.Insert(id, rect)
}

// Bounds returns the stored bounding box for an id, if present.
func (t *Tree) Bounds(id string) (geometry.Rect, bool) {
	leaf, ok := t.leaves[id]
	if !ok {
		return geometry.Rect{}, false
	}
	for _, e := range t.nodes[leaf].entries {
		if e.id == id {
			return e.rect, true
		}
	}
	panic(fmt.Sprintf("spatial: leaf table points at node without entry for %q", id))
}

// Window is a query rectangle whose sides may individually be left open,
// enabling half-plane queries ("everything right of x"). The zero value
// is not useful; start from NewWindow and bound the sides you need.
type Window struct {
	Left, Top, Right, Bottom float64
}

// NewWindow returns a fully open window covering the whole plane.
func NewWindow() Window {
	return Window{
		Left:   math.Inf(-1),
		Top:    math.Inf(-1),
		Right:  math.Inf(1),
		Bottom: math.Inf(1),
	}
}

// WindowAround returns a window covering the given rectangle.
func WindowAround(r geometry.Rect) Window {
	return Window{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
}

// rect converts the window to a rectangle, reporting false for an
// inverted (empty) window.
func (w Window) rect() (geometry.Rect, bool) {
	if w.Left > w.Right || w.Top > w.Bottom {
		return geometry.Rect{}, false
	}
	return geometry.Rect{Left: w.Left, Top: w.Top, Right: w.Right, Bottom: w.Bottom}, true
}

// Search returns the ids of all elements whose stored bounds intersect
// the window. An inverted window yields no results. The result order is
// unspecified.
func (t *Tree) Search(w Window) []string {
	q, ok := w.rect()
	if !ok || t.root == noNode {
		return nil
	}

	var out []string
	var recurse func(h int32)
	recurse = func(h int32) {
		n := &t.nodes[h]
		for _, e := range n.entries {
			if !e.rect.Intersects(q) {
				continue
			}
			if n.leaf {
				out = append(out, e.id)
			} else {
				recurse(e.child)
			}
		}
	}
	recurse(t.root)
	return out
}

// SearchRect returns the ids of all elements intersecting the rectangle.
func (t *Tree) SearchRect(r geometry.Rect) []string {
	return t.Search(WindowAround(r))
}

// SearchRadius returns the ids of all elements whose center lies within
// radius of the given point. The enclosing square is used as a coarse
// prefilter before the exact distance check.
func (t *Tree) SearchRadius(center geometry.Point, radius float64) []string {
	if radius < 0 {
		return nil
	}
	square := geometry.Rect{
		Left:   center.X - radius,
		Top:    center.Y - radius,
		Right:  center.X + radius,
		Bottom: center.Y + radius,
	}

	var out []string
	for _, id := range t.SearchRect(square) {
		rect, _ := t.Bounds(id)
		if rect.Center().DistanceTo(center) <= radius {
			out = append(out, id)
		}
	}
	return out
}

// String returns a one-line summary of the tree.
func (t *Tree) String() string {
	return fmt.Sprintf("Tree[size=%d, height=%d, nodes=%d]",
		t.Size(), t.Height(), len(t.nodes)-len(t.free))
}

// alloc places a node in the arena, reusing freed slots.
func (t *Tree) alloc(n node) int32 {
	if k := len(t.free); k > 0 {
		h := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[h] = n
		return h
	}
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

// release returns a node slot to the free list.
func (t *Tree) release(h int32) {
	t.nodes[h] = node{parent: noNode}
	t.free = append(t.free, h)
}

// normalize swaps inverted sides so the rectangle is well-formed.
func normalize(r geometry.Rect) geometry.Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// nodeBounds computes the tight union of a node's entries. A node with
// no entries has no meaningful bounds; callers must not ask for them.
func (t *Tree) nodeBounds(h int32) geometry.Rect {
	entries := t.nodes[h].entries
	if len(entries) == 0 {
		panic("spatial: bounds of empty node")
	}
	bounds := entries[0].rect
	for _, e := range entries[1:] {
		bounds = bounds.Union(e.rect)
	}
	return bounds
}

// entryIndex locates the parent's entry for a child node.
func (t *Tree) entryIndex(parent, child int32) int {
	for i, e := range t.nodes[parent].entries {
		if e.child == child {
			return i
		}
	}
	panic("spatial: child missing from parent entry list")
}

// adjustUpward refreshes ancestor bounds after an insertion into the
// given leaf and splits any node that overflowed, growing the root if the
// split propagates all the way up.
func (t *Tree) adjustUpward(h int32) {
	for h != noNode {
		parent := t.nodes[h].parent

		var split int32 = noNode
		if len(t.nodes[h].entries) > t.cfg.MaxEntries {
			split = t.splitNode(h)
		}

		if parent == noNode {
			if split != noNode {
				t.growRoot(h, split)
			}
			return
		}

		i := t.entryIndex(parent, h)
		t.nodes[parent].entries[i].rect = t.nodeBounds(h)
		if split != noNode {
			t.nodes[parent].entries = append(t.nodes[parent].entries, entry{
				rect:  t.nodeBounds(split),
				child: split,
			})
			t.nodes[split].parent = parent
		}

		h = parent
	}
}

// growRoot replaces the root with a new internal node over the two halves
// of a root split.
func (t *Tree) growRoot(a, b int32) {
	root := t.alloc(node{
		leaf:   false,
		height: t.nodes[a].height + 1,
		parent: noNode,
		entries: []entry{
			{rect: t.nodeBounds(a), child: a},
			{rect: t.nodeBounds(b), child: b},
		},
	})
	t.nodes[a].parent = root
	t.nodes[b].parent = root
	t.root = root
}

// chooseLeaf descends from the root to the leaf best suited to receive
// the rectangle. At the level just above the leaves the child with the
// least overlap increase wins; higher up, the least area enlargement.
// Ties fall back to enlargement and then raw area.
func (t *Tree) chooseLeaf(rect geometry.Rect) int32 {
	h := t.root
	for !t.nodes[h].leaf {
		entries := t.nodes[h].entries
		childrenAreLeaves := t.nodes[entries[0].child].leaf

		best := 0
		bestOverlap := math.Inf(1)
		bestEnlarge := math.Inf(1)
		bestArea := math.Inf(1)
		for i, e := range entries {
			enlarge := e.rect.Enlargement(rect)
			area := e.rect.Area()

			overlap := 0.0
			if childrenAreLeaves {
				overlap = t.overlapIncrease(entries, i, rect)
			}

			if overlap < bestOverlap ||
				(overlap == bestOverlap && enlarge < bestEnlarge) ||
				(overlap == bestOverlap && enlarge == bestEnlarge && area < bestArea) {
				best, bestOverlap, bestEnlarge, bestArea = i, overlap, enlarge, area
			}
		}
		h = entries[best].child
	}
	return h
}

// overlapIncrease measures how much the overlap between entry i and its
// siblings would grow if the rectangle were added to entry i.
func (t *Tree) overlapIncrease(entries []entry, i int, rect geometry.Rect) float64 {
	before := entries[i].rect
	after := before.Union(rect)
	increase := 0.0
	for j, e := range entries {
		if j == i {
			continue
		}
		increase += after.IntersectionArea(e.rect) - before.IntersectionArea(e.rect)
	}
	return increase
}

// orphan is an element detached during tree condensation, waiting to be
// reinserted.
type orphan struct {
	id   string
	rect geometry.Rect
}

// condense walks from a leaf toward the root after a deletion. Underfull
// nodes are detached entirely and their items collected for reinsertion;
// this trades the classical surgical rebalance for simplicity, which
// holds up fine at editor-scale element counts.
func (t *Tree) condense(h int32) []orphan {
	var orphans []orphan
	for h != noNode {
		parent := t.nodes[h].parent
		if parent == noNode {
			break
		}

		if len(t.nodes[h].entries) < t.cfg.MinEntries {
			i := t.entryIndex(parent, h)
			entries := t.nodes[parent].entries
			t.nodes[parent].entries = append(entries[:i], entries[i+1:]...)
			orphans = append(orphans, t.collectSubtree(h)...)
		} else {
			i := t.entryIndex(parent, h)
			t.nodes[parent].entries[i].rect = t.nodeBounds(h)
		}
		h = parent
	}
	return orphans
}

// collectSubtree gathers every stored item beneath the node and releases
// the subtree's arena slots. Collected ids are removed from the leaf
// table; reinsertion re-adds them.
func (t *Tree) collectSubtree(h int32) []orphan {
	var out []orphan
	n := &t.nodes[h]
	if n.leaf {
		for _, e := range n.entries {
			out = append(out, orphan{id: e.id, rect: e.rect})
			delete(t.leaves, e.id)
		}
	} else {
		for _, e := range n.entries {
			out = append(out, t.collectSubtree(e.child)...)
		}
	}
	t.release(h)
	return out
}

// shrinkRoot collapses a root that lost all but one child, and drops an
// empty tree back to its zero state.
func (t *Tree) shrinkRoot() {
	for t.root != noNode {
		r := &t.nodes[t.root]
		if r.leaf {
			if len(r.entries) == 0 && len(t.leaves) == 0 {
				t.release(t.root)
				t.root = noNode
			}
			return
		}
		if len(r.entries) == 0 {
			t.release(t.root)
			t.root = noNode
			return
		}
		if len(r.entries) > 1 {
			return
		}
		child := r.entries[0].child
		t.release(t.root)
		t.nodes[child].parent = noNode
		t.root = child
	}
}
