package spatial

import (
	"fmt"
	"sort"
	"strings"
)

// Dump renders the tree structure as indented text, one node per line
// with its computed bounds. Intended for debugging and test failure
// output only; the format is not stable.
func (t *Tree) Dump() string {
	if t.root == noNode {
		return "(empty)\n"
	}
	var b strings.Builder
	t.dumpNode(&b, t.root, 0)
	return b.String()
}

func (t *Tree) dumpNode(b *strings.Builder, h int32, depth int) {
	n := &t.nodes[h]
	indent := strings.Repeat("  ", depth)
	bounds := t.nodeBounds(h)

	kind := "node"
	if n.leaf {
		kind = "leaf"
	}
	fmt.Fprintf(b, "%s%s #%d h=%d [%.1f,%.1f %.1fx%.1f]\n",
		indent, kind, h, n.height, bounds.Left, bounds.Top, bounds.Width(), bounds.Height())

	if n.leaf {
		ids := make([]string, 0, len(n.entries))
		for _, e := range n.entries {
			ids = append(ids, e.id)
		}
		sort.Strings(ids)
		fmt.Fprintf(b, "%s  ids: %s\n", indent, strings.Join(ids, " "))
		return
	}
	for _, e := range n.entries {
		t.dumpNode(b, e.child, depth+1)
	}
}

// checkInvariants validates the structural invariants of the tree:
// consistent heights (all leaves at the same depth), parent handles and
// the leaf lookup table, tight parent bounds, and node capacity. Nodes
// may fall below the minimum fill only as a remnant of bulk loading
// (the tail tiles of a packed level) or at the root. Violations are
// returned as errors so tests can report them; production code treats
// any of these as a programmer error.
func (t *Tree) checkInvariants() error {
	if t.root == noNode {
		if len(t.leaves) != 0 {
			return fmt.Errorf("empty tree with %d leaf table entries", len(t.leaves))
		}
		return nil
	}
	if t.nodes[t.root].parent != noNode {
		return fmt.Errorf("root %d has parent %d", t.root, t.nodes[t.root].parent)
	}

	seen := 0
	var walk func(h int32) error
	walk = func(h int32) error {
		n := &t.nodes[h]
		if len(n.entries) > t.cfg.MaxEntries {
			return fmt.Errorf("node %d has %d entries, max is %d", h, len(n.entries), t.cfg.MaxEntries)
		}
		if n.leaf {
			if n.height != 1 {
				return fmt.Errorf("leaf %d has height %d", h, n.height)
			}
			for _, e := range n.entries {
				owner, ok := t.leaves[e.id]
				if !ok {
					return fmt.Errorf("id %q stored in node %d but missing from leaf table", e.id, h)
				}
				if owner != h {
					return fmt.Errorf("id %q stored in node %d but leaf table says %d", e.id, h, owner)
				}
				seen++
			}
			return nil
		}
		if len(n.entries) == 0 {
			return fmt.Errorf("internal node %d has no entries", h)
		}
		for _, e := range n.entries {
			child := &t.nodes[e.child]
			if child.parent != h {
				return fmt.Errorf("node %d is child of %d but has parent %d", e.child, h, child.parent)
			}
			if child.height != n.height-1 {
				return fmt.Errorf("node %d at height %d has child %d at height %d",
					h, n.height, e.child, child.height)
			}
			if got := t.nodeBounds(e.child); got != e.rect {
				return fmt.Errorf("node %d holds stale bounds for child %d: have %+v, want %+v",
					h, e.child, e.rect, got)
			}
			if err := walk(e.child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(t.root); err != nil {
		return err
	}
	if seen != len(t.leaves) {
		return fmt.Errorf("tree stores %d items but leaf table has %d", seen, len(t.leaves))
	}
	return nil
}
