package spatial

import (
	"math"
	"sort"

	"magnet/geometry"
)

// splitNode divides an overflowing node into two. The split axis is the
// one whose candidate splits have the smallest total perimeter; the split
// point along that axis minimizes the overlap between the two groups,
// with total area as the tie-breaker. The first group stays in place and
// the second moves to a freshly allocated sibling, whose handle is
// returned. The caller is responsible for hooking the sibling into the
// parent.
func (t *Tree) splitNode(h int32) int32 {
	n := &t.nodes[h]
	entries := n.entries

	byX := make([]entry, len(entries))
	byY := make([]entry, len(entries))
	copy(byX, entries)
	copy(byY, entries)
	sort.Slice(byX, func(i, j int) bool {
		if byX[i].rect.Left != byX[j].rect.Left {
			return byX[i].rect.Left < byX[j].rect.Left
		}
		return byX[i].rect.Right < byX[j].rect.Right
	})
	sort.Slice(byY, func(i, j int) bool {
		if byY[i].rect.Top != byY[j].rect.Top {
			return byY[i].rect.Top < byY[j].rect.Top
		}
		return byY[i].rect.Bottom < byY[j].rect.Bottom
	})

	sorted := byX
	if t.splitMargin(byY) < t.splitMargin(byX) {
		sorted = byY
	}

	split := t.chooseSplitIndex(sorted)

	first := make([]entry, split)
	second := make([]entry, len(sorted)-split)
	copy(first, sorted[:split])
	copy(second, sorted[split:])

	wasLeaf := n.leaf
	height := n.height
	t.nodes[h].entries = first

	sibling := t.alloc(node{leaf: wasLeaf, height: height, parent: noNode, entries: second})

	// Entries that moved need their back-references repointed: stored ids
	// for leaves, child parent handles for internal nodes.
	if wasLeaf {
		for _, e := range second {
			t.leaves[e.id] = sibling
		}
	} else {
		for _, e := range second {
			t.nodes[e.child].parent = sibling
		}
	}
	return sibling
}

// splitMargin sums the perimeters of both groups over every legal split
// position of the sorted entries. The axis with the smaller total margin
// produces the more square-ish, better-packed nodes.
func (t *Tree) splitMargin(sorted []entry) float64 {
	total := 0.0
	for split := t.cfg.MinEntries; split <= len(sorted)-t.cfg.MinEntries; split++ {
		a := unionOf(sorted[:split])
		b := unionOf(sorted[split:])
		total += a.Perimeter() + b.Perimeter()
	}
	return total
}

// chooseSplitIndex picks the split position with the least overlap
// between the two groups, breaking ties by total area.
func (t *Tree) chooseSplitIndex(sorted []entry) int {
	best := t.cfg.MinEntries
	bestOverlap := math.Inf(1)
	bestArea := math.Inf(1)
	for split := t.cfg.MinEntries; split <= len(sorted)-t.cfg.MinEntries; split++ {
		a := unionOf(sorted[:split])
		b := unionOf(sorted[split:])
		overlap := a.IntersectionArea(b)
		area := a.Area() + b.Area()
		if overlap < bestOverlap || (overlap == bestOverlap && area < bestArea) {
			best, bestOverlap, bestArea = split, overlap, area
		}
	}
	return best
}

// unionOf returns the tight bounds of a group of entries.
func unionOf(entries []entry) geometry.Rect {
	bounds := entries[0].rect
	for _, e := range entries[1:] {
		bounds = bounds.Union(e.rect)
	}
	return bounds
}
