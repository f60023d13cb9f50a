package spacing

import (
	"sort"

	"magnet/geometry"
)

// Placement is a computed new coordinate for one box: the left edge for
// horizontal operations, the top edge for vertical ones.
type Placement struct {
	ID       string
	Position float64
}

// Distribute spreads the boxes evenly along the axis, deriving the
// spacing from the space left over between the first and last box:
// (span - sum of extents) / (n - 1). The first box in axis order stays
// put and anchors the run; placements are returned for every other box.
// Fewer than two boxes need no distribution.
func Distribute(boxes []geometry.Box, axis geometry.Axis) []Placement {
	sorted := sortByAxis(boxes, axis)
	if len(sorted) < 2 {
		return nil
	}

	span := far(sorted[len(sorted)-1].Rect, axis) - near(sorted[0].Rect, axis)
	total := 0.0
	for _, b := range sorted {
		total += extent(b.Rect, axis)
	}
	spacing := (span - total) / float64(len(sorted)-1)
	return walk(sorted, axis, spacing)
}

// DistributeBy spreads the boxes along the axis with an explicit gap
// between consecutive boxes. The first box in axis order anchors the
// run; placements are returned for every other box.
func DistributeBy(boxes []geometry.Box, axis geometry.Axis, spacing float64) []Placement {
	sorted := sortByAxis(boxes, axis)
	if len(sorted) < 2 {
		return nil
	}
	return walk(sorted, axis, spacing)
}

// walk accumulates positions along the sorted run: each box starts one
// extent plus one gap after the previous box's new position.
func walk(sorted []geometry.Box, axis geometry.Axis, spacing float64) []Placement {
	placements := make([]Placement, 0, len(sorted)-1)
	pos := near(sorted[0].Rect, axis)
	for i := 1; i < len(sorted); i++ {
		pos += extent(sorted[i-1].Rect, axis) + spacing
		placements = append(placements, Placement{ID: sorted[i].ID, Position: pos})
	}
	return placements
}

// Align lines the boxes up on a shared alignment line: the mean of their
// anchor coordinates on the given axis. A Horizontal alignment moves
// boxes vertically so their tops, vertical centers or bottoms coincide;
// a Vertical alignment moves them horizontally. The returned positions
// are the new top (Horizontal) or left (Vertical) coordinates for every
// box; the orthogonal coordinate is untouched.
func Align(boxes []geometry.Box, axis geometry.Axis, anchor geometry.Anchor) []Placement {
	if len(boxes) == 0 {
		return nil
	}
	coords := make([]float64, len(boxes))
	for i, b := range boxes {
		coords[i] = anchorCoord(b.Rect, axis, anchor)
	}
	target := geometry.Mean(coords)

	placements := make([]Placement, len(boxes))
	for i, b := range boxes {
		size := b.Rect.Height()
		if axis == geometry.Vertical {
			size = b.Rect.Width()
		}
		pos := target
		switch anchor {
		case geometry.AnchorCenter:
			pos = target - size/2
		case geometry.AnchorEnd:
			pos = target - size
		}
		placements[i] = Placement{ID: b.ID, Position: pos}
	}
	return placements
}

// sortByAxis returns the boxes ordered by their leading edge along the
// axis, leaving the input untouched.
func sortByAxis(boxes []geometry.Box, axis geometry.Axis) []geometry.Box {
	sorted := make([]geometry.Box, len(boxes))
	copy(sorted, boxes)
	sort.Slice(sorted, func(i, j int) bool {
		return near(sorted[i].Rect, axis) < near(sorted[j].Rect, axis)
	})
	return sorted
}
