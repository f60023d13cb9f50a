package spacing

import (
	"sort"

	"magnet/geometry"
)

// Group is a set of boxes sharing an alignment line. A Horizontal group
// shares a horizontal line (a y coordinate: tops, vertical centers or
// bottoms); a Vertical group shares a vertical line (lefts, horizontal
// centers or rights).
type Group struct {
	Axis     geometry.Axis
	Anchor   geometry.Anchor
	Position float64 // mean anchor coordinate of the members
	IDs      []string
}

// DetectAlignmentGroups finds sets of at least MinGroupSize boxes whose
// anchor coordinates agree within the tolerance, for every combination
// of axis and anchor. Each box joins at most one group per combination:
// the first reference box whose anchor it matches claims it.
func (d *Detector) DetectAlignmentGroups(boxes []geometry.Box) []Group {
	var groups []Group
	for _, axis := range []geometry.Axis{geometry.Horizontal, geometry.Vertical} {
		for _, anchor := range []geometry.Anchor{geometry.AnchorStart, geometry.AnchorCenter, geometry.AnchorEnd} {
			groups = append(groups, d.groupsFor(boxes, axis, anchor)...)
		}
	}
	return groups
}

func (d *Detector) groupsFor(boxes []geometry.Box, axis geometry.Axis, anchor geometry.Anchor) []Group {
	used := make([]bool, len(boxes))
	var groups []Group

	for i := range boxes {
		if used[i] {
			continue
		}
		ref := anchorCoord(boxes[i].Rect, axis, anchor)
		members := []int{i}
		for j := i + 1; j < len(boxes); j++ {
			if used[j] {
				continue
			}
			if geometry.NearlyEqual(anchorCoord(boxes[j].Rect, axis, anchor), ref, d.Tolerance) {
				members = append(members, j)
			}
		}
		if len(members) < d.MinGroupSize {
			continue
		}

		ids := make([]string, len(members))
		coords := make([]float64, len(members))
		for k, idx := range members {
			used[idx] = true
			ids[k] = boxes[idx].ID
			coords[k] = anchorCoord(boxes[idx].Rect, axis, anchor)
		}
		sort.Strings(ids)
		groups = append(groups, Group{
			Axis:     axis,
			Anchor:   anchor,
			Position: geometry.Mean(coords),
			IDs:      ids,
		})
	}
	return groups
}

// anchorCoord returns the coordinate of a box's anchor on the given
// axis: for Horizontal the top, vertical center or bottom (a y value),
// for Vertical the left, horizontal center or right (an x value).
func anchorCoord(r geometry.Rect, axis geometry.Axis, anchor geometry.Anchor) float64 {
	if axis == geometry.Horizontal {
		switch anchor {
		case geometry.AnchorStart:
			return r.Top
		case geometry.AnchorEnd:
			return r.Bottom
		default:
			return r.CenterY()
		}
	}
	switch anchor {
	case geometry.AnchorStart:
		return r.Left
	case geometry.AnchorEnd:
		return r.Right
	default:
		return r.CenterX()
	}
}
