// Package spacing infers layout structure from a set of element
// bounding boxes: recurring gap sizes, shared alignment lines and grid
// arrangements. Unlike the per-frame alignment engine it runs once per
// selection change over the full candidate set, producing ranked
// suggestions the editor can surface ("distribute evenly", "align
// lefts").
package spacing

import (
	"fmt"
	"sort"

	"magnet/geometry"
)

// Detector holds the tolerances used when clustering coordinates and
// gaps. The zero value is unusable; start from NewDetector.
type Detector struct {
	Tolerance    float64 // absolute clustering tolerance in canvas units
	MinGroupSize int     // smallest reported alignment group
}

// NewDetector returns a detector with the editor's default tolerances.
func NewDetector() *Detector {
	return &Detector{Tolerance: 2, MinGroupSize: 3}
}

// Pattern is a recurring gap between consecutive elements along one
// axis. Confidence reflects how uniform the member gaps are: 1 for
// perfectly equal gaps, falling toward 0 as their spread approaches
// their mean.
type Pattern struct {
	Spacing    float64
	Count      int
	Pairs      [][2]string // the (left, right) or (top, bottom) id pairs
	Confidence float64     // in [0, 1]
	Primary    bool        // member of the most frequent pattern(s)
}

// Suggestion is a ranked layout action derived from detected patterns.
type Suggestion struct {
	Axis       geometry.Axis
	Spacing    float64
	Count      int
	Confidence float64
	Priority   float64
	Label      string
}

// Analysis is the result of AnalyzeSpacing: the spacing patterns per
// axis plus ranked suggestions.
type Analysis struct {
	Horizontal  []Pattern
	Vertical    []Pattern
	Suggestions []Suggestion
}

// AnalyzeSpacing detects recurring gaps between the boxes along both
// axes. Boxes are sorted along the axis and consecutive gaps measured
// edge to edge; overlapping pairs (negative gaps) are discarded. Gap
// values within the tolerance of each other cluster into one pattern,
// and the most frequent patterns are flagged primary.
func (d *Detector) AnalyzeSpacing(boxes []geometry.Box) Analysis {
	a := Analysis{
		Horizontal: d.axisPatterns(boxes, geometry.Horizontal),
		Vertical:   d.axisPatterns(boxes, geometry.Vertical),
	}
	a.Suggestions = rankSuggestions(a.Horizontal, a.Vertical)
	return a
}

// axisPatterns finds the gap patterns along one axis. Horizontal
// patterns are gaps along x, vertical patterns gaps along y.
func (d *Detector) axisPatterns(boxes []geometry.Box, axis geometry.Axis) []Pattern {
	if len(boxes) < 2 {
		return nil
	}
	sorted := make([]geometry.Box, len(boxes))
	copy(sorted, boxes)
	sort.Slice(sorted, func(i, j int) bool {
		return near(sorted[i].Rect, axis) < near(sorted[j].Rect, axis)
	})

	type gapGroup struct {
		rep   float64 // representative value: the first gap seen
		gaps  []float64
		pairs [][2]string
	}
	var groups []*gapGroup

	for i := 0; i < len(sorted)-1; i++ {
		gap := near(sorted[i+1].Rect, axis) - far(sorted[i].Rect, axis)
		if gap < 0 {
			continue // overlapping neighbors carry no spacing information
		}
		pair := [2]string{sorted[i].ID, sorted[i+1].ID}

		placed := false
		for _, g := range groups {
			if geometry.NearlyEqual(gap, g.rep, d.Tolerance) {
				g.gaps = append(g.gaps, gap)
				g.pairs = append(g.pairs, pair)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, &gapGroup{rep: gap, gaps: []float64{gap}, pairs: [][2]string{pair}})
		}
	}

	var patterns []Pattern
	maxCount := 0
	for _, g := range groups {
		if len(g.gaps) < 2 {
			continue
		}
		mean := geometry.Mean(g.gaps)
		confidence := 1.0
		if mean > 0 {
			confidence = 1 - min(1, geometry.StdDev(g.gaps)/mean)
		}
		patterns = append(patterns, Pattern{
			Spacing:    mean,
			Count:      len(g.gaps),
			Pairs:      g.pairs,
			Confidence: confidence,
		})
		if len(g.gaps) > maxCount {
			maxCount = len(g.gaps)
		}
	}
	for i := range patterns {
		patterns[i].Primary = patterns[i].Count == maxCount
	}
	return patterns
}

// rankSuggestions turns the detected patterns into suggestions ordered
// by descending priority (confidence weighted by pattern size). Ties
// may break arbitrarily.
func rankSuggestions(horizontal, vertical []Pattern) []Suggestion {
	var out []Suggestion
	add := func(axis geometry.Axis, patterns []Pattern) {
		for _, p := range patterns {
			if !p.Primary {
				continue
			}
			out = append(out, Suggestion{
				Axis:       axis,
				Spacing:    p.Spacing,
				Count:      p.Count,
				Confidence: p.Confidence,
				Priority:   p.Confidence * float64(p.Count),
				Label: fmt.Sprintf("equal %s spacing of %.0fpx across %d gaps",
					axis, p.Spacing, p.Count),
			})
		}
	}
	add(geometry.Horizontal, horizontal)
	add(geometry.Vertical, vertical)

	sort.Slice(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// near returns the leading edge of a rect along the axis (left or top).
func near(r geometry.Rect, axis geometry.Axis) float64 {
	if axis == geometry.Horizontal {
		return r.Left
	}
	return r.Top
}

// far returns the trailing edge of a rect along the axis (right or bottom).
func far(r geometry.Rect, axis geometry.Axis) float64 {
	if axis == geometry.Horizontal {
		return r.Right
	}
	return r.Bottom
}

// extent returns the size of a rect along the axis.
func extent(r geometry.Rect, axis geometry.Axis) float64 {
	return far(r, axis) - near(r, axis)
}
