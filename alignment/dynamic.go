package alignment

import (
	"sort"

	"magnet/geometry"
	"magnet/spacing"
)

// GenerateDynamicGuides derives guide lines from the edges and center
// lines of elements near the viewport, so a dragged element can snap to
// its neighbors and not only to manual guides. Candidates come from a
// spatial index query over the viewport expanded by the configured
// search margin, keeping the work proportional to local density rather
// than document size. The moving element is excluded from the result.
func (e *Engine) GenerateDynamicGuides(movingID string, viewport geometry.Rect) []GuideLine {
	ids := e.index.SearchRect(viewport.Expand(e.cfg.SearchMargin))
	sort.Strings(ids) // deterministic guide order

	guides := make([]GuideLine, 0, len(ids)*6)
	for _, id := range ids {
		if id == movingID {
			continue
		}
		el, ok := e.elements[id]
		if !ok {
			continue
		}
		b := el.Bounds()
		guides = append(guides,
			GuideLine{ID: guideID(id, "left"), Orientation: geometry.Vertical, Position: b.Left, Kind: GuideEdge, Visible: true},
			GuideLine{ID: guideID(id, "center-x"), Orientation: geometry.Vertical, Position: b.CenterX(), Kind: GuideCenter, Visible: true},
			GuideLine{ID: guideID(id, "right"), Orientation: geometry.Vertical, Position: b.Right, Kind: GuideEdge, Visible: true},
			GuideLine{ID: guideID(id, "top"), Orientation: geometry.Horizontal, Position: b.Top, Kind: GuideEdge, Visible: true},
			GuideLine{ID: guideID(id, "center-y"), Orientation: geometry.Horizontal, Position: b.CenterY(), Kind: GuideCenter, Visible: true},
			GuideLine{ID: guideID(id, "bottom"), Orientation: geometry.Horizontal, Position: b.Bottom, Kind: GuideEdge, Visible: true},
		)
	}
	return guides
}

// DetectEqualSpacing analyzes the spacing patterns of the elements in
// and around the viewport. The candidate set is restricted through the
// spatial index, turning the otherwise quadratic all-pairs comparison
// into work proportional to what is actually on screen.
func (e *Engine) DetectEqualSpacing(viewport geometry.Rect) spacing.Analysis {
	ids := e.index.SearchRect(viewport.Expand(e.cfg.SearchMargin))
	boxes := make([]geometry.Box, 0, len(ids))
	for _, id := range ids {
		if el, ok := e.elements[id]; ok {
			boxes = append(boxes, el.Box())
		}
	}
	return spacing.NewDetector().AnalyzeSpacing(boxes)
}
