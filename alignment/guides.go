// Package alignment implements magnetic snapping of dragged canvas
// elements against guide lines. A per-frame drag handler proposes a
// position, the engine measures the element's alignment points against
// nearby guides and returns a smoothly attracted position instead of a
// hard snap, so the element glides onto the guide rather than jumping.
package alignment

import (
	"fmt"

	"magnet/geometry"
)

// GuideKind describes where a guide line came from.
type GuideKind int

const (
	GuideManual GuideKind = iota // placed by the user
	GuideAuto                    // derived automatically
	GuideCenter                  // an element's center line
	GuideEdge                    // an element's edge
)

// String returns the string representation of a GuideKind.
func (k GuideKind) String() string {
	switch k {
	case GuideManual:
		return "manual"
	case GuideAuto:
		return "auto"
	case GuideCenter:
		return "center"
	case GuideEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// GuideLine is a horizontal or vertical reference line elements snap to.
// A horizontal guide sits at y = Position, a vertical guide at
// x = Position. Invisible guides are skipped by the engine.
type GuideLine struct {
	ID          string
	Orientation geometry.Axis
	Position    float64
	Kind        GuideKind
	Visible     bool
}

// PointRole identifies which of an element's nine alignment points a
// point is: the center, one of the four corners, or one of the four edge
// midpoints.
type PointRole int

const (
	RoleCenter PointRole = iota
	RoleCorner
	RoleEdgeTop
	RoleEdgeRight
	RoleEdgeBottom
	RoleEdgeLeft
)

// String returns the string representation of a PointRole.
func (r PointRole) String() string {
	switch r {
	case RoleCenter:
		return "center"
	case RoleCorner:
		return "corner"
	case RoleEdgeTop:
		return "edge-top"
	case RoleEdgeRight:
		return "edge-right"
	case RoleEdgeBottom:
		return "edge-bottom"
	case RoleEdgeLeft:
		return "edge-left"
	default:
		return "unknown"
	}
}

// AlignmentPoint is a single snappable point of an element.
type AlignmentPoint struct {
	X, Y      float64
	ElementID string
	Role      PointRole
}

// alignmentPoints returns the element's nine alignment points with its
// top-left corner moved to pos: the center, the four corners and the
// four edge midpoints of its axis-aligned envelope. Rotated elements
// contribute the points of their rotated envelope.
func alignmentPoints(el geometry.Element, pos geometry.Point) [9]AlignmentPoint {
	moved := el
	moved.X, moved.Y = pos.X, pos.Y
	b := moved.Bounds()
	cx, cy := b.CenterX(), b.CenterY()

	return [9]AlignmentPoint{
		{X: cx, Y: cy, ElementID: el.ID, Role: RoleCenter},
		{X: b.Left, Y: b.Top, ElementID: el.ID, Role: RoleCorner},
		{X: b.Right, Y: b.Top, ElementID: el.ID, Role: RoleCorner},
		{X: b.Right, Y: b.Bottom, ElementID: el.ID, Role: RoleCorner},
		{X: b.Left, Y: b.Bottom, ElementID: el.ID, Role: RoleCorner},
		{X: cx, Y: b.Top, ElementID: el.ID, Role: RoleEdgeTop},
		{X: b.Right, Y: cy, ElementID: el.ID, Role: RoleEdgeRight},
		{X: cx, Y: b.Bottom, ElementID: el.ID, Role: RoleEdgeBottom},
		{X: b.Left, Y: cy, ElementID: el.ID, Role: RoleEdgeLeft},
	}
}

// guideID builds the id of a dynamically generated guide.
func guideID(elementID, part string) string {
	return fmt.Sprintf("%s:%s", elementID, part)
}
