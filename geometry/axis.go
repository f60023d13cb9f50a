package geometry

// Axis identifies one of the two canvas axes. The convention follows the
// usual canvas-tool vocabulary: a Horizontal spacing pattern runs along x,
// while a Horizontal alignment group shares a horizontal line (a y
// coordinate). Each consumer documents which reading applies.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// String returns the string representation of an Axis.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Anchor selects which part of a box participates in an alignment:
// its leading edge, its center, or its trailing edge.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorCenter
	AnchorEnd
)

// String returns the string representation of an Anchor.
func (a Anchor) String() string {
	switch a {
	case AnchorStart:
		return "start"
	case AnchorCenter:
		return "center"
	case AnchorEnd:
		return "end"
	default:
		return "unknown"
	}
}
