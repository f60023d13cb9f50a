package alignment

import (
	"math"

	"magnet/geometry"
)

// Curve selects the falloff of magnetic strength with distance.
type Curve int

const (
	CurveLinear Curve = iota
	CurveQuadratic
	CurveCubic
	CurveExponential
)

// String returns the string representation of a Curve.
func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurveQuadratic:
		return "quadratic"
	case CurveCubic:
		return "cubic"
	case CurveExponential:
		return "exponential"
	default:
		return "unknown"
	}
}

// Curves lists all falloff curves, in a stable order.
var Curves = []Curve{CurveLinear, CurveQuadratic, CurveCubic, CurveExponential}

// Strength returns the magnetic pull in [0, 1] for a point at the given
// distance from a guide. It is 1 at distance 0, falls monotonically with
// distance, and is exactly 0 at or beyond the threshold, so the pull
// always hands the element back smoothly at the edge of the snap zone.
// The exponential curve is normalized to reach 1 at distance 0 like the
// others.
func Strength(distance, threshold float64, curve Curve) float64 {
	if threshold <= 0 || distance >= threshold {
		return 0
	}
	if distance < 0 {
		distance = 0
	}
	r := distance / threshold
	switch curve {
	case CurveQuadratic:
		return (1 - r) * (1 - r)
	case CurveCubic:
		return (1 - r) * (1 - r) * (1 - r)
	case CurveExponential:
		floor := math.Exp(-3)
		return geometry.Clamp((math.Exp(-3*r)-floor)/(1-floor), 0, 1)
	default:
		return 1 - r
	}
}
