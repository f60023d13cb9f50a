// Package geometry contains the fundamental value types shared by the
// alignment engine: axis-aligned rectangles, element snapshots and the
// scalar helpers the spatial index is built on.
package geometry

import "math"

// Rect is an axis-aligned rectangle in canvas coordinates.
// A well-formed Rect has Right >= Left and Bottom >= Top.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// NewRect builds a Rect from a top-left corner and a size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the x coordinate of the rectangle's center.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the y coordinate of the rectangle's center.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// Area returns the area of the rectangle.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Perimeter returns half the perimeter (width + height), the margin
// measure used when choosing a split axis.
func (r Rect) Perimeter() float64 { return r.Width() + r.Height() }

// Valid reports whether the rectangle is well-formed.
func (r Rect) Valid() bool {
	return r.Right >= r.Left && r.Bottom >= r.Top
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

// Intersects reports whether r and other overlap, including shared edges.
func (r Rect) Intersects(other Rect) bool {
	return r.Left <= other.Right && r.Right >= other.Left &&
		r.Top <= other.Bottom && r.Bottom >= other.Top
}

// IntersectionArea returns the area of the overlap between r and other,
// or 0 when they are disjoint.
func (r Rect) IntersectionArea(other Rect) float64 {
	w := math.Min(r.Right, other.Right) - math.Max(r.Left, other.Left)
	if w <= 0 {
		return 0
	}
	h := math.Min(r.Bottom, other.Bottom) - math.Max(r.Top, other.Top)
	if h <= 0 {
		return 0
	}
	return w * h
}

// Enlargement returns how much additional area r would need to also
// cover other.
func (r Rect) Enlargement(other Rect) float64 {
	return r.Union(other).Area() - r.Area()
}

// Contains reports whether the point lies inside the rectangle,
// boundary included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// Expand grows the rectangle by the given margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		Left:   r.Left - margin,
		Top:    r.Top - margin,
		Right:  r.Right + margin,
		Bottom: r.Bottom + margin,
	}
}

// Point represents a 2D coordinate in the canvas.
type Point struct {
	X, Y float64
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Box couples a rectangle with the id of the canvas element it belongs to.
type Box struct {
	ID   string
	Rect Rect
}
