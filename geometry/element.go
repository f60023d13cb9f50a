package geometry

import "math"

// Element is a snapshot of a canvas element as supplied by the element
// store: top-left position, size and rotation in degrees. The engine
// never mutates snapshots; it derives bounds from them.
type Element struct {
	ID       string
	X, Y     float64
	Width    float64
	Height   float64
	Rotation float64 // degrees, clockwise about the element center
}

// Rect returns the element's unrotated rectangle.
func (e Element) Rect() Rect {
	return NewRect(e.X, e.Y, e.Width, e.Height)
}

// Bounds returns the axis-aligned envelope of the element. For a rotated
// element the four corners are rotated about the center and the envelope
// of the rotated corners is returned.
func (e Element) Bounds() Rect {
	r := e.Rect()
	if math.Mod(e.Rotation, 360) == 0 {
		return r
	}
	rad := e.Rotation * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	c := r.Center()

	corners := [4]Point{
		{r.Left, r.Top},
		{r.Right, r.Top},
		{r.Right, r.Bottom},
		{r.Left, r.Bottom},
	}
	out := Rect{Left: math.Inf(1), Top: math.Inf(1), Right: math.Inf(-1), Bottom: math.Inf(-1)}
	for _, p := range corners {
		dx, dy := p.X-c.X, p.Y-c.Y
		x := c.X + dx*cos - dy*sin
		y := c.Y + dx*sin + dy*cos
		out.Left = math.Min(out.Left, x)
		out.Top = math.Min(out.Top, y)
		out.Right = math.Max(out.Right, x)
		out.Bottom = math.Max(out.Bottom, y)
	}
	return out
}

// Box returns the element's id paired with its axis-aligned envelope.
func (e Element) Box() Box {
	return Box{ID: e.ID, Rect: e.Bounds()}
}
