// Package geom provides the rectangle math underneath the layout engines.
//
// All coordinates are page-relative millimeters with a top-left origin.
// Every function is pure: no state, no side effects, and defensive handling
// of empty inputs instead of errors.
package geom

import "math"

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Left returns the left edge X coordinate.
func (r Rect) Left() float64 { return r.X }

// Right returns the right edge X coordinate.
func (r Rect) Right() float64 { return r.X + r.Width }

// Top returns the top edge Y coordinate.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the bottom edge Y coordinate.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.Width * r.Height }

// ShorterSide returns the smaller of width and height.
func (r Rect) ShorterSide() float64 { return math.Min(r.Width, r.Height) }

// Intersects reports whether two rectangles share a positive-area region.
// Rectangles that merely touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// OverlapArea returns the area of the intersection of a and b, or 0 when the
// rectangles are disjoint. The result is symmetric in its arguments.
func OverlapArea(a, b Rect) float64 {
	w := math.Min(a.Right(), b.Right()) - math.Max(a.Left(), b.Left())
	h := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Top(), b.Top())
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// CenterDistance returns the Euclidean distance between rectangle centers.
func CenterDistance(a, b Rect) float64 {
	dx := a.CenterX() - b.CenterX()
	dy := a.CenterY() - b.CenterY()
	return math.Sqrt(dx*dx + dy*dy)
}

// Variance returns the population variance of values.
// Zero or one input yields 0.
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}
