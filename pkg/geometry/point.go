// Package geometry provides the integer pixel-space primitives the bar
// is laid out in: points, axis-aligned rectangles, edge alignment, and
// fill directions.
package geometry

import "fmt"

// Point is a pixel coordinate or extent on the canvas. Coordinates are
// never negative; subtraction saturates at zero instead of underflowing.
type Point struct {
	X int
	Y int
}

// Pt constructs a Point, clamping negative components to zero.
func Pt(x, y int) Point {
	return Point{X: clampNonNeg(x), Y: clampNonNeg(y)}
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference, saturating at zero.
func (p Point) Sub(q Point) Point {
	return Point{X: clampNonNeg(p.X - q.X), Y: clampNonNeg(p.Y - q.Y)}
}

// Scale multiplies both components by f and rounds, clamping at zero.
func (p Point) Scale(f float64) Point {
	return Pt(roundInt(float64(p.X)*f), roundInt(float64(p.Y)*f))
}

// Min returns the component-wise minimum of two points.
func (p Point) Min(q Point) Point {
	return Point{X: min(p.X, q.X), Y: min(p.Y, q.Y)}
}

// Max returns the component-wise maximum of two points.
func (p Point) Max(q Point) Point {
	return Point{X: max(p.X, q.X), Y: max(p.Y, q.Y)}
}

// LessEq reports whether both components of p are <= those of q.
//
// Points are only partially ordered: !p.LessEq(q) does not imply
// q.LessEq(p), since the components may disagree.
func (p Point) LessEq(q Point) bool {
	return p.X <= q.X && p.Y <= q.Y
}

// IsZero reports whether both components are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// ExtendTo returns the rectangle spanned by p and q.
func (p Point) ExtendTo(q Point) Rect {
	return NewRect(p, q)
}

func (p Point) String() string {
	return fmt.Sprintf("%d x %d", p.X, p.Y)
}

func clampNonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func roundInt(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v + 0.5)
}
