package geometry

import "fmt"

// Rect is an axis-aligned rectangle covering pixels [Min.X, Max.X) by
// [Min.Y, Max.Y). A placed Rect always has Min < Max on both axes; the
// zero value is the "unplaced" rect used by widgets before their first
// Resize. Degenerate rects are a layout bug and are rejected loudly at
// construction.
type Rect struct {
	Min Point
	Max Point
}

// NewRect constructs the rectangle spanned by two corner points, in any
// corner order. It panics if the result would have a zero-size axis.
func NewRect(a, b Point) Rect {
	r := Rect{
		Min: a.Min(b),
		Max: a.Max(b),
	}
	if r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y {
		panic(fmt.Sprintf("geometry: degenerate rect %v to %v", a, b))
	}
	return r
}

// RectFromSize constructs the rectangle at min with the given extent.
func RectFromSize(min, size Point) Rect {
	return NewRect(min, min.Add(size))
}

// Width returns the horizontal extent in pixels.
func (r Rect) Width() int {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent in pixels.
func (r Rect) Height() int {
	return r.Max.Y - r.Min.Y
}

// Size returns the extent of the rectangle as a Point.
func (r Rect) Size() Point {
	return Point{X: r.Width(), Y: r.Height()}
}

// Center returns the midpoint, rounded toward Min.
func (r Rect) Center() Point {
	return Point{
		X: (r.Min.X + r.Max.X) / 2,
		Y: (r.Min.Y + r.Max.Y) / 2,
	}
}

// IsZero reports whether r is the unplaced zero rect.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Largest returns the smallest rectangle containing both r and other.
func (r Rect) Largest(other Rect) Rect {
	return Rect{
		Min: r.Min.Min(other.Min),
		Max: r.Max.Max(other.Max),
	}
}

// Smallest returns the overlap of r and other when they intersect, or
// the gap rectangle between them when they are disjoint.
func (r Rect) Smallest(other Rect) Rect {
	return NewRect(r.Min.Max(other.Min), r.Max.Min(other.Max))
}

// Contains reports whether the point lies inside r, bounds inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return r.Min.X <= other.Min.X && r.Min.Y <= other.Min.Y &&
		r.Max.X >= other.Max.X && r.Max.Y >= other.Max.Y
}

// ShrinkTop returns r with n pixels removed from the top edge. The
// result may be empty; it never inverts.
func (r Rect) ShrinkTop(n int) Rect {
	r.Min.Y = min(r.Min.Y+n, r.Max.Y)
	return r
}

// ShrinkBottom returns r with n pixels removed from the bottom edge.
func (r Rect) ShrinkBottom(n int) Rect {
	r.Max.Y = max(r.Max.Y-n, r.Min.Y)
	return r
}

// ShrinkLeft returns r with n pixels removed from the left edge.
func (r Rect) ShrinkLeft(n int) Rect {
	r.Min.X = min(r.Min.X+n, r.Max.X)
	return r
}

// ShrinkRight returns r with n pixels removed from the right edge.
func (r Rect) ShrinkRight(n int) Rect {
	r.Max.X = max(r.Max.X-n, r.Min.X)
	return r
}

// PlaceAt computes the sub-rectangle of the given size positioned inside
// r according to the horizontal and vertical alignments. Each axis is
// placed independently:
//
//   - AlignStart pins the block to the min edge, AlignEnd to the max edge.
//   - AlignCenter centers it; when the leftover space is odd the extra
//     pixel lands on the max side.
//   - AlignCenterAt(ratio) shifts the block off the midpoint so that
//     ratio of its size sits past the midpoint; when the shifted block
//     would escape r the axis falls back to plain centering.
//
// The size must fit in r, and the result always has exactly the
// requested size and lies inside r. Violations panic, since they can
// only come from a layout bug.
func (r Rect) PlaceAt(size Point, hAlign, vAlign Align) Rect {
	if size.X <= 0 || size.Y <= 0 || size.X > r.Width() || size.Y > r.Height() {
		panic(fmt.Sprintf("geometry: cannot place %v inside %dx%d", size, r.Width(), r.Height()))
	}

	x0, x1 := placeSpan(r.Min.X, r.Max.X, size.X, hAlign)
	y0, y1 := placeSpan(r.Min.Y, r.Max.Y, size.Y, vAlign)

	placed := Rect{Min: Point{X: x0, Y: y0}, Max: Point{X: x1, Y: y1}}
	if placed.Width() != size.X || placed.Height() != size.Y || !r.ContainsRect(placed) {
		panic(fmt.Sprintf("geometry: PlaceAt produced %+v for size %v in %+v", placed, size, r))
	}
	return placed
}

// placeSpan positions a block of the given size inside [lo, hi).
func placeSpan(lo, hi, size int, a Align) (int, int) {
	switch a.kind {
	case alignStart:
		return lo, lo + size
	case alignEnd:
		return hi - size, hi
	case alignCenterAt:
		mid := (lo + hi) / 2
		off := roundInt(float64(size) * (1 - a.ratio))
		start := mid - off
		if a.ratio >= 0 && a.ratio < 1 && off <= size && start >= lo && start+size <= hi {
			return start, start + size
		}
		// Shifted block escapes the span; center instead.
		fallthrough
	default: // alignCenter
		start := lo + (hi-lo-size)/2
		return start, start + size
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}
