// Package geom provides the layout-space geometry used while flattening
// display lists: points, sizes, axis-aligned rectangles and 4x4 transforms.
//
// All coordinates are float64 layout units. Rectangles are half-open in the
// sense that two rectangles sharing only an edge do not intersect.
package geom

import "math"

// Point is a 2D point in layout space.
type Point struct {
	X, Y float64
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns the point scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// IsZero reports whether both coordinates are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Size is a width/height pair in layout space.
type Size struct {
	W, H float64
}

// Sz creates a Size from width and height.
func Sz(w, h float64) Size {
	return Size{W: w, H: h}
}

// IsEmpty returns true if the size has no area.
func (s Size) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewRect creates a Rect from position and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromSize creates a Rect at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{W: s.W, H: s.H}
}

// RectFromPoints creates the rectangle spanned by two corners.
func RectFromPoints(p0, p1 Point) Rect {
	x0, x1 := math.Min(p0.X, p1.X), math.Max(p0.X, p1.X)
	y0, y1 := math.Min(p0.Y, p1.Y), math.Max(p0.Y, p1.Y)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's size.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Right returns the right edge x-coordinate.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the bottom edge y-coordinate.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersects returns true if the two rectangles overlap with positive area.
// An empty rectangle intersects nothing.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Intersection returns the overlap of two rectangles. The second result is
// false when the rectangles do not overlap with positive area.
func (r Rect) Intersection(other Rect) (Rect, bool) {
	if !r.Intersects(other) {
		return Rect{}, false
	}
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.Right(), other.Right())
	y1 := math.Min(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

// Union returns the smallest rectangle containing both rectangles.
// Empty rectangles are ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.Right(), other.Right())
	y1 := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Translate returns the rectangle moved by the given offset.
func (r Rect) Translate(offset Point) Rect {
	return Rect{X: r.X + offset.X, Y: r.Y + offset.Y, W: r.W, H: r.H}
}

// Area returns the rectangle's area, or zero for empty rectangles.
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.W * r.H
}

// SubtractRect appends to dst the parts of rect not covered by other and
// returns the extended slice. At most four fragments are produced: a full
// height strip on the left and right and the strips above and below the
// overlap. If the rectangles do not overlap, rect itself is appended.
func SubtractRect(dst []Rect, rect, other Rect) []Rect {
	inter, ok := rect.Intersection(other)
	if !ok {
		return append(dst, rect)
	}

	rx0, ry0 := rect.X, rect.Y
	rx1, ry1 := rect.Right(), rect.Bottom()
	ox0, oy0 := inter.X, inter.Y
	ox1, oy1 := inter.Right(), inter.Bottom()

	candidates := [4]Rect{
		{X: rx0, Y: ry0, W: ox0 - rx0, H: ry1 - ry0}, // left
		{X: ox0, Y: ry0, W: ox1 - ox0, H: oy0 - ry0}, // top
		{X: ox0, Y: oy1, W: ox1 - ox0, H: ry1 - oy1}, // bottom
		{X: ox1, Y: ry0, W: rx1 - ox1, H: ry1 - ry0}, // right
	}
	for _, c := range candidates {
		if c.W > 0 && c.H > 0 {
			dst = append(dst, c)
		}
	}
	return dst
}

// BorderRadius holds the per-corner radii of a rounded rectangle.
type BorderRadius struct {
	TopLeft     Size
	TopRight    Size
	BottomLeft  Size
	BottomRight Size
}

// UniformRadius returns a BorderRadius with the same circular radius on
// every corner.
func UniformRadius(r float64) BorderRadius {
	s := Size{W: r, H: r}
	return BorderRadius{TopLeft: s, TopRight: s, BottomLeft: s, BottomRight: s}
}

// IsZero reports whether all corners are square.
func (b BorderRadius) IsZero() bool {
	return b == BorderRadius{}
}

// SideOffsets holds per-side widths, as used for border widths and
// nine-patch insets.
type SideOffsets struct {
	Top, Right, Bottom, Left float64
}

// UniformSideOffsets returns offsets with the same value on every side.
func UniformSideOffsets(v float64) SideOffsets {
	return SideOffsets{Top: v, Right: v, Bottom: v, Left: v}
}

// Inflate grows the rectangle by dx on the left and right and dy on the
// top and bottom. Negative values shrink it.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}
