package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Transform is a 3D homogeneous transformation stored as a 4x4 matrix in
// row-major order. Points are treated as column vectors, so the matrix
//
//	| m0  m1  m2  m3  |
//	| m4  m5  m6  m7  |
//	| m8  m9  m10 m11 |
//	| m12 m13 m14 m15 |
//
// maps (x, y, z, 1) to (m0*x + m1*y + m2*z + m3, ...). Translation lives in
// the last column and perspective in the last row.
type Transform struct {
	M f64.Mat4
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{M: f64.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Translation returns a transform translating by (x, y, z).
func Translation(x, y, z float64) Transform {
	return Transform{M: f64.Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}}
}

// Scale returns a transform scaling by (x, y, z).
func Scale(x, y, z float64) Transform {
	return Transform{M: f64.Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}}
}

// Rotation returns a transform rotating by angle radians around the z axis.
func Rotation(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	return Transform{M: f64.Mat4{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Perspective returns the CSS perspective transform for the given distance.
// A non-positive distance yields the identity.
func Perspective(d float64) Transform {
	t := Identity()
	if d > 0 {
		t.M[14] = -1 / d
	}
	return t
}

// Mul returns the matrix product t * other. Applied to a point, other acts
// first and t second.
func (t Transform) Mul(other Transform) Transform {
	var r f64.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += t.M[row*4+k] * other.M[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return Transform{M: r}
}

// PreMul returns a transform that applies other before t.
func (t Transform) PreMul(other Transform) Transform {
	return t.Mul(other)
}

// PostMul returns a transform that applies other after t.
func (t Transform) PostMul(other Transform) Transform {
	return other.Mul(t)
}

// PreTranslated returns a transform that translates by (x, y, z) before t.
func (t Transform) PreTranslated(x, y, z float64) Transform {
	return t.PreMul(Translation(x, y, z))
}

// PostTranslated returns a transform that translates by (x, y, z) after t.
func (t Transform) PostTranslated(x, y, z float64) Transform {
	return t.PostMul(Translation(x, y, z))
}

// IsIdentity returns true if the transform is the identity.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Translation2D returns the x and y translation components.
func (t Transform) Translation2D() Point {
	return Point{X: t.M[3], Y: t.M[7]}
}

// TransformPoint maps a point on the z=0 plane, including the perspective
// divide. The second result is false if the point maps behind the viewer.
func (t Transform) TransformPoint(p Point) (Point, bool) {
	x := t.M[0]*p.X + t.M[1]*p.Y + t.M[3]
	y := t.M[4]*p.X + t.M[5]*p.Y + t.M[7]
	w := t.M[12]*p.X + t.M[13]*p.Y + t.M[15]
	if w <= 0 {
		return Point{}, false
	}
	return Point{X: x / w, Y: y / w}, true
}

// TransformRect returns the axis-aligned bounding box of the transformed
// corners of r. The second result is false if any corner cannot be mapped.
func (t Transform) TransformRect(r Rect) (Rect, bool) {
	corners := [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.X, Y: r.Bottom()},
		{X: r.Right(), Y: r.Bottom()},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p, ok := t.TransformPoint(c)
		if !ok {
			return Rect{}, false
		}
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

// Inverse returns the inverse transform. The second result is false if the
// matrix is singular.
func (t Transform) Inverse() (Transform, bool) {
	m := t.M
	var inv f64.Mat4

	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] +
		m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] -
		m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] +
		m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] -
		m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] -
		m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] +
		m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] -
		m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] +
		m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] +
		m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] -
		m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] +
		m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] -
		m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] -
		m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] +
		m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] -
		m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] +
		m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if det == 0 {
		return Transform{}, false
	}
	for i := range inv {
		inv[i] /= det
	}
	return Transform{M: inv}, true
}
