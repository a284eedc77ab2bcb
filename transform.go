package canopy

import "math"

// Matrix is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// Identity is the identity affine matrix.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// singularEpsilon is the determinant magnitude below which a matrix is treated
// as non-invertible.
const singularEpsilon = 1e-12

// TranslateMatrix returns a translation matrix.
func TranslateMatrix(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// ScaleMatrix returns a scale matrix.
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// RotateMatrix returns a rotation matrix for an angle in radians.
// Positive angles rotate clockwise in a Y-down coordinate system.
func RotateMatrix(radians float64) Matrix {
	sin, cos := math.Sincos(radians)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Multiply returns m * o, i.e. o is applied first, then m.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Determinant returns ad - cb.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[2]*m[1]
}

// Invertible reports whether the matrix has an inverse.
func (m Matrix) Invertible() bool {
	det := m.Determinant()
	return !(det > -singularEpsilon && det < singularEpsilon) && !math.IsNaN(det)
}

// Invert returns the inverse of m. The second result is false when m is
// singular, in which case the returned matrix is the identity.
func (m Matrix) Invert() (Matrix, bool) {
	if !m.Invertible() {
		return Identity, false
	}
	invDet := 1.0 / m.Determinant()
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// Apply transforms the point (x, y) by m.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity
}

// Decompose splits m into translation, rotation, x-shear, and scale such that
// m = T(tx, ty) * R(rotation) * Shear(shear, 0) * S(sx, sy). Canvas backends
// that only expose primitive operations use it to replay a matrix.
func (m Matrix) Decompose() (tx, ty, rotation, shear, sx, sy float64) {
	a, b, c, d := m[0], m[1], m[2], m[3]
	tx, ty = m[4], m[5]
	sx = math.Hypot(a, b)
	if sx == 0 {
		return tx, ty, 0, 0, 0, d
	}
	rotation = math.Atan2(b, a)
	sin, cos := math.Sincos(rotation)
	// R^-1 * [c d] gives the second column before rotation.
	c2 := cos*c + sin*d
	d2 := -sin*c + cos*d
	sy = d2
	if sy != 0 {
		shear = c2 / sy
	}
	return tx, ty, rotation, shear, sx, sy
}

// TransformProps describes a local transform by its components.
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Skew -> Rotate -> Translate(PivotX+OffsetX, PivotY+OffsetY)
//
// The pivot is expressed in the node's local frame, so rotation and scale
// happen about that point rather than the node origin.
type TransformProps struct {
	OffsetX, OffsetY float64
	ScaleX, ScaleY   float64
	Rotation         float64
	SkewX, SkewY     float64
	PivotX, PivotY   float64
}

// DefaultTransformProps returns props that compose to the identity.
func DefaultTransformProps() TransformProps {
	return TransformProps{ScaleX: 1, ScaleY: 1}
}

// Matrix composes the props into an affine matrix.
func (p TransformProps) Matrix() Matrix {
	sx := p.ScaleX
	sy := p.ScaleY

	sin, cos := math.Sincos(p.Rotation)

	var tanSkewX, tanSkewY float64
	if p.SkewX != 0 {
		tanSkewX = math.Tan(p.SkewX)
	}
	if p.SkewY != 0 {
		tanSkewY = math.Tan(p.SkewY)
	}

	// After Scale * Translate(-pivot), then Skew:
	a := sx
	b := tanSkewY * sx
	c := tanSkewX * sy
	d := sy

	px := p.PivotX
	py := p.PivotY
	preTx := -px*sx - tanSkewX*py*sy
	preTy := -tanSkewY*px*sx - py*sy

	// After Rotate:
	ra := cos*a - sin*b
	rb := sin*a + cos*b
	rc := cos*c - sin*d
	rd := sin*c + cos*d
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	return Matrix{ra, rb, rc, rd, rtx + px + p.OffsetX, rty + py + p.OffsetY}
}
