package math3d

import "math"

// Mat4 is a 4x4 matrix in column-major order: element (row, col) lives at
// index col*4+row, and the translation of an affine transform is m[12:15].
type Mat4 [16]float64

// at returns element (row, col).
func (m *Mat4) at(row, col int) float64 {
	return m[col*4+row]
}

// basis builds an affine matrix from three column vectors and a translation.
func basis(x, y, z, t Vec3) Mat4 {
	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		t.X, t.Y, t.Z, 1,
	}
}

var (
	unitX = Vec3{1, 0, 0}
	unitY = Vec3{0, 1, 0}
	unitZ = Vec3{0, 0, 1}
)

// Identity returns the identity matrix.
func Identity() Mat4 {
	return basis(unitX, unitY, unitZ, Vec3{})
}

// Translate returns a matrix moving points by v.
func Translate(v Vec3) Mat4 {
	return basis(unitX, unitY, unitZ, v)
}

// Scale returns a matrix scaling each axis by the matching component of v.
func Scale(v Vec3) Mat4 {
	return basis(Vec3{v.X, 0, 0}, Vec3{0, v.Y, 0}, Vec3{0, 0, v.Z}, Vec3{})
}

// RotateX returns a counter-clockwise rotation about +X, in radians.
func RotateX(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	return basis(unitX, Vec3{0, c, s}, Vec3{0, -s, c}, Vec3{})
}

// RotateY returns a counter-clockwise rotation about +Y, in radians.
func RotateY(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	return basis(Vec3{c, 0, -s}, unitY, Vec3{s, 0, c}, Vec3{})
}

// RotateZ returns a counter-clockwise rotation about +Z, in radians.
func RotateZ(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	return basis(Vec3{c, s, 0}, Vec3{-s, c, 0}, unitZ, Vec3{})
}

// Perspective returns a right-handed projection looking down -Z that maps
// the view frustum to clip space with z in [-w, w]. fovy is the vertical
// field of view in radians, aspect is width over height.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovy/2)
	depth := near - far
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / depth
	m[11] = -1
	m[14] = 2 * far * near / depth
	return m
}

// Mul returns m*n, the transform applying n first and then m.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for col := range 4 {
		for row := range 4 {
			out[col*4+row] = m.at(row, 0)*n.at(0, col) +
				m.at(row, 1)*n.at(1, col) +
				m.at(row, 2)*n.at(2, col) +
				m.at(row, 3)*n.at(3, col)
		}
	}
	return out
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulVec3 transforms a point, dividing by w when the matrix is projective.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 1)).PerspectiveDivide()
}

// MulVec3Dir transforms a direction, ignoring translation.
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 0)).Vec3()
}

// Translation returns the translation part of an affine matrix.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Compose builds a model matrix from a translation, rotation and scale,
// applied to points in scale, rotate, translate order.
func Compose(position Vec3, rotation Euler, scale Vec3) Mat4 {
	return Translate(position).Mul(rotation.Matrix()).Mul(Scale(scale))
}
