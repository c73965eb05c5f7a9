package math3d

import "math"

// Euler is a rotation expressed as angles in radians around X, Y and Z.
// Matrices are composed in XYZ order: R = Rx * Ry * Rz.
type Euler struct {
	X, Y, Z float64
}

// E creates a new Euler rotation.
func E(x, y, z float64) Euler {
	return Euler{x, y, z}
}

// Matrix returns the rotation matrix for e.
func (e Euler) Matrix() Mat4 {
	return RotateX(e.X).Mul(RotateY(e.Y)).Mul(RotateZ(e.Z))
}

// Degrees converts each angle from degrees to radians.
func (e Euler) Degrees() Euler {
	return Euler{e.X * math.Pi / 180, e.Y * math.Pi / 180, e.Z * math.Pi / 180}
}

// Quat is a unit quaternion in (x, y, z, w) order, w being the scalar part.
type Quat [4]float64

// Matrix returns the rotation matrix for q.
func (q Quat) Matrix() Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}
