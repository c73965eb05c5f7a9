// Package math3d provides the vector and matrix types shared by the portal
// renderer, scene graph and camera controls.
package math3d

import "math"

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

// V3 returns Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the origin.
func Zero3() Vec3 {
	return Vec3{}
}

// One3 returns (1, 1, 1), the identity scale.
func One3() Vec3 {
	return Vec3{1, 1, 1}
}

// zip combines a and b component by component.
func zip(a, b Vec3, fn func(x, y float64) float64) Vec3 {
	return Vec3{fn(a.X, b.X), fn(a.Y, b.Y), fn(a.Z, b.Z)}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Mul multiplies component-wise.
func (a Vec3) Mul(b Vec3) Vec3 {
	return zip(a, b, func(x, y float64) float64 { return x * y })
}

func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

func (a Vec3) Div(s float64) Vec3 {
	return Vec3{a.X / s, a.Y / s, a.Z / s}
}

func (a Vec3) Negate() Vec3 {
	return a.Scale(-1)
}

func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns a x b, right-handed.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Len() float64 {
	return math.Sqrt(a.Dot(a))
}

// Normalize returns a unit vector along a, or the zero vector for zero input.
func (a Vec3) Normalize() Vec3 {
	if l := a.Len(); l > 0 {
		return a.Div(l)
	}
	return Vec3{}
}

// Lerp moves from a toward b by the fraction t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return zip(a, b, math.Min)
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return zip(a, b, math.Max)
}

// ApproxEqual reports whether no component of a and b differs by more than eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	d := zip(a, b, func(x, y float64) float64 { return math.Abs(x - y) })
	return d.X <= eps && d.Y <= eps && d.Z <= eps
}
