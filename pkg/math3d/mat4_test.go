package math3d

import (
	"math"
	"testing"
)

func TestMat4Transforms(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"identity", Identity(), V3(1, 2, 3), V3(1, 2, 3)},
		{"translate", Translate(V3(1, -1, 2)), V3(1, 1, 1), V3(2, 0, 3)},
		{"scale", Scale(V3(2, 3, 4)), V3(1, 1, 1), V3(2, 3, 4)},
		{"rotate x", RotateX(math.Pi / 2), V3(0, 0, 1), V3(0, -1, 0)},
		{"rotate y", RotateY(math.Pi / 2), V3(1, 0, 0), V3(0, 0, -1)},
		{"rotate z", RotateZ(math.Pi / 2), V3(0, 1, 0), V3(-1, 0, 0)},
		{"translate after scale", Translate(V3(0, 5, 0)).Mul(Scale(V3(2, 2, 2))), V3(1, 1, 1), V3(2, 7, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.m.MulVec3(tc.in)
			if !got.ApproxEqual(tc.want, 1e-9) {
				t.Errorf("MulVec3(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMulVec3DirIgnoresTranslation(t *testing.T) {
	m := Translate(V3(5, 5, 5)).Mul(RotateZ(math.Pi))
	got := m.MulVec3Dir(V3(1, 0, 0))
	if !got.ApproxEqual(V3(-1, 0, 0), 1e-9) {
		t.Errorf("MulVec3Dir = %v, want (-1, 0, 0)", got)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := 0.5, 50.0
	p := Perspective(math.Pi/2, 2, near, far)

	tests := []struct {
		z     float64
		wantZ float64
	}{
		{-near, -1},
		{-far, 1},
	}
	for _, tc := range tests {
		got := p.MulVec3(V3(0, 0, tc.z))
		if math.Abs(got.Z-tc.wantZ) > 1e-9 {
			t.Errorf("depth of z=%v is %v, want %v", tc.z, got.Z, tc.wantZ)
		}
	}

	// With a 90 degree fov a point at 45 degrees lands on the top edge.
	top := p.MulVec3(V3(0, 1, -1))
	if math.Abs(top.Y-1) > 1e-9 {
		t.Errorf("top edge y = %v, want 1", top.Y)
	}
	right := p.MulVec3(V3(2, 0, -1))
	if math.Abs(right.X-1) > 1e-9 {
		t.Errorf("right edge x = %v, want 1 for aspect 2", right.X)
	}
}

func TestMulAssociates(t *testing.T) {
	a := RotateX(0.3).Mul(Translate(V3(1, 2, 3)))
	b := Scale(V3(2, 1, 0.5))
	c := RotateY(-1.1)
	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	for i := range left {
		if math.Abs(left[i]-right[i]) > 1e-12 {
			t.Fatalf("element %d: %v != %v", i, left[i], right[i])
		}
	}
}

func TestPerspectiveDivide(t *testing.T) {
	if got := V4(2, 4, 6, 2).PerspectiveDivide(); got != V3(1, 2, 3) {
		t.Errorf("PerspectiveDivide = %v", got)
	}
	if got := V4(2, 4, 6, 0).PerspectiveDivide(); got != V3(2, 4, 6) {
		t.Errorf("PerspectiveDivide with w=0 = %v", got)
	}
}
