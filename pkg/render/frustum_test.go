package render

import (
	"math"
	"testing"

	"github.com/taigrr/portal/pkg/math3d"
)

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	if math.Abs(plane.Normal.Len()-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", plane.Normal.Len())
	}
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}
}

func TestAABBTransform(t *testing.T) {
	box := AABB{Min: math3d.V3(-1, -1, -1), Max: math3d.V3(1, 1, 1)}

	t.Run("translation", func(t *testing.T) {
		got := box.Transform(math3d.Translate(math3d.V3(10, 20, 30)))
		if got.Min != math3d.V3(9, 19, 29) || got.Max != math3d.V3(11, 21, 31) {
			t.Errorf("translated = %v, want (9,19,29)-(11,21,31)", got)
		}
	})

	t.Run("rotation grows bounds", func(t *testing.T) {
		got := box.Transform(math3d.RotateY(math.Pi / 4))
		want := math.Sqrt2
		if math.Abs(got.Max.X-want) > 1e-9 || math.Abs(got.Max.Z-want) > 1e-9 {
			t.Errorf("rotated max = %v, want x=z=%v", got.Max, want)
		}
		if got.Max.Y != 1 {
			t.Errorf("rotated max.Y = %v, want 1", got.Max.Y)
		}
	})
}

func TestFrustumContainsPoint(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100)
	frustum := NewFrustumFromMatrix(proj)

	for i, plane := range frustum.Planes {
		if math.Abs(plane.Normal.Len()-1.0) > 1e-6 {
			t.Errorf("plane %d normal length = %v, want 1.0", i, plane.Normal.Len())
		}
	}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center near", math3d.V3(0, 0, -1), true},
		{"center far", math3d.V3(0, 0, -99), true},
		{"behind camera", math3d.V3(0, 0, 1), false},
		{"too far", math3d.V3(0, 0, -200), false},
		{"too close", math3d.V3(0, 0, -0.01), false},
		{"far left", math3d.V3(-100, 0, -10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectAABB(t *testing.T) {
	frustum := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 16.0/9.0, 1, 100))

	tests := []struct {
		name     string
		box      AABB
		expected bool
	}{
		{"in front", AABB{math3d.V3(-1, -1, -11), math3d.V3(1, 1, -9)}, true},
		{"straddles near plane", AABB{math3d.V3(-1, -1, -2), math3d.V3(1, 1, 2)}, true},
		{"behind", AABB{math3d.V3(-1, -1, 5), math3d.V3(1, 1, 7)}, false},
		{"beyond far", AABB{math3d.V3(-1, -1, -300), math3d.V3(1, 1, -200)}, false},
		{"off to the right", AABB{math3d.V3(200, -1, -11), math3d.V3(202, 1, -9)}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectAABB(tc.box); got != tc.expected {
				t.Errorf("IntersectAABB(%v) = %v, want %v", tc.box, got, tc.expected)
			}
		})
	}
}

func TestCameraFrustumFollowsRotation(t *testing.T) {
	cam := NewCamera()
	cam.SetPosition(math3d.Zero3())
	cam.SetRotation(math3d.E(0, math.Pi/2, 0)) // looking down -X

	f := cam.Frustum()
	if !f.ContainsPoint(math3d.V3(-10, 0, 0)) {
		t.Error("point along -X should be visible after yawing 90 degrees")
	}
	if f.ContainsPoint(math3d.V3(0, 0, -10)) {
		t.Error("point along -Z should no longer be visible")
	}
}

func BenchmarkFrustumIntersectAABB(b *testing.B) {
	frustum := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100))
	box := AABB{math3d.V3(-1, -1, -11), math3d.V3(1, 1, -9)}

	for b.Loop() {
		_ = frustum.IntersectAABB(box)
	}
}
