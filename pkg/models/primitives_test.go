package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/portal/pkg/math3d"
)

func TestNewBox(t *testing.T) {
	box := NewBox(2, 4, 6)

	require.Equal(t, 24, box.VertexCount())
	require.Equal(t, 12, box.TriangleCount())
	assert.Equal(t, math3d.V3(-1, -2, -3), box.Bounds.Min)
	assert.Equal(t, math3d.V3(1, 2, 3), box.Bounds.Max)
}

func TestBoxNormalsPointOutward(t *testing.T) {
	box := NewBox(1, 1, 1)
	for i := range box.TriangleCount() {
		f := box.Faces[i]
		computed := box.faceNormal(f).Normalize()
		stored := box.Vertices[f.V[0]].Normal
		assert.True(t, computed.ApproxEqual(stored, 1e-9),
			"face %d winding normal %v disagrees with stored %v", i, computed, stored)

		centroid := box.Vertices[f.V[0]].Position.
			Add(box.Vertices[f.V[1]].Position).
			Add(box.Vertices[f.V[2]].Position).
			Scale(1.0 / 3)
		assert.Greater(t, centroid.Dot(stored), 0.0, "face %d normal points inward", i)
	}
}

func TestNewPlane(t *testing.T) {
	plane := NewPlane(6, 7)

	require.Equal(t, 2, plane.TriangleCount())
	assert.Equal(t, math3d.V3(6, 7, 0), plane.Size())
	assert.Equal(t, math3d.Zero3(), plane.Center())

	// Corners carry the full UV range.
	_, _, uvBL := plane.GetVertex(0)
	_, _, uvTR := plane.GetVertex(2)
	assert.Equal(t, math3d.V2(0, 0), uvBL)
	assert.Equal(t, math3d.V2(1, 1), uvTR)
}

func TestSmoothNormalsOnPlane(t *testing.T) {
	plane := NewPlane(2, 2)
	for i := range plane.Vertices {
		plane.Vertices[i].Normal = math3d.Zero3()
	}
	plane.ComputeNormals(true)
	for i, v := range plane.Vertices {
		assert.True(t, v.Normal.ApproxEqual(math3d.V3(0, 0, 1), 1e-9), "vertex %d normal %v", i, v.Normal)
	}
}
