package models

import "github.com/taigrr/portal/pkg/math3d"

// quadBasis describes one box face: outward normal plus the right and up
// directions as seen from outside.
type quadBasis struct {
	normal, right, up math3d.Vec3
}

var boxFaces = [6]quadBasis{
	{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)},
	{math3d.V3(0, 0, -1), math3d.V3(-1, 0, 0), math3d.V3(0, 1, 0)},
	{math3d.V3(1, 0, 0), math3d.V3(0, 0, -1), math3d.V3(0, 1, 0)},
	{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0)},
	{math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)},
	{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},
}

// NewBox creates an axis-aligned box centered at the origin. Every face maps
// the full [0,1] UV range, so a texture appears once per face.
func NewBox(width, height, depth float64) *Mesh {
	m := NewMesh("box")
	half := math3d.V3(width/2, height/2, depth/2)
	for _, f := range boxFaces {
		center := f.normal.Mul(half)
		right := f.right.Mul(half)
		up := f.up.Mul(half)
		m.addQuad(center, right, up, f.normal)
	}
	m.CalculateBounds()
	return m
}

// NewPlane creates a width x height rectangle in the XY plane facing +Z.
func NewPlane(width, height float64) *Mesh {
	m := NewMesh("plane")
	m.addQuad(math3d.Zero3(), math3d.V3(width/2, 0, 0), math3d.V3(0, height/2, 0), math3d.V3(0, 0, 1))
	m.CalculateBounds()
	return m
}

// addQuad appends two clockwise triangles spanning center ± right ± up.
func (m *Mesh) addQuad(center, right, up, normal math3d.Vec3) {
	base := len(m.Vertices)
	corners := [4]struct {
		pos math3d.Vec3
		uv  math3d.Vec2
	}{
		{center.Sub(right).Sub(up), math3d.V2(0, 0)}, // bottom left
		{center.Sub(right).Add(up), math3d.V2(0, 1)}, // top left
		{center.Add(right).Add(up), math3d.V2(1, 1)}, // top right
		{center.Add(right).Sub(up), math3d.V2(1, 0)}, // bottom right
	}
	for _, c := range corners {
		m.Vertices = append(m.Vertices, MeshVertex{Position: c.pos, Normal: normal, UV: c.uv})
	}
	m.Faces = append(m.Faces,
		Face{V: [3]int{base, base + 1, base + 2}, Material: -1},
		Face{V: [3]int{base, base + 2, base + 3}, Material: -1},
	)
}
