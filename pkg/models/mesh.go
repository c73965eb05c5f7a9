// Package models provides mesh representation, GLB loading and primitive
// geometry for portal scenes.
package models

import (
	"github.com/taigrr/portal/pkg/math3d"
)

// Mesh is an indexed triangle list. It implements render.MeshRenderer,
// render.BoundedMeshRenderer and render.FaceColorer.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounds is refreshed by CalculateBounds.
	Bounds Bounds
}

// MeshVertex holds the attributes of one vertex.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle of vertex indices, wound clockwise seen from the front.
// Material indexes Mesh.Materials; -1 means none.
type Face struct {
	V        [3]int
	Material int
}

// Material is the subset of a glTF PBR material the rasterizer can use.
type Material struct {
	Name      string
	BaseColor [4]float64 // linear RGBA, 0..1
	Metallic  float64
	Roughness float64
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Min, Max math3d.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math3d.Vec3 {
	return b.Min.Lerp(b.Max, 0.5)
}

// Size returns the extent along each axis.
func (b Bounds) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds fits Bounds to the vertices. An empty mesh keeps a zero box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		b.Min = b.Min.Min(v.Position)
		b.Max = b.Max.Max(v.Position)
	}
	m.Bounds = b
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 { return m.Bounds.Center() }

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 { return m.Bounds.Size() }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// ComputeNormals replaces the vertex normals from face geometry. Smooth
// normals average the faces around a vertex weighted by area; flat normals
// take the last face that uses the vertex.
func (m *Mesh) ComputeNormals(smooth bool) {
	if smooth {
		for i := range m.Vertices {
			m.Vertices[i].Normal = math3d.Vec3{}
		}
	}
	for _, f := range m.Faces {
		n := m.faceNormal(f)
		for _, vi := range f.V {
			if smooth {
				m.Vertices[vi].Normal = m.Vertices[vi].Normal.Add(n)
			} else {
				m.Vertices[vi].Normal = n
			}
		}
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// faceNormal returns the front normal of f scaled by twice its area.
func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f.V[0]].Position
	v1 := m.Vertices[f.V[1]].Position
	v2 := m.Vertices[f.V[2]].Position
	return v2.Sub(v0).Cross(v1.Sub(v0))
}

// GetVertex returns the attributes of vertex i.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := &m.Vertices[i]
	return v.Position, v.Normal, v.UV
}

// GetFace returns the vertex indices of face i.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetMaterial returns material i, or nil when i is out of range.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// FaceBaseColor returns the base color of the material on face i.
func (m *Mesh) FaceBaseColor(i int) ([4]float64, bool) {
	if mat := m.GetMaterial(m.Faces[i].Material); mat != nil {
		return mat.BaseColor, true
	}
	return [4]float64{}, false
}

// GetBounds returns the bounding box corners.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.Bounds.Min, m.Bounds.Max
}
