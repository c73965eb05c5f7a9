package models

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/portal/pkg/math3d"
)

// ErrNoGeometry is returned when a document contains no triangle primitives.
var ErrNoGeometry = errors.New("no triangle geometry")

// GLTFLoader flattens glTF/GLB documents into a single world-space Mesh.
type GLTFLoader struct {
	// CalculateNormals fills in normals when the document has none.
	CalculateNormals bool
	SmoothNormals    bool
}

// NewGLTFLoader returns a loader that computes smooth normals when missing.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
	}
}

// LoadGLB loads a GLB or glTF file with the default loader.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load opens path and decodes it. The mesh is named after the file.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.Decode(doc, filepath.Base(path))
}

// Decode bakes every node of the default scene into world space. Documents
// without scenes contribute their meshes untransformed.
func (l *GLTFLoader) Decode(doc *gltf.Document, name string) (*Mesh, error) {
	d := decoder{doc: doc, mesh: NewMesh(name)}
	d.mesh.Materials = readMaterials(doc)

	if roots, ok := sceneRoots(doc); ok {
		for _, idx := range roots {
			if err := d.node(idx, math3d.Identity(), 0); err != nil {
				return nil, fmt.Errorf("decode %s: %w", name, err)
			}
		}
	} else {
		for _, m := range doc.Meshes {
			if err := d.meshInto(m, math3d.Identity()); err != nil {
				return nil, fmt.Errorf("decode %s: %w", name, err)
			}
		}
	}

	mesh := d.mesh
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("decode %s: %w", name, ErrNoGeometry)
	}
	if l.CalculateNormals && !d.hasNormals {
		mesh.ComputeNormals(l.SmoothNormals)
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func sceneRoots(doc *gltf.Document) ([]int, bool) {
	if len(doc.Scenes) == 0 {
		return nil, false
	}
	i := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		i = *doc.Scene
	}
	return doc.Scenes[i].Nodes, true
}

func readMaterials(doc *gltf.Document) []Material {
	out := make([]Material, len(doc.Materials))
	for i, m := range doc.Materials {
		out[i] = Material{Name: m.Name, BaseColor: [4]float64{1, 1, 1, 1}, Metallic: 1, Roughness: 1}
		if pbr := m.PBRMetallicRoughness; pbr != nil {
			out[i].BaseColor = pbr.BaseColorFactorOrDefault()
			out[i].Metallic = pbr.MetallicFactorOrDefault()
			out[i].Roughness = pbr.RoughnessFactorOrDefault()
		}
	}
	return out
}

// maxNodeDepth bounds recursion on malformed documents with cyclic children.
const maxNodeDepth = 64

// decoder accumulates the primitives of one document into mesh.
type decoder struct {
	doc        *gltf.Document
	mesh       *Mesh
	hasNormals bool
}

func (d *decoder) node(idx int, parent math3d.Mat4, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node %d: hierarchy deeper than %d", idx, maxNodeDepth)
	}
	if idx < 0 || idx >= len(d.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", idx)
	}
	n := d.doc.Nodes[idx]
	world := parent.Mul(localMatrix(n))

	if n.Mesh != nil && *n.Mesh < len(d.doc.Meshes) {
		if err := d.meshInto(d.doc.Meshes[*n.Mesh], world); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if err := d.node(child, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// localMatrix prefers an explicit node matrix and falls back to TRS.
func localMatrix(n *gltf.Node) math3d.Mat4 {
	if m := math3d.Mat4(n.MatrixOrDefault()); m != math3d.Identity() {
		return m
	}
	t, r, s := n.TranslationOrDefault(), n.RotationOrDefault(), n.ScaleOrDefault()
	return math3d.Translate(math3d.V3(t[0], t[1], t[2])).
		Mul(math3d.Quat(r).Matrix()).
		Mul(math3d.Scale(math3d.V3(s[0], s[1], s[2])))
}

func (d *decoder) meshInto(m *gltf.Mesh, world math3d.Mat4) error {
	for i, prim := range m.Primitives {
		if err := d.primitive(prim, world); err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
		}
	}
	return nil
}

func (d *decoder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(d.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return d.doc.Accessors[idx], nil
}

// primitive appends one triangle primitive. Other modes are skipped.
func (d *decoder) primitive(prim *gltf.Primitive, world math3d.Mat4) error {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		return nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	acr, err := d.accessor(posIdx)
	if err != nil {
		return err
	}
	positions, err := modeler.ReadPosition(d.doc, acr, nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acr, err = d.accessor(idx); err != nil {
			return err
		}
		if normals, err = modeler.ReadNormal(d.doc, acr, nil); err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
		d.hasNormals = d.hasNormals || len(normals) > 0
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err = d.accessor(idx); err != nil {
			return err
		}
		if uvs, err = modeler.ReadTextureCoord(d.doc, acr, nil); err != nil {
			return fmt.Errorf("read uvs: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if acr, err = d.accessor(*prim.Indices); err != nil {
			return err
		}
		if indices, err = modeler.ReadIndices(d.doc, acr, nil); err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	material := -1
	if prim.Material != nil && *prim.Material < len(d.mesh.Materials) {
		material = *prim.Material
	}

	base := len(d.mesh.Vertices)
	for i, p := range positions {
		v := MeshVertex{Position: world.MulVec3(vec3f(p))}
		if i < len(normals) {
			v.Normal = world.MulVec3Dir(vec3f(normals[i])).Normalize()
		}
		if i < len(uvs) {
			// glTF puts v=0 at the top of the image; textures here sample
			// with v=0 at the bottom.
			v.UV = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
		}
		d.mesh.Vertices = append(d.mesh.Vertices, v)
	}

	// glTF front faces are counter-clockwise and the rasterizer's are
	// clockwise, so the last two indices swap. A mirroring transform has
	// already flipped the winding once.
	mirrored := determinant3(world) < 0
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := int(indices[i]), int(indices[i+2]), int(indices[i+1])
		if mirrored {
			b, c = c, b
		}
		if max(a, b, c) >= len(positions) {
			return fmt.Errorf("index %d out of range for %d vertices", max(a, b, c), len(positions))
		}
		d.mesh.Faces = append(d.mesh.Faces, Face{
			V:        [3]int{base + a, base + b, base + c},
			Material: material,
		})
	}
	return nil
}

func vec3f(v [3]float32) math3d.Vec3 {
	return math3d.V3(float64(v[0]), float64(v[1]), float64(v[2]))
}

// determinant3 returns the determinant of the upper 3x3 block of m.
func determinant3(m math3d.Mat4) float64 {
	return m[0]*(m[5]*m[10]-m[9]*m[6]) -
		m[4]*(m[1]*m[10]-m[9]*m[2]) +
		m[8]*(m[1]*m[6]-m[5]*m[2])
}
