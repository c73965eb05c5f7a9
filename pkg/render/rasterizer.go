package render

import (
	"math"

	"github.com/taigrr/portal/pkg/math3d"
)

// Vertex is a world-space vertex ready for shading.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
	Color    Color
}

// Triangle is three world-space vertices. A triangle faces the viewer when
// (V2-V0) x (V1-V0) points toward the camera.
type Triangle struct {
	V [3]Vertex
}

// MeshRenderer is the geometry a rasterizer can draw. It keeps this package
// independent of the models package.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer is a mesh with local bounds, used for frustum culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// FaceColorer is a mesh that carries per-face material colors.
type FaceColorer interface {
	FaceBaseColor(i int) ([4]float64, bool)
}

// DrawItem is one mesh instance in world space.
type DrawItem struct {
	Mesh        MeshRenderer
	Transform   math3d.Mat4
	Color       Color // zero draws white
	Texture     *Texture
	DoubleSided bool
}

// Rasterizer fills triangles into a framebuffer with a depth buffer and
// per-vertex (Gouraud) lighting.
type Rasterizer struct {
	camera       *Camera
	fb           *Framebuffer
	zbuffer      []float64
	frustum      Frustum
	frustumDirty bool

	CullingStats CullingStats

	// DisableBackfaceCulling draws both sides of every triangle.
	DisableBackfaceCulling bool
}

// CullingStats counts frustum culling decisions since the last reset.
type CullingStats struct {
	MeshesTested int
	MeshesCulled int
	MeshesDrawn  int
}

// NewRasterizer creates a rasterizer drawing into fb as seen from camera.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera:       camera,
		fb:           fb,
		frustumDirty: true,
	}
	r.Resize()
	return r
}

// SetCamera switches the viewpoint.
func (r *Rasterizer) SetCamera(c *Camera) {
	r.camera = c
	r.frustumDirty = true
}

// Camera returns the current viewpoint.
func (r *Rasterizer) Camera() *Camera {
	return r.camera
}

// Resize matches the depth buffer to the framebuffer dimensions.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	if n := r.fb.Width * r.fb.Height; len(r.zbuffer) != n {
		r.zbuffer = make([]float64, n)
	}
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth resets the depth buffer. Call once per frame.
func (r *Rasterizer) ClearDepth() {
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// ResetCullingStats clears the culling counters.
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

// IsVisible tests a local-space box placed with transform against the frustum.
func (r *Rasterizer) IsVisible(local AABB, transform math3d.Mat4) bool {
	if r.frustumDirty {
		r.frustum = r.camera.Frustum()
		r.frustumDirty = false
	}
	return r.frustum.IntersectAABB(local.Transform(transform))
}

func (r *Rasterizer) culled(mesh MeshRenderer, transform math3d.Mat4) bool {
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		return false
	}
	r.CullingStats.MeshesTested++
	lo, hi := bounded.GetBounds()
	if !r.IsVisible(AABB{Min: lo, Max: hi}, transform) {
		r.CullingStats.MeshesCulled++
		return true
	}
	r.CullingStats.MeshesDrawn++
	return false
}

// DrawItem draws a mesh instance. It returns false when the mesh was culled.
func (r *Rasterizer) DrawItem(item DrawItem, light Lighting) bool {
	if item.Mesh == nil || r.culled(item.Mesh, item.Transform) {
		return false
	}
	base := item.Color
	if base == (Color{}) {
		base = ColorWhite
	}
	if item.Texture != nil {
		base = ColorWhite
	}
	colorer, _ := item.Mesh.(FaceColorer)
	twoSided := item.DoubleSided || r.DisableBackfaceCulling

	for i := range item.Mesh.TriangleCount() {
		face := item.Mesh.GetFace(i)
		c := base
		if colorer != nil && item.Texture == nil {
			if fc, ok := colorer.FaceBaseColor(i); ok {
				c = ModulateColor(base, FromFloats(fc))
			}
		}
		var tri Triangle
		for k := range 3 {
			p, n, uv := item.Mesh.GetVertex(face[k])
			tri.V[k] = Vertex{
				Position: item.Transform.MulVec3(p),
				Normal:   item.Transform.MulVec3Dir(n).Normalize(),
				UV:       uv,
				Color:    c,
			}
		}
		r.drawTriangle(tri, item.Texture, light, twoSided)
	}
	return true
}

// DrawMeshGouraud draws a mesh in a single color.
func (r *Rasterizer) DrawMeshGouraud(mesh MeshRenderer, transform math3d.Mat4, color Color, light Lighting) {
	r.DrawItem(DrawItem{Mesh: mesh, Transform: transform, Color: color}, light)
}

// DrawMeshTexturedGouraud draws a textured mesh.
func (r *Rasterizer) DrawMeshTexturedGouraud(mesh MeshRenderer, transform math3d.Mat4, tex *Texture, light Lighting) {
	r.DrawItem(DrawItem{Mesh: mesh, Transform: transform, Texture: tex}, light)
}

// DrawTriangleGouraud draws one triangle with lighting evaluated per vertex
// and interpolated across the surface.
func (r *Rasterizer) DrawTriangleGouraud(tri Triangle, light Lighting) {
	r.drawTriangle(tri, nil, light, r.DisableBackfaceCulling)
}

// clipVertex is a vertex in clip space with its lit color.
type clipVertex struct {
	pos   math3d.Vec4
	shade math3d.Vec3
	uv    math3d.Vec2
}

// screenVertex holds attributes pre-divided by w for perspective-correct
// interpolation.
type screenVertex struct {
	X, Y, Z float64
	InvW    float64
	Shade   math3d.Vec3
	UV      math3d.Vec2
}

func (r *Rasterizer) drawTriangle(tri Triangle, tex *Texture, light Lighting, twoSided bool) {
	if r.fb == nil || r.camera == nil {
		return
	}
	p0, p1, p2 := tri.V[0].Position, tri.V[1].Position, tri.V[2].Position
	front := p2.Sub(p0).Cross(p1.Sub(p0)).Dot(r.camera.Position.Sub(p0)) > 0
	if !front && !twoSided {
		return
	}

	viewProj := r.camera.ViewProjectionMatrix()
	var cv [3]clipVertex
	for i, v := range tri.V {
		n := v.Normal
		if !front {
			n = n.Negate()
		}
		in := light.Intensity(v.Position, n)
		cv[i] = clipVertex{
			pos:   viewProj.MulVec4(math3d.V4FromV3(v.Position, 1)),
			shade: math3d.V3(float64(v.Color.R)*in, float64(v.Color.G)*in, float64(v.Color.B)*in),
			uv:    v.UV,
		}
	}

	var buf [4]clipVertex
	poly := clipNear(cv[:], buf[:0])
	for i := 1; i+1 < len(poly); i++ {
		r.fill(poly[0], poly[i], poly[i+1], tex)
	}
}

// clipNear clips a polygon against the near plane (z >= -w). A triangle
// yields at most four vertices.
func clipNear(in, out []clipVertex) []clipVertex {
	for i := range in {
		a, b := in[i], in[(i+1)%len(in)]
		da, db := a.pos.Z+a.pos.W, b.pos.Z+b.pos.W
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, a.lerp(b, da/(da-db)))
		}
	}
	return out
}

func (a clipVertex) lerp(b clipVertex, t float64) clipVertex {
	return clipVertex{
		pos: math3d.V4(
			a.pos.X+(b.pos.X-a.pos.X)*t,
			a.pos.Y+(b.pos.Y-a.pos.Y)*t,
			a.pos.Z+(b.pos.Z-a.pos.Z)*t,
			a.pos.W+(b.pos.W-a.pos.W)*t,
		),
		shade: a.shade.Lerp(b.shade, t),
		uv:    math3d.V2(a.uv.X+(b.uv.X-a.uv.X)*t, a.uv.Y+(b.uv.Y-a.uv.Y)*t),
	}
}

func (r *Rasterizer) fill(a, b, c clipVertex, tex *Texture) {
	w, h := float64(r.fb.Width), float64(r.fb.Height)
	var sv [3]screenVertex
	for i, v := range [3]clipVertex{a, b, c} {
		if v.pos.W <= 0 {
			return
		}
		invW := 1 / v.pos.W
		sv[i] = screenVertex{
			X:     (v.pos.X*invW + 1) * 0.5 * w,
			Y:     (1 - v.pos.Y*invW) * 0.5 * h,
			Z:     v.pos.Z * invW,
			InvW:  invW,
			Shade: v.shade.Scale(invW),
			UV:    math3d.V2(v.uv.X*invW, v.uv.Y*invW),
		}
	}

	area := math3d.V2(sv[1].X-sv[0].X, sv[1].Y-sv[0].Y).Cross(math3d.V2(sv[2].X-sv[0].X, sv[2].Y-sv[0].Y))
	if math.Abs(area) < 1e-9 {
		return
	}

	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(w-1, math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(h-1, math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			bc := barycentric(
				sv[0].X, sv[0].Y,
				sv[1].X, sv[1].Y,
				sv[2].X, sv[2].Y,
				float64(x)+0.5, float64(y)+0.5,
			)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z
			idx := y*r.fb.Width + x
			if z > 1 || z >= r.zbuffer[idx] {
				continue
			}

			oneOverW := bc.X*sv[0].InvW + bc.Y*sv[1].InvW + bc.Z*sv[2].InvW
			if oneOverW <= 0 {
				continue
			}
			shade := sv[0].Shade.Scale(bc.X).
				Add(sv[1].Shade.Scale(bc.Y)).
				Add(sv[2].Shade.Scale(bc.Z)).
				Div(oneOverW)

			var px Color
			if tex != nil {
				u := (bc.X*sv[0].UV.X + bc.Y*sv[1].UV.X + bc.Z*sv[2].UV.X) / oneOverW
				v := (bc.X*sv[0].UV.Y + bc.Y*sv[1].UV.Y + bc.Z*sv[2].UV.Y) / oneOverW
				t := tex.Sample(u, v)
				px = RGB(
					channel(float64(t.R)*shade.X/255),
					channel(float64(t.G)*shade.Y/255),
					channel(float64(t.B)*shade.Z/255),
				)
			} else {
				px = RGB(channel(shade.X), channel(shade.Y), channel(shade.Z))
			}

			r.zbuffer[idx] = z
			r.fb.Pixels[idx] = px
		}
	}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 254.5 {
		return 255
	}
	return uint8(v + 0.5)
}

// barycentric returns the weights of (px, py) for vertices 0, 1 and 2.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
