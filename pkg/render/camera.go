package render

import (
	"math"

	"github.com/taigrr/portal/pkg/math3d"
)

// Camera is a perspective camera positioned in world space.
//
// Rotation.X is pitch, Rotation.Y is yaw and Rotation.Z is roll. The camera
// orientation is yaw applied after pitch after roll, so copying Rotation
// between two cameras makes them face the same way.
type Camera struct {
	Position math3d.Vec3
	Rotation math3d.Euler

	FOV         float64 // vertical field of view in radians
	AspectRatio float64 // width / height
	Near        float64
	Far         float64

	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
	viewProjDirty  bool
}

// NewCamera creates a camera with a 60 degree field of view at the origin.
func NewCamera() *Camera {
	return &Camera{
		FOV:           math.Pi / 3,
		AspectRatio:   16.0 / 9.0,
		Near:          0.1,
		Far:           1000,
		viewDirty:     true,
		projDirty:     true,
		viewProjDirty: true,
	}
}

// NewPerspectiveCamera creates a camera from a field of view in degrees.
func NewPerspectiveCamera(fovDegrees, aspect, near, far float64) *Camera {
	c := NewCamera()
	c.FOV = fovDegrees * math.Pi / 180
	c.AspectRatio = aspect
	c.Near = near
	c.Far = far
	return c
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.markView()
}

// SetRotation sets the camera orientation.
func (c *Camera) SetRotation(rot math3d.Euler) {
	c.Rotation = rot
	c.markView()
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.markProj()
}

// SetAspectRatio sets the projection aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.markProj()
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.markProj()
}

func (c *Camera) markView() {
	c.viewDirty = true
	c.viewProjDirty = true
}

func (c *Camera) markProj() {
	c.projDirty = true
	c.viewProjDirty = true
}

// Forward returns the direction the camera looks along.
func (c *Camera) Forward() math3d.Vec3 {
	return c.orientation().MulVec3Dir(math3d.V3(0, 0, -1))
}

// Right returns the camera's right vector.
func (c *Camera) Right() math3d.Vec3 {
	return c.orientation().MulVec3Dir(math3d.V3(1, 0, 0))
}

// Up returns the camera's up vector.
func (c *Camera) Up() math3d.Vec3 {
	return c.orientation().MulVec3Dir(math3d.V3(0, 1, 0))
}

func (c *Camera) orientation() math3d.Mat4 {
	return math3d.RotateY(c.Rotation.Y).
		Mul(math3d.RotateX(c.Rotation.X)).
		Mul(math3d.RotateZ(c.Rotation.Z))
}

// ViewMatrix returns the world to camera transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		rot := math3d.RotateZ(-c.Rotation.Z).
			Mul(math3d.RotateX(-c.Rotation.X)).
			Mul(math3d.RotateY(-c.Rotation.Y))
		c.viewMatrix = rot.Mul(math3d.Translate(c.Position.Negate()))
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.viewProjDirty {
		c.viewProjMatrix = c.ProjectionMatrix().Mul(c.ViewMatrix())
		c.viewProjDirty = false
	}
	return c.viewProjMatrix
}

// LookAt orients the camera toward target without roll.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position)
	if dir.Len() == 0 {
		return
	}
	dir = dir.Normalize()
	c.Rotation = math3d.E(math.Asin(dir.Y), math.Atan2(-dir.X, -dir.Z), 0)
	c.markView()
}

// WorldToScreen projects a world point into a width x height viewport.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}
	x = (ndc.X + 1) * 0.5 * float64(width)
	y = (1 - ndc.Y) * 0.5 * float64(height)
	return x, y, ndc.Z, true
}
