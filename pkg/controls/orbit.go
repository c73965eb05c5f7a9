// Package controls moves a camera around a target point in response to
// rotate, zoom and pan input, with spring damping.
package controls

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/portal/pkg/math3d"
	"github.com/taigrr/portal/pkg/render"
)

// Axis is one spring-damped value moving toward Goal.
type Axis struct {
	Value float64
	Goal  float64

	vel    float64
	spring harmonica.Spring
}

// NewAxis creates a critically damped axis resting at v.
func NewAxis(fps int, v float64) Axis {
	return Axis{
		Value:  v,
		Goal:   v,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update advances the axis one frame. Without damping it snaps to Goal.
func (a *Axis) Update(damped bool) {
	if !damped {
		a.Value, a.vel = a.Goal, 0
		return
	}
	a.Value, a.vel = a.spring.Update(a.Value, a.vel, a.Goal)
}

// Orbit keeps a camera on a sphere around Target. Polar is measured from +Y,
// azimuth around +Y starting at +Z.
type Orbit struct {
	MinDistance, MaxDistance float64
	MinPolar, MaxPolar       float64

	EnableDamping bool
	EnablePan     bool

	camera   *render.Camera
	fps      int
	azimuth  Axis
	polar    Axis
	distance Axis
	target   [3]Axis

	home [3]float64
	base math3d.Vec3
}

// NewOrbit creates controls for cam orbiting target from the camera's
// current position.
func NewOrbit(cam *render.Camera, target math3d.Vec3, fps int) *Orbit {
	o := &Orbit{
		MinDistance:   0,
		MaxDistance:   math.Inf(1),
		MinPolar:      0,
		MaxPolar:      math.Pi,
		EnableDamping: true,
		EnablePan:     true,
		camera:        cam,
		fps:           fps,
	}
	offset := cam.Position.Sub(target)
	d := offset.Len()
	polar := 0.0
	if d > 0 {
		polar = math.Acos(math.Max(-1, math.Min(1, offset.Y/d)))
	}
	az := math.Atan2(offset.X, offset.Z)

	o.home = [3]float64{az, polar, d}
	o.base = target
	o.reset()
	return o
}

func (o *Orbit) reset() {
	o.azimuth = NewAxis(o.fps, o.home[0])
	o.polar = NewAxis(o.fps, o.home[1])
	o.distance = NewAxis(o.fps, o.home[2])
	o.target = [3]Axis{
		NewAxis(o.fps, o.base.X),
		NewAxis(o.fps, o.base.Y),
		NewAxis(o.fps, o.base.Z),
	}
}

// Reset returns to the initial view.
func (o *Orbit) Reset() {
	o.reset()
	o.Update()
}

// Rotate changes the goal azimuth and polar angles by the given radians.
func (o *Orbit) Rotate(dAzimuth, dPolar float64) {
	o.azimuth.Goal += dAzimuth
	o.polar.Goal = clamp(o.polar.Goal+dPolar, o.MinPolar, o.MaxPolar)
}

// Zoom scales the goal distance. Factors above 1 move away from the target.
func (o *Orbit) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	o.distance.Goal = clamp(o.distance.Goal*factor, o.MinDistance, o.MaxDistance)
}

// Pan moves the target in the camera's screen plane. dx and dy are
// fractions of the current distance.
func (o *Orbit) Pan(dx, dy float64) {
	if !o.EnablePan {
		return
	}
	d := o.distance.Value
	delta := o.camera.Right().Scale(dx * d).Add(o.camera.Up().Scale(dy * d))
	o.target[0].Goal += delta.X
	o.target[1].Goal += delta.Y
	o.target[2].Goal += delta.Z
}

// Update advances damping one frame, applies the limits and places the
// camera looking at the target.
func (o *Orbit) Update() {
	o.polar.Goal = clamp(o.polar.Goal, o.MinPolar, o.MaxPolar)
	o.distance.Goal = clamp(o.distance.Goal, o.MinDistance, o.MaxDistance)

	o.azimuth.Update(o.EnableDamping)
	o.polar.Update(o.EnableDamping)
	o.distance.Update(o.EnableDamping)
	for i := range o.target {
		o.target[i].Update(o.EnableDamping)
	}
	o.polar.Value = clamp(o.polar.Value, o.MinPolar, o.MaxPolar)
	o.distance.Value = clamp(o.distance.Value, o.MinDistance, o.MaxDistance)

	target := o.Target()
	sin := math.Sin(o.polar.Value)
	offset := math3d.V3(
		sin*math.Sin(o.azimuth.Value),
		math.Cos(o.polar.Value),
		sin*math.Cos(o.azimuth.Value),
	).Scale(o.distance.Value)

	o.camera.SetPosition(target.Add(offset))
	o.camera.LookAt(target)
}

// Target returns the current look-at point.
func (o *Orbit) Target() math3d.Vec3 {
	return math3d.V3(o.target[0].Value, o.target[1].Value, o.target[2].Value)
}

// Azimuth returns the current azimuth in radians.
func (o *Orbit) Azimuth() float64 { return o.azimuth.Value }

// Polar returns the current polar angle in radians.
func (o *Orbit) Polar() float64 { return o.polar.Value }

// Distance returns the current distance to the target.
func (o *Orbit) Distance() float64 { return o.distance.Value }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
