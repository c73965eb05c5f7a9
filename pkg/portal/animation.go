package portal

import (
	"math"

	"github.com/taigrr/portal/pkg/math3d"
	"github.com/taigrr/portal/pkg/scene"
)

// Animation sets some transform as a pure function of elapsed seconds.
type Animation interface {
	Apply(t float64)
}

// Spin rotates a node about X and Y: rotation.x = t*X, rotation.y = t*Y.
type Spin struct {
	Node *scene.Node
	X, Y float64
}

// Apply implements Animation.
func (s Spin) Apply(t float64) {
	s.Node.Rotation.X = t * s.X
	s.Node.Rotation.Y = t * s.Y
}

// Orbit moves a position around the Y axis on a circle of Radius at Height:
// x = Radius*cos(Speed*t), z = Radius*sin(Speed*t).
type Orbit struct {
	Position *math3d.Vec3
	Radius   float64
	Speed    float64
	Height   float64
}

// Apply implements Animation.
func (o Orbit) Apply(t float64) {
	*o.Position = OrbitPosition(o.Radius, o.Speed, o.Height, t)
}

// OrbitPosition returns the orbit point at time t.
func OrbitPosition(radius, speed, height, t float64) math3d.Vec3 {
	return math3d.V3(radius*math.Cos(speed*t), height, radius*math.Sin(speed*t))
}
