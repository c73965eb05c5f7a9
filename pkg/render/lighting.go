package render

import (
	"math"

	"github.com/taigrr/portal/pkg/math3d"
)

// Light is one diffuse light contribution.
type Light struct {
	// Direction points from the surface toward a directional light.
	Direction math3d.Vec3
	// Position is used instead of Direction when Point is set.
	Position  math3d.Vec3
	Point     bool
	Intensity float64
}

// Lighting is the set of lights a scene is shaded with.
type Lighting struct {
	Ambient float64
	Lights  []Light
}

// DefaultLighting is a soft key light from above.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient: 0.3,
		Lights: []Light{
			{Direction: math3d.V3(0.5, 1, 0.3).Normalize(), Intensity: 0.7},
		},
	}
}

// Intensity returns the ambient term plus every light's Lambert term at a
// surface point with the given normal.
func (l Lighting) Intensity(pos, normal math3d.Vec3) float64 {
	in := l.Ambient
	for _, light := range l.Lights {
		dir := light.Direction
		if light.Point {
			dir = light.Position.Sub(pos)
		}
		in += light.Intensity * math.Max(0, normal.Dot(dir.Normalize()))
	}
	return in
}
