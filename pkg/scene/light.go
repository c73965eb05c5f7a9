package scene

import (
	"github.com/taigrr/portal/pkg/math3d"
	"github.com/taigrr/portal/pkg/render"
)

// Light is a light stored on a Scene.
type Light interface {
	AsLightBase() *LightBase
}

// LightBase holds what every light has.
type LightBase struct {
	Name      string
	On        bool
	Intensity float64
}

// AsLightBase implements Light.
func (lb *LightBase) AsLightBase() *LightBase {
	return lb
}

// AmbientLight lights every surface uniformly.
type AmbientLight struct {
	LightBase
}

// NewAmbientLight creates an ambient light.
func NewAmbientLight(name string, intensity float64) *AmbientLight {
	return &AmbientLight{LightBase{Name: name, On: true, Intensity: intensity}}
}

// DirectionalLight shines from Position toward Target with no falloff, like
// the sun. Only the direction matters for shading.
type DirectionalLight struct {
	LightBase
	Position   math3d.Vec3
	Target     math3d.Vec3
	CastShadow bool
}

// NewDirectionalLight creates a directional light aimed at the origin.
func NewDirectionalLight(name string, intensity float64, pos math3d.Vec3) *DirectionalLight {
	return &DirectionalLight{
		LightBase: LightBase{Name: name, On: true, Intensity: intensity},
		Position:  pos,
	}
}

// Direction returns the unit vector from the target toward the light.
func (l *DirectionalLight) Direction() math3d.Vec3 {
	return l.Position.Sub(l.Target).Normalize()
}

// PointLight radiates from a position in every direction.
type PointLight struct {
	LightBase
	Position math3d.Vec3
}

// NewPointLight creates a point light.
func NewPointLight(name string, intensity float64, pos math3d.Vec3) *PointLight {
	return &PointLight{
		LightBase: LightBase{Name: name, On: true, Intensity: intensity},
		Position:  pos,
	}
}

func shading(lights []Light) render.Lighting {
	var out render.Lighting
	for _, l := range lights {
		if !l.AsLightBase().On {
			continue
		}
		switch l := l.(type) {
		case *AmbientLight:
			out.Ambient += l.Intensity
		case *DirectionalLight:
			out.Lights = append(out.Lights, render.Light{Direction: l.Direction(), Intensity: l.Intensity})
		case *PointLight:
			out.Lights = append(out.Lights, render.Light{Position: l.Position, Point: true, Intensity: l.Intensity})
		}
	}
	return out
}
