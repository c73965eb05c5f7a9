package portal

import (
	"fmt"
	"math"
	"slices"
)

const polarFloor = 90 - 0.05*180/math.Pi

// forest is the primary scene every preset shares: the forest models, a sky
// background, a shadow casting sun and orbit limits that keep the camera
// above the ground.
func forest() Config {
	return Config{
		Background: 0xa8def0,
		Camera: CameraConfig{
			Position: Vec3{-1, 5, 20},
			FOV:      45,
			Near:     0.1,
			Far:      1000,
		},
		Controls: ControlsConfig{
			MinDistance: 5,
			MaxDistance: 60,
			MinPolar:    45,
			MaxPolar:    polarFloor,
			Damping:     true,
			Pan:         true,
		},
		Sun:     SunConfig{Position: Vec3{5, 10, 4}, Intensity: 0.8, CastShadow: true},
		Ambient: 0.4,
		Assets: AssetsConfig{
			Ground: "/glb/forest-ground.glb",
			Trees:  "/glb/forest-trees.glb",
		},
	}
}

var presets = map[string]func() Config{
	"cube":     cubePreset,
	"window":   windowPreset,
	"gate":     gatePreset,
	"parallax": parallaxPreset,
	"lantern":  lanternPreset,
}

// Presets returns the built-in preset names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Preset returns a copy of the named built-in configuration.
func Preset(name string) (Config, error) {
	fn, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
	return fn(), nil
}

// cubePreset is a spinning textured cube showing three rotating cubes on red.
func cubePreset() Config {
	c := forest()
	c.Name = "cube"
	c.Portal = SurfaceConfig{
		Shape:      ShapeBox,
		Width:      1,
		Height:     1,
		Depth:      1,
		Position:   Vec3{-4, 2, 0},
		Resolution: [2]int{512, 512},
		Spin:       [2]float64{1, 1.1},
		CastShadow: true,
	}
	c.View = ViewConfig{
		Background: 0xff0000,
		Position:   Vec3{0, 0, 2},
		FOV:        75,
		Near:       0.1,
		Far:        5,
		Cubes:      true,
	}
	c.Light = LightConfig{Mode: LightStatic, Position: Vec3{-1, 2, 4}, Intensity: 1}
	return c
}

// windowPreset is a flat window standing behind the trees with a light
// circling the cubes behind it.
func windowPreset() Config {
	c := forest()
	c.Name = "window"
	c.Portal = SurfaceConfig{
		Shape:         ShapePlane,
		Width:         4,
		Height:        3,
		Position:      Vec3{0, 2.5, -6},
		PixelsPerUnit: 64,
	}
	c.View = ViewConfig{
		Background: 0x1b1d2a,
		Position:   Vec3{0, 0.5, 4},
		FOV:        60,
		Near:       0.1,
		Far:        50,
		Cubes:      true,
		Floor:      true,
	}
	c.Light = LightConfig{Mode: LightOrbit, Intensity: 1, Ambient: 0.15, Radius: 3, Speed: 1, Height: 2}
	return c
}

// gatePreset is a tall 6x7 gate whose view follows the viewer at a third of
// their position.
func gatePreset() Config {
	c := forest()
	c.Name = "gate"
	c.Camera.Position = Vec3{0, 6, 24}
	c.Portal = SurfaceConfig{
		Shape:         ShapePlane,
		Width:         6,
		Height:        7,
		Position:      Vec3{0, 3.5, -8},
		PixelsPerUnit: 64,
	}
	c.View = ViewConfig{
		Background:      0x301934,
		Position:        Vec3{0, 2, 8},
		FOV:             60,
		Near:            0.1,
		Far:             100,
		PositionDivisor: 3,
		Cubes:           true,
		Floor:           true,
	}
	c.Light = LightConfig{Mode: LightOrbit, Point: true, Intensity: 1, Ambient: 0.2, Radius: 4, Speed: 0.5, Height: 3}
	return c
}

// parallaxPreset is an angled window whose view camera moves with the viewer.
func parallaxPreset() Config {
	c := forest()
	c.Name = "parallax"
	c.Portal = SurfaceConfig{
		Shape:         ShapePlane,
		Width:         4,
		Height:        4,
		Position:      Vec3{5, 2.5, -3},
		Rotation:      Vec3{0, -math.Pi / 6, 0},
		PixelsPerUnit: 64,
	}
	c.View = ViewConfig{
		Background:      0x0b3d2e,
		Position:        Vec3{0, 1, 6},
		FOV:             50,
		Near:            0.1,
		Far:             60,
		PositionDivisor: 3,
		Cubes:           true,
		Floor:           true,
	}
	c.Light = LightConfig{Mode: LightStatic, Position: Vec3{-1, 2, 4}, Intensity: 0.9, Ambient: 0.2}
	return c
}

// lanternPreset is a slowly turning box lit from inside by an orbiting point
// light.
func lanternPreset() Config {
	c := forest()
	c.Name = "lantern"
	c.Portal = SurfaceConfig{
		Shape:         ShapeBox,
		Width:         2,
		Height:        2,
		Depth:         2,
		Position:      Vec3{3, 1.5, 2},
		PixelsPerUnit: 128,
		Spin:          [2]float64{0, 0.3},
		CastShadow:    true,
	}
	c.View = ViewConfig{
		Background: 0x000000,
		Position:   Vec3{0, 0, 3},
		FOV:        75,
		Near:       0.1,
		Far:        20,
		Cubes:      true,
	}
	c.Light = LightConfig{Mode: LightOrbit, Point: true, Intensity: 1.2, Ambient: 0.05, Radius: 2, Speed: 2, Height: 0.5}
	return c
}
