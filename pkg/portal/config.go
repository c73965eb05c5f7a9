package portal

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/taigrr/portal/pkg/math3d"
	"github.com/taigrr/portal/pkg/render"
)

var (
	// ErrUnknownPreset is returned for a preset name that is not built in.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid scene config")
)

// Config describes one portal scene: the primary scene with its camera and
// lights, the portal surface, and the secondary scene seen through it.
type Config struct {
	Name       string         `toml:"name"`
	Background Color          `toml:"background"`
	Camera     CameraConfig   `toml:"camera"`
	Controls   ControlsConfig `toml:"controls"`
	Sun        SunConfig      `toml:"sun"`
	Ambient    float64        `toml:"ambient"`
	Assets     AssetsConfig   `toml:"assets"`
	Portal     SurfaceConfig  `toml:"portal"`
	View       ViewConfig     `toml:"view"`
	Light      LightConfig    `toml:"light"`
}

// CameraConfig places the primary camera.
type CameraConfig struct {
	Position Vec3    `toml:"position"`
	Target   Vec3    `toml:"target"`
	FOV      float64 `toml:"fov"` // degrees
	Near     float64 `toml:"near"`
	Far      float64 `toml:"far"`
}

// ControlsConfig limits the orbit controls. Angles are in degrees.
type ControlsConfig struct {
	MinDistance float64 `toml:"min_distance"`
	MaxDistance float64 `toml:"max_distance"`
	MinPolar    float64 `toml:"min_polar"`
	MaxPolar    float64 `toml:"max_polar"`
	Damping     bool    `toml:"damping"`
	Pan         bool    `toml:"pan"`
}

// SunConfig is the primary directional light.
type SunConfig struct {
	Position   Vec3    `toml:"position"`
	Intensity  float64 `toml:"intensity"`
	CastShadow bool    `toml:"cast_shadow"`
}

// AssetsConfig lists the models loaded into the primary scene. Empty paths
// are skipped.
type AssetsConfig struct {
	Ground string `toml:"ground"`
	Trees  string `toml:"trees"`
}

// Shapes of the portal surface.
const (
	ShapePlane = "plane"
	ShapeBox   = "box"
)

// SurfaceConfig describes the portal surface and its render target.
type SurfaceConfig struct {
	Shape    string  `toml:"shape"`
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	Depth    float64 `toml:"depth"`
	Position Vec3    `toml:"position"`
	Rotation Vec3    `toml:"rotation"` // radians
	// PixelsPerUnit sizes the render target from Width and Height unless
	// Resolution is set.
	PixelsPerUnit float64 `toml:"pixels_per_unit"`
	Resolution    [2]int  `toml:"resolution"`
	// Spin rotates the surface about X and Y at these rates in rad/s.
	Spin       [2]float64 `toml:"spin"`
	CastShadow bool       `toml:"cast_shadow"`
}

// ViewConfig describes the secondary scene and camera.
type ViewConfig struct {
	Background Color   `toml:"background"`
	Position   Vec3    `toml:"position"`
	FOV        float64 `toml:"fov"` // degrees
	Near       float64 `toml:"near"`
	Far        float64 `toml:"far"`
	// PositionDivisor, when positive, places the secondary camera at the
	// primary camera position divided by it every frame.
	PositionDivisor float64 `toml:"position_divisor"`
	Cubes           bool    `toml:"cubes"`
	Floor           bool    `toml:"floor"`
}

// Light modes of the secondary scene.
const (
	LightStatic = "static"
	LightOrbit  = "orbit"
)

// LightConfig is the secondary scene light.
type LightConfig struct {
	Mode      string  `toml:"mode"`
	Point     bool    `toml:"point"`
	Position  Vec3    `toml:"position"`
	Intensity float64 `toml:"intensity"`
	Ambient   float64 `toml:"ambient"`
	Radius    float64 `toml:"radius"`
	Speed     float64 `toml:"speed"` // rad/s
	Height    float64 `toml:"height"`
}

// TargetSize returns the render target resolution in pixels.
func (s SurfaceConfig) TargetSize() (width, height int) {
	if s.Resolution[0] > 0 && s.Resolution[1] > 0 {
		return s.Resolution[0], s.Resolution[1]
	}
	return int(math.Round(s.Width * s.PixelsPerUnit)), int(math.Round(s.Height * s.PixelsPerUnit))
}

const maxTargetSide = 4096

// Validate reports every problem found, joined.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov %v outside (0, 180)", c.Camera.FOV)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera clip planes %v..%v", c.Camera.Near, c.Camera.Far)
	check(c.Controls.MinDistance >= 0 && c.Controls.MaxDistance >= c.Controls.MinDistance,
		"controls distance %v..%v", c.Controls.MinDistance, c.Controls.MaxDistance)
	check(c.Controls.MinPolar >= 0 && c.Controls.MaxPolar <= 180 && c.Controls.MaxPolar >= c.Controls.MinPolar,
		"controls polar %v..%v", c.Controls.MinPolar, c.Controls.MaxPolar)

	check(c.Portal.Shape == ShapePlane || c.Portal.Shape == ShapeBox, "portal.shape %q", c.Portal.Shape)
	check(c.Portal.Width > 0 && c.Portal.Height > 0, "portal size %vx%v", c.Portal.Width, c.Portal.Height)
	check(c.Portal.Shape != ShapeBox || c.Portal.Depth > 0, "portal.depth %v for a box", c.Portal.Depth)
	w, h := c.Portal.TargetSize()
	check(w > 0 && h > 0 && w <= maxTargetSide && h <= maxTargetSide, "render target %dx%d", w, h)

	check(c.View.FOV > 0 && c.View.FOV < 180, "view.fov %v outside (0, 180)", c.View.FOV)
	check(c.View.Near > 0 && c.View.Far > c.View.Near, "view clip planes %v..%v", c.View.Near, c.View.Far)
	check(c.View.PositionDivisor >= 0, "view.position_divisor %v", c.View.PositionDivisor)

	check(c.Light.Mode == LightStatic || c.Light.Mode == LightOrbit, "light.mode %q", c.Light.Mode)
	check(c.Light.Mode != LightOrbit || c.Light.Radius > 0, "light.radius %v for an orbit", c.Light.Radius)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// LoadConfig reads a TOML scene file layered over a preset. A "preset" key
// in the file overrides fallbackPreset.
func LoadConfig(path, fallbackPreset string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read scene config: %w", err)
	}
	return ParseConfig(data, fallbackPreset)
}

// ParseConfig decodes TOML over a preset and validates the result.
func ParseConfig(data []byte, fallbackPreset string) (Config, error) {
	var head struct {
		Preset string `toml:"preset"`
	}
	if err := toml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("parse scene config: %w", err)
	}
	name := fallbackPreset
	if head.Preset != "" {
		name = head.Preset
	}
	cfg, err := Preset(name)
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MarshalTOML encodes the config.
func (c Config) MarshalTOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode scene config: %w", err)
	}
	return data, nil
}

// Vec3 is a TOML friendly vector.
type Vec3 [3]float64

// V converts to a math3d vector.
func (v Vec3) V() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// Color is a 0xRRGGBB color written as "#rrggbb" in TOML.
type Color uint32

// ToRGBA converts to a render color.
func (c Color) ToRGBA() render.Color {
	return render.Hex(uint32(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("#%06x", uint32(c))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	s := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(string(b)), "#"), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return fmt.Errorf("parse color %q: want #rrggbb", b)
	}
	*c = Color(v)
	return nil
}
