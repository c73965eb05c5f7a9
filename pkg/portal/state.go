// Package portal composes a primary scene with a portal surface that shows a
// secondary scene rendered offscreen every frame.
package portal

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/taigrr/portal/internal/metrics"
	"github.com/taigrr/portal/pkg/assets"
	"github.com/taigrr/portal/pkg/controls"
	"github.com/taigrr/portal/pkg/math3d"
	"github.com/taigrr/portal/pkg/models"
	"github.com/taigrr/portal/pkg/render"
	"github.com/taigrr/portal/pkg/scene"
)

// Renderer is the rendering collaborator: it draws a scene through a camera
// into whichever destination is bound.
type Renderer interface {
	SetRenderTarget(rt *render.RenderTarget)
	RenderTarget() *render.RenderTarget
	Render(src render.SceneSource, cam *render.Camera)
	SetSize(width, height int)
	Size() (width, height int)
}

// Controller updates a camera once per frame.
type Controller interface {
	Update()
}

// Node names used in built scenes.
const (
	NodeSurface = "portal"
	NodeGround  = "ground"
	NodeTrees   = "trees"
	LightSun    = "sun"
	LightView   = "view-light"
)

// State is everything a frame touches. It is owned by the Loop and passed to
// Composite and Resize; nothing in it is safe for concurrent use.
type State struct {
	Config   Config
	Renderer Renderer
	Metrics  *metrics.Metrics

	Camera   *render.Camera
	Scene    *scene.Scene
	Controls Controller

	PortalCamera *render.Camera
	PortalScene  *scene.Scene
	Target       *render.RenderTarget
	Surface      *scene.Node

	// Animations of the primary scene, applied by the Loop.
	Animations []Animation
	// PortalAnimations of the secondary scene, applied by Composite.
	PortalAnimations []Animation
}

// NewState builds both scenes, the cameras and the render target from cfg.
// fps sets the control damping step.
func NewState(cfg Config, r Renderer, fps int) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fps <= 0 {
		return nil, fmt.Errorf("build state: fps %d", fps)
	}
	w, h := r.Size()
	aspect := 1.0
	if w > 0 && h > 0 {
		aspect = float64(w) / float64(h)
	}

	st := &State{Config: cfg, Renderer: r}

	st.Camera = render.NewPerspectiveCamera(cfg.Camera.FOV, aspect, cfg.Camera.Near, cfg.Camera.Far)
	st.Camera.SetPosition(cfg.Camera.Position.V())
	st.Camera.LookAt(cfg.Camera.Target.V())

	orbit := controls.NewOrbit(st.Camera, cfg.Camera.Target.V(), fps)
	orbit.MinDistance = cfg.Controls.MinDistance
	orbit.MaxDistance = cfg.Controls.MaxDistance
	orbit.MinPolar = cfg.Controls.MinPolar * math.Pi / 180
	orbit.MaxPolar = cfg.Controls.MaxPolar * math.Pi / 180
	orbit.EnableDamping = cfg.Controls.Damping
	orbit.EnablePan = cfg.Controls.Pan
	st.Controls = orbit

	st.Scene = scene.New("primary", cfg.Background.ToRGBA())
	st.Scene.AddLight(scene.NewAmbientLight("ambient", cfg.Ambient))
	sun := scene.NewDirectionalLight(LightSun, cfg.Sun.Intensity, cfg.Sun.Position.V())
	sun.CastShadow = cfg.Sun.CastShadow
	st.Scene.AddLight(sun)

	tw, th := cfg.Portal.TargetSize()
	st.Target = render.NewRenderTarget(tw, th)
	st.buildSurface()
	st.buildView()
	return st, nil
}

func (st *State) buildSurface() {
	p := st.Config.Portal
	var mesh *models.Mesh
	if p.Shape == ShapeBox {
		mesh = models.NewBox(p.Width, p.Height, p.Depth)
	} else {
		mesh = models.NewPlane(p.Width, p.Height)
	}
	n := scene.NewNode(NodeSurface, mesh)
	n.Material.Texture = st.Target.Texture()
	n.Material.DoubleSided = p.Shape == ShapePlane
	n.Position = p.Position.V()
	n.Rotation = math3d.E(p.Rotation[0], p.Rotation[1], p.Rotation[2])
	n.CastShadow = p.CastShadow
	st.Scene.Add(n)
	st.Surface = n

	if p.Spin != [2]float64{} {
		st.Animations = append(st.Animations, Spin{Node: n, X: p.Spin[0], Y: p.Spin[1]})
	}
}

// viewCubes are the three cubes of the secondary scene: color and x offset.
var viewCubes = []struct {
	color uint32
	x     float64
}{
	{0x44aa88, 0},
	{0x8844aa, -2},
	{0xaa8844, 2},
}

func (st *State) buildView() {
	v := st.Config.View
	st.PortalCamera = render.NewPerspectiveCamera(v.FOV, float64(st.Target.Width)/float64(st.Target.Height), v.Near, v.Far)
	st.PortalCamera.SetPosition(v.Position.V())
	st.PortalScene = scene.New("portal", v.Background.ToRGBA())

	l := st.Config.Light
	if l.Ambient > 0 {
		st.PortalScene.AddLight(scene.NewAmbientLight("view-ambient", l.Ambient))
	}
	var pos *math3d.Vec3
	if l.Point {
		light := scene.NewPointLight(LightView, l.Intensity, l.Position.V())
		st.PortalScene.AddLight(light)
		pos = &light.Position
	} else {
		light := scene.NewDirectionalLight(LightView, l.Intensity, l.Position.V())
		st.PortalScene.AddLight(light)
		pos = &light.Position
	}
	if l.Mode == LightOrbit {
		orbit := Orbit{Position: pos, Radius: l.Radius, Speed: l.Speed, Height: l.Height}
		orbit.Apply(0)
		st.PortalAnimations = append(st.PortalAnimations, orbit)
	}

	if v.Cubes {
		box := models.NewBox(1, 1, 1)
		for i, c := range viewCubes {
			cube := scene.NewNode(fmt.Sprintf("cube-%d", i), box)
			cube.Material.Color = render.Hex(c.color)
			cube.Position = math3d.V3(c.x, 0, 0)
			st.PortalScene.Add(cube)
			speed := 1 + float64(i)*0.1
			st.PortalAnimations = append(st.PortalAnimations, Spin{Node: cube, X: speed, Y: speed})
		}
	}
	if v.Floor {
		floor := scene.NewNode("floor", models.NewPlane(20, 20))
		floor.Rotation = math3d.E(-math.Pi/2, 0, 0)
		floor.Position = math3d.V3(0, -1, 0)
		floor.Material.Texture = render.NewCheckerTexture(64, 64, 8, render.RGB(90, 90, 110), render.RGB(40, 40, 55))
		floor.ReceiveShadow = true
		st.PortalScene.Add(floor)
	}
}

// RequestAssets starts loading the configured models. Each completed model
// is attached to the primary scene when the provider is polled.
func (st *State) RequestAssets(ctx context.Context, p *assets.Provider, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	load := func(path, name string, configure func(*scene.Node)) {
		if path == "" {
			return
		}
		p.Load(ctx, path).Then(func(mesh *models.Mesh) {
			n := scene.NewNode(name, mesh)
			configure(n)
			st.Scene.Add(n)
			log.Debug("Attached model", zap.String("node", name), zap.Int("triangles", mesh.TriangleCount()))
		})
	}
	load(st.Config.Assets.Ground, NodeGround, func(n *scene.Node) { n.ReceiveShadow = true })
	load(st.Config.Assets.Trees, NodeTrees, func(n *scene.Node) { n.CastShadow = true })
}
