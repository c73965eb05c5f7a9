package portal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/portal/pkg/math3d"
	"github.com/taigrr/portal/pkg/render"
	"github.com/taigrr/portal/pkg/scene"
)

func newTestState(t *testing.T, preset string, w, h int) (*State, *spyRenderer) {
	t.Helper()
	cfg, err := Preset(preset)
	require.NoError(t, err)
	r := newSpyRenderer(w, h)
	st, err := NewState(cfg, r, 60)
	require.NoError(t, err)
	return st, r
}

func TestCompositeCopiesRotation(t *testing.T) {
	rotations := []math3d.Euler{
		math3d.E(0.2, 0.5, 0),
		math3d.E(0, 0, 0),
		math3d.E(-1.2, 3.1, 0.7),
		math3d.E(math.Pi/2, -math.Pi, -0.01),
	}

	for _, rot := range rotations {
		st, _ := newTestState(t, "cube", 800, 600)
		home := st.PortalCamera.Position

		st.Camera.SetRotation(rot)
		Composite(st, 1.5)

		assert.Equal(t, rot, st.PortalCamera.Rotation, "rotation is copied exactly")
		assert.Equal(t, home, st.PortalCamera.Position, "position stays at the vantage point")
	}
}

func TestCompositePositionDivisor(t *testing.T) {
	st, _ := newTestState(t, "gate", 800, 600)
	require.Equal(t, 3.0, st.Config.View.PositionDivisor)

	st.Camera.SetPosition(math3d.V3(3, 9, 27))
	Composite(st, 0)
	assert.Equal(t, math3d.V3(1, 3, 9), st.PortalCamera.Position)
}

func TestCompositeBindsAndRestoresDestination(t *testing.T) {
	st, r := newTestState(t, "window", 800, 600)
	r.onRender = func() {
		assert.Same(t, st.Target, r.RenderTarget(), "portal pass renders into the target")
	}

	Composite(st, 2)

	require.Len(t, r.calls, 1)
	assert.Same(t, st.PortalCamera, r.calls[0].cam)
	assert.Same(t, st.PortalScene, r.calls[0].src)
	assert.Nil(t, r.RenderTarget(), "default destination restored")
	assert.Equal(t, []*render.RenderTarget{st.Target, nil}, r.binds)
}

func TestCompositeRestoresDestinationOnPanic(t *testing.T) {
	st, r := newTestState(t, "cube", 800, 600)
	r.onRender = func() { panic("device lost") }

	assert.Panics(t, func() { Composite(st, 0) })
	assert.Nil(t, r.RenderTarget())
}

func TestCompositeAnimatesPortalScene(t *testing.T) {
	st, _ := newTestState(t, "cube", 800, 600)
	Composite(st, 2)

	for i := range 3 {
		cube := st.PortalScene.Find("cube-" + string(rune('0'+i)))
		require.NotNil(t, cube)
		want := 2 * (1 + float64(i)*0.1)
		assert.InDelta(t, want, cube.Rotation.X, 1e-12)
		assert.InDelta(t, want, cube.Rotation.Y, 1e-12)
	}
}

func TestOrbitLightFollowsCircle(t *testing.T) {
	st, _ := newTestState(t, "window", 800, 600)
	cfg := st.Config.Light
	light, ok := st.PortalScene.Light(LightView).(*scene.DirectionalLight)
	require.True(t, ok)

	for _, tm := range []float64{0, 0.25, 1, math.Pi, 10, 123.456} {
		Composite(st, tm)
		assert.InDelta(t, cfg.Radius*math.Cos(cfg.Speed*tm), light.Position.X, 1e-12, "t=%v", tm)
		assert.InDelta(t, cfg.Radius*math.Sin(cfg.Speed*tm), light.Position.Z, 1e-12, "t=%v", tm)
		assert.Equal(t, cfg.Height, light.Position.Y)
	}
}

func TestOrbitPointLight(t *testing.T) {
	st, _ := newTestState(t, "gate", 800, 600)
	light, ok := st.PortalScene.Light(LightView).(*scene.PointLight)
	require.True(t, ok)

	Composite(st, 3)
	want := OrbitPosition(4, 0.5, 3, 3)
	assert.True(t, want.ApproxEqual(light.Position, 1e-12))
}

func TestResize(t *testing.T) {
	cfg, err := Preset("gate")
	require.NoError(t, err)
	cfg.Portal.PixelsPerUnit = 512
	r := newSpyRenderer(800, 600)
	st, err := NewState(cfg, r, 60)
	require.NoError(t, err)

	require.Equal(t, 3072, st.Target.Width)
	require.Equal(t, 3584, st.Target.Height)
	portalAspect := st.PortalCamera.AspectRatio
	assert.InDelta(t, 800.0/600.0, st.Camera.AspectRatio, 1e-12)

	assert.True(t, Resize(st, 1024, 768))
	assert.InDelta(t, 1.333, st.Camera.AspectRatio, 1e-3)
	assert.Equal(t, 1024.0/768.0, st.Camera.AspectRatio)
	w, h := r.Size()
	assert.Equal(t, [2]int{1024, 768}, [2]int{w, h})
	assert.Equal(t, 3072, st.Target.Width)
	assert.Equal(t, 3584, st.Target.Height)
	assert.Equal(t, portalAspect, st.PortalCamera.AspectRatio)

	assert.False(t, Resize(st, 1024, 768), "second identical resize is a no-op")
	assert.Equal(t, 1, r.resizes)

	assert.False(t, Resize(st, 0, 768))
	assert.False(t, Resize(st, 1024, -1))
	assert.Equal(t, 1, r.resizes)
}

func TestResizeWithRealRenderer(t *testing.T) {
	cfg, err := Preset("window")
	require.NoError(t, err)
	r := render.NewRenderer(80, 40)
	st, err := NewState(cfg, r, 30)
	require.NoError(t, err)

	require.True(t, Resize(st, 120, 90))
	assert.Len(t, r.Screen().Pixels, 120*90)
	assert.Equal(t, 256, st.Target.Width)
	assert.Equal(t, 192, st.Target.Height)
	assert.Len(t, st.Target.Framebuffer().Pixels, 256*192)
}
