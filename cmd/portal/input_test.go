package main

import (
	"math"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"

	"github.com/taigrr/portal/pkg/controls"
	"github.com/taigrr/portal/pkg/math3d"
	"github.com/taigrr/portal/pkg/render"
)

func newTestInput() (*input, *controls.Orbit) {
	cam := render.NewPerspectiveCamera(45, 1, 0.1, 100)
	cam.SetPosition(math3d.V3(0, 0, 10))
	orbit := controls.NewOrbit(cam, math3d.V3(0, 0, 0), 30)
	orbit.EnableDamping = false
	orbit.Update()
	return newInput(orbit, cam, 20), orbit
}

func TestInputLeftDragOrbits(t *testing.T) {
	in, orbit := newTestInput()

	in.handle(uv.MouseClickEvent{X: 10, Y: 5, Button: uv.MouseLeft})
	in.handle(uv.MouseMotionEvent{X: 15, Y: 5, Button: uv.MouseLeft})
	orbit.Update()

	assert.InDelta(t, -math.Pi/2, orbit.Azimuth(), 1e-9, "a quarter of the height turns a quarter circle")
	assert.InDelta(t, math.Pi/2, orbit.Polar(), 1e-9)

	in.handle(uv.MouseReleaseEvent{X: 15, Y: 5, Button: uv.MouseLeft})
	in.handle(uv.MouseMotionEvent{X: 19, Y: 9})
	orbit.Update()
	assert.InDelta(t, -math.Pi/2, orbit.Azimuth(), 1e-9, "motion after release does nothing")
}

func TestInputMiddleDragOrbits(t *testing.T) {
	in, orbit := newTestInput()

	in.handle(uv.MouseClickEvent{X: 0, Y: 10, Button: uv.MouseMiddle})
	in.handle(uv.MouseMotionEvent{X: 0, Y: 9, Button: uv.MouseMiddle})
	orbit.Update()

	assert.InDelta(t, math.Pi/2+2*math.Pi/20, orbit.Polar(), 1e-9)
}

func TestInputRightDragPans(t *testing.T) {
	in, orbit := newTestInput()

	in.handle(uv.MouseClickEvent{X: 10, Y: 10, Button: uv.MouseRight})
	in.handle(uv.MouseMotionEvent{X: 14, Y: 10, Button: uv.MouseRight})
	orbit.Update()

	target := orbit.Target()
	assert.Less(t, target.X, 0.0, "the scene follows the pointer")
	assert.InDelta(t, 0, target.Y, 1e-9)
	assert.InDelta(t, 0, orbit.Azimuth(), 1e-9, "panning does not rotate")
}

func TestInputWheelZooms(t *testing.T) {
	in, orbit := newTestInput()

	in.handle(uv.MouseWheelEvent{Button: uv.MouseWheelUp})
	orbit.Update()
	assert.InDelta(t, 9.5, orbit.Distance(), 1e-9)

	in.handle(uv.MouseWheelEvent{Button: uv.MouseWheelDown})
	orbit.Update()
	assert.InDelta(t, 10, orbit.Distance(), 1e-9)
}
