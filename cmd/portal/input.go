package main

import (
	"math"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/portal/pkg/controls"
	"github.com/taigrr/portal/pkg/render"
)

// action is what an input event asks of the viewer besides moving the camera.
type action int

const (
	actionNone action = iota
	actionQuit
	actionToggleHUD
)

const (
	keyRotateStep = 0.1
	zoomStep      = 0.95
)

// input turns terminal mouse and key events into orbit control calls.
// Left and middle drag orbit, right drag pans, the wheel zooms.
type input struct {
	orbit  *controls.Orbit
	camera *render.Camera
	rows   int

	dragging   bool
	dragButton uv.MouseButton
	lastX      int
	lastY      int
}

func newInput(orbit *controls.Orbit, cam *render.Camera, rows int) *input {
	return &input{orbit: orbit, camera: cam, rows: max(rows, 1)}
}

// resize keeps drag speed relative to the terminal height.
func (in *input) resize(rows int) {
	in.rows = max(rows, 1)
}

func (in *input) handle(ev uv.Event) action {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		return in.key(ev)

	case uv.MouseClickEvent:
		in.dragging = true
		in.dragButton = ev.Button
		in.lastX, in.lastY = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		in.dragging = false

	case uv.MouseMotionEvent:
		if !in.dragging {
			return actionNone
		}
		dx := float64(ev.X - in.lastX)
		dy := float64(ev.Y - in.lastY)
		in.lastX, in.lastY = ev.X, ev.Y
		in.drag(dx, dy)

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			in.orbit.Zoom(zoomStep)
		case uv.MouseWheelDown:
			in.orbit.Zoom(1 / zoomStep)
		}
	}
	return actionNone
}

// drag applies a mouse move of dx, dy cells. A drag across the full
// terminal height turns a full circle.
func (in *input) drag(dx, dy float64) {
	h := float64(in.rows)
	if in.dragButton == uv.MouseRight {
		// Scale so the target follows the pointer at the target's depth.
		k := 2 * math.Tan(in.camera.FOV/2) / h
		in.orbit.Pan(-dx*k, dy*k)
		return
	}
	in.orbit.Rotate(-2*math.Pi*dx/h, -2*math.Pi*dy/h)
}

func (in *input) key(ev uv.KeyPressEvent) action {
	switch {
	case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
		return actionQuit
	case ev.MatchString("left"):
		in.orbit.Rotate(keyRotateStep, 0)
	case ev.MatchString("right"):
		in.orbit.Rotate(-keyRotateStep, 0)
	case ev.MatchString("up"):
		in.orbit.Rotate(0, -keyRotateStep)
	case ev.MatchString("down"):
		in.orbit.Rotate(0, keyRotateStep)
	case ev.MatchString("+", "="):
		in.orbit.Zoom(zoomStep)
	case ev.MatchString("-", "_"):
		in.orbit.Zoom(1 / zoomStep)
	case ev.MatchString("r"):
		in.orbit.Reset()
	case ev.MatchString("?"), ev.MatchString("shift+/"):
		return actionToggleHUD
	}
	return actionNone
}
