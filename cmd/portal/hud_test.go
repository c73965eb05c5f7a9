package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHUDHiddenOnlyClears(t *testing.T) {
	var buf bytes.Buffer
	h := HUD{}
	h.Render(&buf, 80, 24, hudInfo{fps: 30, preset: "cube"})

	assert.Equal(t, "\x1b[1;1H\x1b[2K\x1b[24;1H\x1b[2K", buf.String())
}

func TestHUDShown(t *testing.T) {
	var buf bytes.Buffer
	h := HUD{Show: true}
	h.Render(&buf, 80, 24, hudInfo{
		fps:       29.6,
		preset:    "gate",
		target:    [2]int{384, 448},
		triangles: 1234,
		distance:  12.3,
		polar:     math.Pi / 3,
		frame:     42,
	})

	out := buf.String()
	assert.Contains(t, out, " 30 FPS ")
	assert.Contains(t, out, " gate ")
	assert.Contains(t, out, " 1234 tris ")
	assert.Contains(t, out, "portal 384x448")
	assert.Contains(t, out, "dist 12.3")
	assert.Contains(t, out, "polar 60°")
	assert.Contains(t, out, "frame 42")
}
