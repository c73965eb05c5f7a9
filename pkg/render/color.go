package render

import (
	"image/color"
	"math"
)

// Color is an alias for color.RGBA.
type Color = color.RGBA

var (
	ColorBlack = RGB(0, 0, 0)
	ColorWhite = RGB(0xff, 0xff, 0xff)
	ColorRed   = RGB(0xff, 0, 0)
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// Hex creates an opaque color from a 0xRRGGBB value.
func Hex(v uint32) Color {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// FromFloats converts 0..1 channel values to a color.
func FromFloats(c [4]float64) Color {
	return Color{R: unit(c[0]), G: unit(c[1]), B: unit(c[2]), A: unit(c[3])}
}

func unit(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 0xff))
}

// channels applies fn to each channel pair of a and b.
func channels(a, b Color, fn func(x, y uint8) uint8) Color {
	return Color{R: fn(a.R, b.R), G: fn(a.G, b.G), B: fn(a.B, b.B), A: fn(a.A, b.A)}
}

// ModulateColor multiplies two colors channel by channel.
func ModulateColor(a, b Color) Color {
	return channels(a, b, func(x, y uint8) uint8 {
		return uint8(uint16(x) * uint16(y) / 0xff)
	})
}

func lerpColor(a, b Color, t float64) Color {
	return channels(a, b, func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	})
}
