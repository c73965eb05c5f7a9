package render

import "math"

// WrapMode says how UVs outside [0,1] map back into the image.
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// FilterMode selects nearest or bilinear sampling.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// Texture is a sampled 2D image. Row 0 is the top of the image, UV (0,0) is
// its bottom-left corner.
type Texture struct {
	Width      int
	Height     int
	Pixels     []Color
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

// NewTexture creates an empty repeating texture.
func NewTexture(width, height int) *Texture {
	return &Texture{Width: width, Height: height, Pixels: make([]Color, width*height)}
}

// NewCheckerTexture fills a texture with size×size squares alternating a and b,
// starting with a in the top-left corner.
func NewCheckerTexture(width, height, size int, a, b Color) *Texture {
	tex := NewTexture(width, height)
	for i := range tex.Pixels {
		x, y := i%width, i/width
		tex.Pixels[i] = a
		if (x/size+y/size)&1 == 1 {
			tex.Pixels[i] = b
		}
	}
	return tex
}

// GetPixel returns the pixel at (x, y), or transparent black out of range.
func (t *Texture) GetPixel(x, y int) Color {
	if uint(x) >= uint(t.Width) || uint(y) >= uint(t.Height) {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Sample returns the texture color at UV coordinates.
func (t *Texture) Sample(u, v float64) Color {
	if len(t.Pixels) == 0 {
		return Color{}
	}
	// Image rows run top-down while v runs bottom-up.
	u, v = t.WrapU.coord(u), 1-t.WrapV.coord(v)
	if t.FilterMode == FilterBilinear {
		return t.bilinear(u*float64(t.Width)-0.5, v*float64(t.Height)-0.5)
	}
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.Pixels[y*t.Width+x]
}

// bilinear blends the four texels around the texel-space point (fx, fy).
func (t *Texture) bilinear(fx, fy float64) Color {
	x, y := math.Floor(fx), math.Floor(fy)
	tx, ty := fx-x, fy-y
	x0, y0 := int(x), int(y)

	texel := func(dx, dy int) Color {
		return t.GetPixel(t.WrapU.pixel(x0+dx, t.Width), t.WrapV.pixel(y0+dy, t.Height))
	}
	top := lerpColor(texel(0, 0), texel(1, 0), tx)
	bottom := lerpColor(texel(0, 1), texel(1, 1), tx)
	return lerpColor(top, bottom, ty)
}

func (m WrapMode) coord(c float64) float64 {
	if m == WrapClamp {
		return math.Max(0, math.Min(1, c))
	}
	return c - math.Floor(c)
}

func (m WrapMode) pixel(x, size int) int {
	if m == WrapClamp {
		return max(0, min(x, size-1))
	}
	return ((x % size) + size) % size
}
