package render

// RenderTarget is an offscreen destination with a fixed resolution. Its
// framebuffer and texture share one pixel slice, so whatever is rendered into
// the target is visible to any material sampling Texture without a copy.
type RenderTarget struct {
	Width  int
	Height int

	fb  *Framebuffer
	tex *Texture
}

// NewRenderTarget allocates a width x height target.
func NewRenderTarget(width, height int) *RenderTarget {
	fb := NewFramebuffer(width, height)
	return &RenderTarget{
		Width:  width,
		Height: height,
		fb:     fb,
		tex: &Texture{
			Width:      width,
			Height:     height,
			Pixels:     fb.Pixels,
			WrapU:      WrapClamp,
			WrapV:      WrapClamp,
			FilterMode: FilterBilinear,
		},
	}
}

// Framebuffer returns the pixel storage rendered into.
func (rt *RenderTarget) Framebuffer() *Framebuffer {
	return rt.fb
}

// Texture returns a texture view of the target.
func (rt *RenderTarget) Texture() *Texture {
	return rt.tex
}
