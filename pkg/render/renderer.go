package render

// SceneSource is anything the Renderer can draw.
type SceneSource interface {
	Background() Color
	Lighting() Lighting
	Items(yield func(DrawItem))
}

// Stats describes the last Render call.
type Stats struct {
	Items     int
	Culled    int
	Offscreen bool
}

// Renderer draws scenes into either the default screen framebuffer or an
// offscreen RenderTarget, whichever is bound.
type Renderer struct {
	screen      *Framebuffer
	target      *RenderTarget
	rasterizers map[*Framebuffer]*Rasterizer
	stats       Stats
}

// NewRenderer creates a renderer whose default destination is width x height.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		screen:      NewFramebuffer(width, height),
		rasterizers: make(map[*Framebuffer]*Rasterizer),
	}
}

// SetSize resizes the default destination. Bound render targets keep their
// resolution.
func (r *Renderer) SetSize(width, height int) {
	if !r.screen.Resize(width, height) {
		return
	}
	if rast, ok := r.rasterizers[r.screen]; ok {
		rast.Resize()
	}
}

// Size returns the default destination dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.screen.Width, r.screen.Height
}

// Screen returns the default destination.
func (r *Renderer) Screen() *Framebuffer {
	return r.screen
}

// SetRenderTarget binds rt as the destination of subsequent Render calls.
// nil restores the default destination.
func (r *Renderer) SetRenderTarget(rt *RenderTarget) {
	r.target = rt
}

// RenderTarget returns the bound target, or nil for the default destination.
func (r *Renderer) RenderTarget() *RenderTarget {
	return r.target
}

// Stats returns statistics of the last Render call.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render clears the bound destination to the scene background and draws
// every item as seen from cam.
func (r *Renderer) Render(src SceneSource, cam *Camera) {
	fb := r.screen
	if r.target != nil {
		fb = r.target.Framebuffer()
	}
	rast, ok := r.rasterizers[fb]
	if !ok {
		rast = NewRasterizer(cam, fb)
		r.rasterizers[fb] = rast
	}
	rast.SetCamera(cam)
	rast.ResetCullingStats()

	fb.Clear(src.Background())
	rast.ClearDepth()

	light := src.Lighting()
	items := 0
	src.Items(func(item DrawItem) {
		items++
		rast.DrawItem(item, light)
	})

	r.stats = Stats{
		Items:     items,
		Culled:    rast.CullingStats.MeshesCulled,
		Offscreen: r.target != nil,
	}
}
