package portal

import (
	"github.com/taigrr/portal/pkg/render"
)

type renderCall struct {
	src    render.SceneSource
	cam    *render.Camera
	target *render.RenderTarget
}

// spyRenderer records every call instead of rasterizing.
type spyRenderer struct {
	w, h     int
	target   *render.RenderTarget
	calls    []renderCall
	binds    []*render.RenderTarget
	resizes  int
	onRender func()
}

func newSpyRenderer(w, h int) *spyRenderer {
	return &spyRenderer{w: w, h: h}
}

func (s *spyRenderer) SetRenderTarget(rt *render.RenderTarget) {
	s.target = rt
	s.binds = append(s.binds, rt)
}

func (s *spyRenderer) RenderTarget() *render.RenderTarget { return s.target }

func (s *spyRenderer) Render(src render.SceneSource, cam *render.Camera) {
	s.calls = append(s.calls, renderCall{src: src, cam: cam, target: s.target})
	if s.onRender != nil {
		s.onRender()
	}
}

func (s *spyRenderer) SetSize(w, h int) {
	s.w, s.h = w, h
	s.resizes++
}

func (s *spyRenderer) Size() (int, int) { return s.w, s.h }
