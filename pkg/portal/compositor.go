package portal

// Composite renders the secondary scene into the render target for the frame
// at t seconds.
//
// The secondary camera copies the primary camera's rotation so the portal
// view pans with the viewer. Its position stays at the configured vantage
// point unless View.PositionDivisor is set. The default destination is bound
// again before Composite returns, on every path.
func Composite(st *State, t float64) {
	for _, a := range st.PortalAnimations {
		a.Apply(t)
	}

	st.PortalCamera.SetRotation(st.Camera.Rotation)
	if d := st.Config.View.PositionDivisor; d > 0 {
		st.PortalCamera.SetPosition(st.Camera.Position.Div(d))
	}

	st.Renderer.SetRenderTarget(st.Target)
	defer st.Renderer.SetRenderTarget(nil)
	st.Renderer.Render(st.PortalScene, st.PortalCamera)
	st.Metrics.PortalPass()
}

// Resize matches the primary camera and the default destination to a
// width x height viewport. The render target and the secondary camera keep
// their fixed resolution and aspect. It reports whether anything changed;
// repeating a size or passing a non-positive one is a no-op.
func Resize(st *State, width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if w, h := st.Renderer.Size(); w == width && h == height {
		return false
	}
	st.Camera.SetAspectRatio(float64(width) / float64(height))
	st.Renderer.SetSize(width, height)
	return true
}
