package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/portal/internal/debugsrv"
	"github.com/taigrr/portal/internal/logging"
	"github.com/taigrr/portal/internal/metrics"
	"github.com/taigrr/portal/pkg/assets"
	"github.com/taigrr/portal/pkg/portal"
	"github.com/taigrr/portal/pkg/render"
)

// app is everything both the terminal viewer and the snapshot mode share.
type app struct {
	log      *zap.Logger
	metrics  *metrics.Metrics
	renderer *render.Renderer
	state    *portal.State
	provider *assets.Provider
	debug    *debugsrv.Server
}

func (o *options) newApp(ctx context.Context, cfg portal.Config, width, height int) (*app, error) {
	log := logging.From(ctx)
	assetLog, _ := logging.SubFrom(ctx, "assets")
	m := metrics.New()
	r := render.NewRenderer(width, height)

	st, err := portal.NewState(cfg, r, o.fps)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	st.Metrics = m

	a := &app{
		log:      log,
		metrics:  m,
		renderer: r,
		state:    st,
		provider: assets.NewProvider(
			assets.WithLogger(assetLog),
			assets.WithMetrics(m),
			assets.WithBaseDir(o.assets),
		),
	}
	if o.debugAddr != "" {
		a.debug = debugsrv.New(m.Registry, log.Named("debug"))
	}
	log.Info("Scene ready",
		zap.String("preset", cfg.Name),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("targetWidth", st.Target.Width),
		zap.Int("targetHeight", st.Target.Height))
	return a, nil
}

// loop creates the render loop with present as the last step of each frame.
func (a *app) loop(present portal.Presenter) *portal.Loop {
	return portal.NewLoop(a.state,
		portal.WithPoller(a.provider),
		portal.WithPresenter(present),
		portal.WithLoopLogger(a.log.Named("loop")),
		portal.WithLoopMetrics(a.metrics),
	)
}

// publish hands the frame to the debug server, if one runs.
func (a *app) publish(info portal.FrameInfo, fps float64) {
	if a.debug == nil {
		return
	}
	st := a.state
	w, h := a.renderer.Size()
	a.debug.Publish(a.renderer.Screen(), st.Target.Framebuffer(), debugsrv.State{
		Preset:       st.Config.Name,
		Frame:        info.Number,
		Time:         info.Time.Seconds(),
		TookMillis:   float64(info.Took.Microseconds()) / 1000,
		FPS:          fps,
		Size:         [2]int{w, h},
		Target:       [2]int{st.Target.Width, st.Target.Height},
		Camera:       debugsrv.NewCameraState(st.Camera),
		PortalCamera: debugsrv.NewCameraState(st.PortalCamera),
	})
}

// serve runs fn next to the debug server until fn returns or ctx ends.
func (a *app) serve(ctx context.Context, addr string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	if a.debug != nil {
		g.Go(func() error {
			return a.debug.ListenAndServe(ctx, addr)
		})
	}
	g.Go(func() error {
		defer cancel()
		return fn(ctx)
	})
	return g.Wait()
}
