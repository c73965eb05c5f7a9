package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/portal/pkg/portal"
)

// runSnapshot renders o.frames frames without a terminal and writes the
// last one to o.snapshot. Assets are waited for before the first frame, and
// frames are spaced one period apart on a virtual clock.
func (o *options) runSnapshot(ctx context.Context, cfg portal.Config) error {
	width, height, err := parseSize(o.size)
	if err != nil {
		return err
	}
	a, err := o.newApp(ctx, cfg, width, height)
	if err != nil {
		return err
	}

	return a.serve(ctx, o.debugAddr, func(ctx context.Context) error {
		a.state.RequestAssets(ctx, a.provider, a.log)
		if err := a.provider.Wait(ctx); err != nil {
			return fmt.Errorf("wait for assets: %w", err)
		}

		frames := uint64(max(1, o.frames))
		pacer := portal.NewPacer(o.fps, portal.NewVirtualClock(time.Time{}))
		runCtx, done := context.WithCancel(ctx)
		defer done()

		loop := a.loop(func(_ *portal.State, info portal.FrameInfo) {
			a.publish(info, float64(o.fps))
			if info.Number >= frames {
				done()
			}
		})
		loop.Start(pacer)
		if err := pacer.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := a.renderer.Screen().SavePNG(o.snapshot); err != nil {
			return err
		}
		a.log.Info("Snapshot written",
			zap.String("path", o.snapshot),
			zap.Uint64("frames", loop.Frames()))
		return nil
	})
}
