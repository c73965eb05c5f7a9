package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/portal/pkg/controls"
	"github.com/taigrr/portal/pkg/portal"
)

const (
	mouseOn  = "\x1b[?1003h\x1b[?1006h" // any-event tracking, SGR encoding
	mouseOff = "\x1b[?1003l\x1b[?1006l"
)

// viewer hosts the render loop in a terminal. Events and frames are both
// handled on the goroutine running run, so the scene needs no locking.
type viewer struct {
	app   *app
	term  *uv.Terminal
	pacer *portal.Pacer
	loop  *portal.Loop
	input *input
	orbit *controls.Orbit
	hud   HUD

	cols, rows int
}

func (o *options) runTerminal(ctx context.Context, cfg portal.Config) error {
	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	// Each cell shows two pixel rows.
	a, err := o.newApp(ctx, cfg, cols, rows*2)
	if err != nil {
		return err
	}
	orbit, ok := a.state.Controls.(*controls.Orbit)
	if !ok {
		return fmt.Errorf("scene controls are %T, not orbit controls", a.state.Controls)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	fmt.Fprint(os.Stdout, mouseOn)
	defer func() {
		fmt.Fprint(os.Stdout, mouseOff)
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	v := &viewer{
		app:   a,
		term:  term,
		pacer: portal.NewPacer(o.fps, portal.NewSystemClock()),
		input: newInput(orbit, a.state.Camera, rows),
		orbit: orbit,
		cols:  cols,
		rows:  rows,
	}
	v.loop = a.loop(v.present)

	return a.serve(ctx, o.debugAddr, v.run)
}

// run multiplexes terminal events with paced frames until ctx ends or the
// user quits.
func (v *viewer) run(ctx context.Context) error {
	v.app.state.RequestAssets(ctx, v.app.provider, v.app.log)
	v.loop.Start(v.pacer)

	events := v.term.Events()
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		d, ok := v.pacer.Pending()
		if !ok {
			return nil
		}
		timer.Reset(d)

		select {
		case <-ctx.Done():
			return nil
		case ev, open := <-events:
			if !open {
				return nil
			}
			if v.handle(ev) == actionQuit {
				return nil
			}
		case <-timer.C:
			v.pacer.Fire()
		}
	}
}

func (v *viewer) handle(ev uv.Event) action {
	if ev, ok := ev.(uv.WindowSizeEvent); ok {
		v.cols, v.rows = ev.Width, ev.Height
		v.term.Erase()
		v.term.Resize(v.cols, v.rows)
		v.input.resize(v.rows)
		if portal.Resize(v.app.state, v.cols, v.rows*2) {
			v.app.log.Debug("Resized", zap.Int("cols", v.cols), zap.Int("rows", v.rows))
		}
		return actionNone
	}

	act := v.input.handle(ev)
	if act == actionToggleHUD {
		v.hud.Show = !v.hud.Show
	}
	return act
}

func (v *viewer) present(st *portal.State, info portal.FrameInfo) {
	screen := v.app.renderer.Screen()
	screen.Draw(v.term, uv.Rectangle(image.Rect(0, 0, v.cols, v.rows)))
	if err := v.term.Display(); err != nil {
		v.app.log.Warn("Display failed", zap.Error(err))
	}

	fps := v.pacer.FPS()
	v.hud.Render(os.Stdout, v.cols, v.rows,
		newHUDInfo(st, fps, info.Number, v.orbit.Distance(), v.orbit.Polar()))
	v.app.publish(info, fps)
}
