// portal - terminal forest scene with a live portal into a second scene.
//
// The portal surface shows a secondary scene rendered offscreen every frame
// through a camera that turns with the viewer.
//
// Controls:
//
//	Left/middle drag - Orbit around the target
//	Right drag       - Pan
//	Scroll, +/-      - Zoom
//	Arrows           - Orbit
//	R                - Reset view
//	?                - Toggle HUD overlay
//	Esc, Ctrl+C      - Quit
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taigrr/portal/internal/logging"
	"github.com/taigrr/portal/pkg/portal"
)

type options struct {
	preset    string
	config    string
	fps       int
	assets    string
	logFile   string
	dev       bool
	debugAddr string
	snapshot  string
	frames    int
	size      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "portal",
		Short: "Terminal 3D scene with a portal into another scene",
		Long: `portal renders a forest scene in the terminal. A surface in the scene
shows a second scene, rendered offscreen every frame through a camera that
turns with yours.

Controls:
  Left/middle drag  Orbit
  Right drag        Pan
  Scroll, +/-       Zoom
  Arrows            Orbit
  R                 Reset view
  ?                 Toggle HUD
  Esc, Ctrl+C       Quit`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         o.run,
	}

	f := cmd.Flags()
	f.StringVarP(&o.preset, "preset", "p", "cube", "built-in scene preset")
	f.StringVarP(&o.config, "config", "c", "", "TOML scene file layered over the preset")
	f.IntVar(&o.fps, "fps", 30, "target frames per second")
	f.StringVar(&o.assets, "assets", ".", "directory asset paths are resolved against")
	f.StringVar(&o.logFile, "log-file", "", "write logs to this file")
	f.BoolVar(&o.dev, "dev", false, "debug level, human readable logs")
	f.StringVar(&o.debugAddr, "debug-addr", "", "serve /metrics, /frame.png, /portal.png and /state on this address")
	f.StringVar(&o.snapshot, "snapshot", "", "render headless and write the last frame to this PNG file")
	f.IntVar(&o.frames, "frames", 1, "frames to render before writing the snapshot")
	f.StringVar(&o.size, "size", "320x180", "snapshot size in pixels, WIDTHxHEIGHT")

	cmd.AddCommand(newPresetsCmd(), newDumpPresetCmd())
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in scene presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range portal.Presets() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newDumpPresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-preset <name>",
		Short: "Print a preset as TOML, a starting point for --config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := portal.Preset(args[0])
			if err != nil {
				return err
			}
			data, err := cfg.MarshalTOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func (o *options) run(cmd *cobra.Command, _ []string) error {
	if o.fps <= 0 {
		return fmt.Errorf("invalid --fps %d", o.fps)
	}
	log, closeLog, err := logging.New(logging.Options{Path: o.logFile, Dev: o.dev})
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.Context(ctx, log)

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	if o.snapshot != "" {
		return o.runSnapshot(ctx, cfg)
	}
	return o.runTerminal(ctx, cfg)
}

func (o *options) loadConfig() (portal.Config, error) {
	if o.config != "" {
		return portal.LoadConfig(o.config, o.preset)
	}
	return portal.Preset(o.preset)
}

func parseSize(s string) (width, height int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("parse size %q: want WIDTHxHEIGHT", s)
	}
	width, err = strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("parse size %q: %w", s, err)
	}
	height, err = strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("parse size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("parse size %q: must be positive", s)
	}
	return width, height, nil
}
