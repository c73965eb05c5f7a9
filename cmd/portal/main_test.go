package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/portal/pkg/portal"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(portal.Presets(), "\n")+"\n", out)
}

func TestDumpPresetCommand(t *testing.T) {
	out, err := execute(t, "dump-preset", "gate")
	require.NoError(t, err)

	cfg, err := portal.ParseConfig([]byte(out), "cube")
	require.NoError(t, err)
	want, err := portal.Preset("gate")
	require.NoError(t, err)
	assert.Equal(t, want, cfg)

	_, err = execute(t, "dump-preset", "nope")
	assert.ErrorIs(t, err, portal.ErrUnknownPreset)
}

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.png")
	logFile := filepath.Join(dir, "portal.log")

	_, err := execute(t,
		"--preset", "window",
		"--snapshot", out,
		"--frames", "3",
		"--size", "64x36",
		"--assets", dir,
		"--log-file", logFile,
	)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 36, img.Bounds().Dy())

	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Asset load failed", "missing models are logged, not fatal")
	assert.Contains(t, string(logs), "Snapshot written")
}

func TestSnapshotWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("preset = \"lantern\"\n[assets]\nground = \"\"\ntrees = \"\"\n"), 0o600))
	out := filepath.Join(dir, "lantern.png")

	_, err := execute(t, "--config", cfgPath, "--snapshot", out, "--size", "40x30")
	require.NoError(t, err)
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestRunRejectsBadFlags(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"fps", []string{"--fps", "0", "--snapshot", filepath.Join(dir, "a.png")}, "invalid --fps 0"},
		{"size", []string{"--size", "big", "--snapshot", filepath.Join(dir, "b.png")}, "parse size"},
		{"preset", []string{"--preset", "mirror", "--snapshot", filepath.Join(dir, "c.png")}, "unknown preset"},
		{"args", []string{"extra"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{in: "320x180", w: 320, h: 180},
		{in: "64X48", w: 64, h: 48},
		{in: "0x10", wantErr: true},
		{in: "10", wantErr: true},
		{in: "ax10", wantErr: true},
		{in: "10x-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseSize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}
