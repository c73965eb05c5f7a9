package main

import (
	"fmt"
	"io"
	"math"

	"github.com/taigrr/portal/pkg/portal"
)

// HUD draws a two line overlay with frame rate, preset and camera state.
type HUD struct {
	Show bool
}

// hudInfo is what one HUD draw shows.
type hudInfo struct {
	fps       float64
	preset    string
	target    [2]int
	triangles int
	distance  float64
	polar     float64
	frame     uint64
}

func newHUDInfo(st *portal.State, fps float64, frame uint64, distance, polar float64) hudInfo {
	info := hudInfo{
		fps:      fps,
		preset:   st.Config.Name,
		target:   [2]int{st.Target.Width, st.Target.Height},
		distance: distance,
		polar:    polar,
		frame:    frame,
	}
	for _, n := range st.Scene.Nodes() {
		if n.Mesh != nil {
			info.triangles += n.Mesh.TriangleCount()
		}
	}
	return info
}

// Render writes the overlay to w as ANSI escapes over a width x height
// terminal. The HUD rows are always cleared so hiding it takes effect.
func (h *HUD) Render(w io.Writer, width, height int, info hudInfo) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	fmt.Fprint(w, moveTo(1, 1)+clearLine)
	fmt.Fprint(w, moveTo(height, 1)+clearLine)
	if !h.Show {
		return
	}

	fmt.Fprintf(w, "%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, info.fps, reset)

	titleCol := max((width-len(info.preset)-2)/2, 1)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, info.preset, reset)

	tris := fmt.Sprintf(" %d tris ", info.triangles)
	fmt.Fprintf(w, "%s%s%s%s%s%s", moveTo(1, max(width-len(tris), 1)), bgBlack, fgCyan, bold, tris, reset)

	status := fmt.Sprintf(" portal %dx%d  dist %.1f  polar %.0f°  frame %d ",
		info.target[0], info.target[1], info.distance, info.polar*180/math.Pi, info.frame)
	fmt.Fprintf(w, "%s%s%s%s%s", moveTo(height, 1), bgBlack, fgWhite, status, reset)

	hint := " ?: hide  r: reset "
	fmt.Fprintf(w, "%s%s%s%s%s%s", moveTo(height, max(width-len(hint), 1)), bgBlack, dim, fgYellow, hint, reset)
}
