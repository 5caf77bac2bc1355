package cubesnake

import (
	"fmt"

	"github.com/vovakirdan/cubesnake/internal/core"
)

const (
	hudHeight = 2
	viewGap   = 4
)

// projection flattens the cube along one axis. col and row map a cell to a
// view position; depth orders cells that land on the same position, larger
// is closer to the viewer.
type projection struct {
	title string
	col   func(p core.Vec3i, half int) int
	row   func(p core.Vec3i, half int) int
	depth func(p core.Vec3i) int
}

var projections = []projection{
	{
		title: "front",
		col:   func(p core.Vec3i, half int) int { return p.X + half },
		row:   func(p core.Vec3i, half int) int { return half - p.Y },
		depth: func(p core.Vec3i) int { return p.Z },
	},
	{
		title: "top",
		col:   func(p core.Vec3i, half int) int { return p.X + half },
		row:   func(p core.Vec3i, half int) int { return p.Z + half },
		depth: func(p core.Vec3i) int { return p.Y },
	},
}

// viewSize returns the outer width and height of one projected view.
func viewSize(size int) (int, int) {
	return size*2 + 3, size + 2
}

// MinScreenSize returns the smallest screen that fits both views and the HUD.
func MinScreenSize(size int) (int, int) {
	w, h := viewSize(size)
	return len(projections)*w + (len(projections)-1)*viewGap, h + hudHeight + 4
}

// RenderSnapshot draws a snapshot as side-by-side orthographic views of the cube.
func RenderSnapshot(dst *core.Screen, snap Snapshot, title string, paused bool) {
	dst.Clear()
	renderHUD(dst, snap, title)

	minW, minH := MinScreenSize(snap.Size)
	if dst.Width() < minW || dst.Height() < minH {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	vw, vh := viewSize(snap.Size)
	total := len(projections)*vw + (len(projections)-1)*viewGap
	x := (dst.Width() - total) / 2
	y := hudHeight + 1
	for _, proj := range projections {
		renderView(dst, snap, proj, core.NewRect(x, y, vw, vh))
		x += vw + viewGap
	}

	status := statusLine(snap)
	dst.DrawTextCentered(y+vh+1, status)

	switch {
	case snap.State == StateGameOver:
		renderOverlay(dst, "Game Over", "Press Space or R to restart")
	case paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func renderHUD(dst *core.Screen, snap Snapshot, title string) {
	hud := fmt.Sprintf(" %s | Score: %d  Round: %d  Pace: %dms", title, snap.Score, snap.Round, snap.IntervalMs)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

func renderView(dst *core.Screen, snap Snapshot, proj projection, frame core.Rect) {
	dst.DrawBox(frame, core.ColorBlue)
	dst.DrawTextColored(frame.X+2, frame.Y, " "+proj.title+" ", core.ColorCyan)

	half := snap.Size / 2
	for r := 0; r < snap.Size; r++ {
		for c := 0; c < snap.Size; c++ {
			dst.SetColored(frame.X+2+c*2, frame.Y+1+r, '·', core.ColorGray)
		}
	}

	// Nearest element wins each view cell.
	type hit struct {
		el    Element
		depth int
	}
	best := make(map[[2]int]hit)
	place := func(e Element) {
		key := [2]int{proj.col(e.Pos, half), proj.row(e.Pos, half)}
		d := proj.depth(e.Pos)
		if h, ok := best[key]; ok && h.depth >= d {
			return
		}
		best[key] = hit{el: e, depth: d}
	}
	place(NewApple(snap.Apple))
	for _, e := range snap.Snake {
		place(e)
	}
	for key, h := range best {
		dst.SetColored(frame.X+2+key[0]*2, frame.Y+1+key[1], h.el.Glyph(), h.el.Color())
	}
}

func statusLine(snap Snapshot) string {
	head := snap.Head()
	switch snap.State {
	case StateRotating:
		return fmt.Sprintf("head %v  turning %v %3.0f%%", head, snap.Rotation, snap.Fraction*100)
	case StateGameOver:
		return fmt.Sprintf("head %v  %s", head, snap.Cause)
	default:
		return fmt.Sprintf("head %v  apple %v  length %d", head, snap.Apple, len(snap.Snake))
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := len([]rune(line1))
	if n := len([]rune(line2)); n > maxLen {
		maxLen = n
	}
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
