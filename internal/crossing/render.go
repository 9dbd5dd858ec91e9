package crossing

import (
	"fmt"
	"math"

	"github.com/vovakirdan/lanecross/internal/core"
)

// CellWidth is the number of terminal columns used per tile, which keeps
// tiles roughly square in a typical terminal font.
const CellWidth = 2

// Visual characters for rendering
const (
	SafeChar     = '░'
	RoadChar     = '·'
	ObstacleChar = '█'
	PlayerChar   = '@'
	CrashChar    = 'X'
)

// BoardSize returns the screen size of a board including its border.
func BoardSize(gridWidth, gridHeight int) (w, h int) {
	return gridWidth*CellWidth + 2, gridHeight + 2
}

// DrawBoard draws snap with its top-left border corner at (x0, y0).
func DrawBoard(dst *core.Screen, snap Snapshot, x0, y0 int, frame core.Color) {
	bw, bh := BoardSize(snap.GridWidth, snap.GridHeight)
	dst.DrawBox(core.NewRect(x0, y0, bw, bh), frame)

	originX := x0 + 1
	originY := y0 + 1

	for y, lane := range snap.Lanes {
		row := originY + ScreenRowOf(snap.GridHeight, y)
		fill, color := RoadChar, core.ColorGray
		if lane.Kind == LaneSafe {
			fill, color = SafeChar, core.ColorGreen
		}
		for x := 0; x < snap.GridWidth*CellWidth; x++ {
			dst.SetColored(originX+x, row, fill, color)
		}
	}

	for _, box := range snap.Obstacles {
		y := int(box.Y)
		color := core.ColorBrightRed
		if lane, ok := snap.LaneAt(y); ok && lane.Direction == DirRight {
			color = core.ColorBrightYellow
		}
		row := originY + ScreenRowOf(snap.GridHeight, y)
		from := max(int(math.Floor(box.X*CellWidth)), 0)
		to := min(int(math.Ceil(box.Right()*CellWidth)), snap.GridWidth*CellWidth)
		for x := from; x < to; x++ {
			dst.SetColored(originX+x, row, ObstacleChar, color)
		}
	}

	pr, pc := PlayerChar, core.ColorBrightCyan
	if snap.GameOver {
		pr, pc = CrashChar, core.ColorBrightMagenta
	}
	px := originX + snap.Player.X*CellWidth
	py := originY + ScreenRowOf(snap.GridHeight, snap.Player.Y)
	for dx := 0; dx < CellWidth; dx++ {
		dst.SetColored(px+dx, py, pr, pc)
	}
}

// HUDLine returns the status text shown above a board.
func HUDLine(label string, snap Snapshot) string {
	if label != "" {
		return fmt.Sprintf("%s  Score: %d  Seed: %s", label, snap.Score, snap.Seed)
	}
	return fmt.Sprintf("Score: %d  Seed: %s", snap.Score, snap.Seed)
}

// DrawMessage draws a boxed two-line message centered on the screen.
func DrawMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorWhite)
	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
