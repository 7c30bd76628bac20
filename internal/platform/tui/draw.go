package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-copter/internal/config"
	"github.com/vovakirdan/tui-copter/internal/copter"
	"github.com/vovakirdan/tui-copter/internal/core"
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

// Glyphs.
const (
	barrierRune   = '█'
	capTopRune    = '▄'
	capBottomRune = '▀'
	groundEdge    = '▀'
	groundFill    = '▓'
	cabinRune     = '■'
	tailRune      = '='
	flameRune     = '*'
	rotorRune     = '─'
	mastRune      = '┬'
)

// Labels are host-side strings shown in the HUD.
type Labels struct {
	Mode   string // difficulty preset name
	Notice string // transient message, e.g. "config reloaded"
}

// viewport maps world units onto the cells below the HUD.
type viewport struct {
	top    int
	width  int
	height int
	sx, sy float64
}

func newViewport(dst *core.Screen, world config.WorldConfig) viewport {
	h := dst.Height() - hudRows
	if h < 1 {
		h = 1
	}
	return viewport{
		top:    hudRows,
		width:  dst.Width(),
		height: h,
		sx:     float64(dst.Width()) / world.Width,
		sy:     float64(h) / world.Height,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.sy))
}

// Draw renders a snapshot into dst.
func Draw(dst *core.Screen, snap copter.Snapshot, labels Labels) {
	dst.Clear()
	v := newViewport(dst, snap.World)
	ground := v.row(snap.World.GroundLine())

	for _, o := range snap.Obstacles {
		drawObstacle(dst, v, o, ground)
	}
	drawGround(dst, v, ground)
	drawBody(dst, v, snap.Body)
	drawHUD(dst, snap, labels)

	switch {
	case snap.Status == copter.StatusStart:
		lines := []string{
			"T U I   C O P T E R",
			"",
			"hold SPACE or the mouse button to climb",
			"let go to sink",
			"",
		}
		if snap.HasPlayedBefore {
			lines = append(lines, fmt.Sprintf("best %d   last %d", snap.BestScore, snap.LastScore), "")
		}
		lines = append(lines, "press SPACE to start")
		messageBox(dst, lines, core.ColorBrightCyan)
	case snap.Status == copter.StatusGameOver:
		best := fmt.Sprintf("best %d", snap.BestScore)
		if snap.Score > 0 && snap.Score == snap.BestScore {
			best += "  NEW!"
		}
		messageBox(dst, []string{
			"C R A S H E D",
			"",
			fmt.Sprintf("score %d", snap.Score),
			best,
			"",
			"press R to continue",
		}, core.ColorBrightRed)
	case snap.Paused:
		messageBox(dst, []string{"PAUSED", "", "press P to resume"}, core.ColorBrightYellow)
	}
}

func drawObstacle(dst *core.Screen, v viewport, o copter.ObstacleView, ground int) {
	x0 := v.col(o.X)
	x1 := v.col(o.X + o.Width)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	w := x1 - x0

	gapTop := v.row(o.GapStart)
	gapBottom := v.row(o.GapStart + o.GapHeight)
	if gapBottom <= gapTop {
		gapBottom = gapTop + 1
	}

	if gapTop > v.top {
		dst.FillRect(x0, v.top, w, gapTop-v.top, barrierRune, core.ColorGreen)
		dst.DrawHLine(x0, gapTop-1, w, capTopRune, core.ColorBrightGreen)
	}
	if gapBottom < ground {
		dst.FillRect(x0, gapBottom, w, ground-gapBottom, barrierRune, core.ColorGreen)
		dst.DrawHLine(x0, gapBottom, w, capBottomRune, core.ColorBrightGreen)
	}
}

func drawGround(dst *core.Screen, v viewport, ground int) {
	dst.DrawHLine(0, ground, v.width, groundEdge, core.ColorOrange)
	dst.FillRect(0, ground+1, v.width, dst.Height()-ground-1, groundFill, core.ColorGray)
}

func drawBody(dst *core.Screen, v viewport, b copter.BodyView) {
	w := int(math.Round(b.Width * v.sx))
	if w < 3 {
		w = 3
	}
	h := int(math.Round(b.Height * v.sy))

	left := v.col(b.X) - w/2
	y := v.row(b.Y)

	if h >= 2 {
		dst.DrawHLine(left, y-1, w, rotorRune, core.ColorWhite)
		dst.SetColored(left+w/2, y-1, mastRune, core.ColorWhite)
	}

	if b.Thrust {
		dst.SetColored(left, y, flameRune, core.ColorOrange)
	} else {
		dst.SetColored(left, y, tailRune, core.ColorYellow)
	}
	dst.DrawHLine(left+1, y, w-2, cabinRune, core.ColorBrightYellow)
	dst.SetColored(left+w-1, y, noseRune(b.Rotation), core.ColorBrightYellow)
}

// noseRune tilts the nose with the body.
func noseRune(rotation float64) rune {
	switch {
	case rotation < -8:
		return '/'
	case rotation > 8:
		return '\\'
	default:
		return '>'
	}
}

func drawHUD(dst *core.Screen, snap copter.Snapshot, labels Labels) {
	left := fmt.Sprintf(" SCORE %d   BEST %d   SPEED x%.2f", snap.Score, snap.BestScore, snap.SpeedMultiplier)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	right := labels.Mode
	color := core.ColorGray
	if labels.Notice != "" {
		right = labels.Notice
		color = core.ColorBrightMagenta
	}
	if right != "" {
		right += " "
		dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, color)
	}
}

// messageBox draws lines centred in a bordered box in the middle of dst.
func messageBox(dst *core.Screen, lines []string, c core.Color) {
	widest := 0
	for _, l := range lines {
		widest = core.Max(widest, len([]rune(l)))
	}
	boxW := widest + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, c)
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, boxY+1+i, l, c)
	}
}
