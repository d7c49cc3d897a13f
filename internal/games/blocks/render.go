package blocks

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

const (
	cellW      = 2  // characters per board cell
	panelW     = 18 // side panel width
	panelGap   = 2
	panelLines = 20
)

var helpLines = []string{
	"←→ move  ↑ rotate",
	"↓ drop   p pause",
	"m mute   q quit",
}

// Render draws the board, the side panel and any dialog.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.Snapshot()

	boardW := snap.Cols*cellW + 2
	boardH := snap.Rows + 2
	totalW := boardW + panelGap + panelW
	totalH := max(boardH, panelLines)

	if dst.Width() < totalW || dst.Height() < totalH {
		y := dst.Height() / 2
		dst.DrawTextCentered(y-1, "Window too small")
		dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d", totalW, totalH))
		return
	}

	x0 := (dst.Width() - totalW) / 2
	y0 := (dst.Height() - totalH) / 2
	board := core.NewRect(x0, y0, boardW, boardH)

	renderBoard(dst, board, snap)
	renderPanel(dst, x0+boardW+panelGap, y0, snap, g.Title())

	switch {
	case snap.Phase == PhaseGameOver:
		renderDialog(dst, board, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score %d", snap.Score),
			"r restart")
	case snap.Paused:
		renderDialog(dst, board, core.ColorBrightYellow,
			"PAUSED",
			"enter quit",
			"p resume")
	}
}

// renderBoard draws the frame and every board cell.
func renderBoard(dst *core.Screen, r core.Rect, snap Snapshot) {
	dst.DrawBox(r, core.ColorGray)
	for y := range snap.Rows {
		for x := range snap.Cols {
			sx := r.X + 1 + x*cellW
			sy := r.Y + 1 + y
			if c := snap.At(x, y); c != engine.Empty {
				dst.SetColored(sx, sy, '█', c)
				dst.SetColored(sx+1, sy, '█', c)
			} else {
				dst.SetColored(sx+1, sy, '·', core.ColorGray)
			}
		}
	}
}

// renderPanel draws the HUD, the next-piece preview and key help.
func renderPanel(dst *core.Screen, x, y int, snap Snapshot, title string) {
	dst.DrawTextColored(x, y, title, core.ColorBrightWhite)

	player := "you"
	if snap.AI {
		player = "AI"
	}
	stats := []string{
		fmt.Sprintf("Score  %d", snap.Score),
		fmt.Sprintf("Level  %d", snap.Level),
		fmt.Sprintf("Lines  %d", snap.Lines),
		fmt.Sprintf("Mode   %s", snap.Mode),
		fmt.Sprintf("Player %s", player),
	}
	for i, line := range stats {
		dst.DrawText(x, y+2+i, line)
	}

	dst.DrawText(x, y+8, "Next")
	preview := core.NewRect(x, y+9, engine.MaskSize*cellW+2, engine.MaskSize+2)
	dst.DrawBox(preview, core.ColorGray)
	mask := snap.Next.Mask()
	color := snap.Next.Color()
	for i := range engine.MaskSize {
		for j := range engine.MaskSize {
			if mask[i][j] {
				sx := preview.X + 1 + j*cellW
				dst.SetColored(sx, preview.Y+1+i, '█', color)
				dst.SetColored(sx+1, preview.Y+1+i, '█', color)
			}
		}
	}

	for i, line := range helpLines {
		dst.DrawTextColored(x, y+panelLines-len(helpLines)+i, line, core.ColorGray)
	}
}

// renderDialog draws a framed message centered on the board.
func renderDialog(dst *core.Screen, board core.Rect, c core.Color, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	cx, cy := board.Center()
	r := core.NewRect(cx-w/2, cy-h/2, w, h)

	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, c)
	for i, l := range lines {
		lx := r.X + (w-len([]rune(l)))/2
		color := core.ColorDefault
		if i == 0 {
			color = c
		}
		dst.DrawTextColored(lx, r.Y+1+i, l, color)
	}
}
