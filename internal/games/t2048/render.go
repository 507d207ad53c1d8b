package t2048

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Including the left border
	cellHeight = 2 // Including the top border
	hudHeight  = 3
)

// tilePalette is indexed by log2(value)-1; larger tiles reuse the last colour.
var tilePalette = []core.Color{
	core.ColorGray,          // 2
	core.ColorWhite,         // 4
	core.ColorYellow,        // 8
	core.ColorBrightYellow,  // 16
	core.ColorOrange,        // 32
	core.ColorRed,           // 64
	core.ColorBrightRed,     // 128
	core.ColorMagenta,       // 256
	core.ColorBrightMagenta, // 512
	core.ColorBlue,          // 1024
	core.ColorBrightBlue,    // 2048
	core.ColorCyan,          // 4096
	core.ColorBrightCyan,    // 8192
	core.ColorGreen,
	core.ColorBrightGreen,
}

// TileColor returns the display colour for a tile value.
func TileColor(value int) core.Color {
	if value < 2 {
		return core.ColorDefault
	}
	i := bits.Len(uint(value)) - 2
	if i >= len(tilePalette) {
		i = len(tilePalette) - 1
	}
	return tilePalette[i]
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	size := g.board.Size()
	boardW := size*cellWidth + 1
	boardH := size*cellHeight + 1

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and best tile.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCentered(0, "2048")

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))

	info := fmt.Sprintf("Max: %d", g.board.MaxTile())
	infoX := max(boardX, boardX+boardW-len(info))
	dst.DrawText(infoX, 1, info)

	dst.DrawTextCentered(2, fmt.Sprintf("Moves: %d", g.moves))
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	size := g.board.Size()
	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight
			dst.SetColored(px, py, gridCorner(x, y, size), core.ColorGray)

			if x < size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

func gridCorner(x, y, size int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == size:
		return '┐'
	case y == size && x == 0:
		return '└'
	case y == size && x == size:
		return '┘'
	case y == 0:
		return '┬'
	case y == size:
		return '┴'
	case x == 0:
		return '├'
	case x == size:
		return '┤'
	default:
		return '┼'
	}
}

// renderTiles draws settled tiles, then any tiles still in flight.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	for _, t := range g.board.Tiles() {
		if g.hiddenDuringSlide(t.Pos()) {
			continue
		}
		drawTile(dst, boardX, boardY, float64(t.Row()), float64(t.Col()), t.Value(), TileColor(t.Value()))
	}

	for i := range g.animations {
		a := &g.animations[i]
		row, col := a.interpolate()
		color := TileColor(a.Value)
		if a.IsNew {
			color = core.ColorBrightGreen
		}
		drawTile(dst, boardX, boardY, row, col, a.Value, color)
	}
}

// drawTile centres a value inside the cell at a possibly fractional position.
func drawTile(dst *core.Screen, boardX, boardY int, row, col float64, value int, color core.Color) {
	cellX := boardX + int(math.Round(col*cellWidth)) + 1
	cellY := boardY + int(math.Round(row*cellHeight)) + 1

	s := strconv.Itoa(value)
	pad := max(0, (cellWidth-1-len(s))/2)
	dst.DrawTextColored(cellX+pad, cellY, s, color)
}

// renderOverlays draws pause and game over boxes.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	switch {
	case g.paused:
		drawOverlay(dst, board, "PAUSED", "Press P to resume")
	case g.gameOver:
		drawOverlay(dst, board, "GAME OVER",
			fmt.Sprintf("Score: %d  Max tile: %d", g.score, g.board.MaxTile()),
			"Press R to restart")
	}
}

// drawOverlay draws a centered text box over the board.
func drawOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	centerX, centerY := board.Center()
	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)

	dst.FillRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}
