package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/models/tetris"
)

// Board layout on screen. Each cell is drawn two columns wide so blocks look square.
const (
	boardX    = 1 // column of the left border
	boardY    = 2 // row of the top visible board row
	cellWidth = 2
)

const (
	blockGlyph = '█'
	emptyGlyph = '·'
)

// Renderer draws game snapshots to the screen. It is safe to call Render
// from the game loop while the input goroutine polls the same screen.
type Renderer struct {
	screen *Screen
	mu     sync.Mutex
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the board, the active piece and the score line.
func (r *Renderer) Render(snapshot tetris.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.Frame(func() { r.draw(snapshot) })
}

func (r *Renderer) draw(snapshot tetris.Snapshot) {
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	r.screen.DrawText(0, 0, fmt.Sprintf("GITRIS  %s", snapshot.Label), titleStyle)

	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	right := boardX + 1 + tetris.BoardWidth*cellWidth
	for y, row := range snapshot.Grid {
		sy := boardY + y
		r.screen.SetContent(boardX, sy, '│', borderStyle)
		for col, cell := range row {
			glyph, style := cellAppearance(cell)
			sx := boardX + 1 + col*cellWidth
			for i := 0; i < cellWidth; i++ {
				r.screen.SetContent(sx+i, sy, glyph, style)
			}
		}
		r.screen.SetContent(right, sy, '│', borderStyle)
	}
	bottom := boardY + tetris.VisibleHeight
	r.screen.SetContent(boardX, bottom, '└', borderStyle)
	for x := boardX + 1; x < right; x++ {
		r.screen.SetContent(x, bottom, '─', borderStyle)
	}
	r.screen.SetContent(right, bottom, '┘', borderStyle)

	infoX := right + 3
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.screen.DrawText(infoX, boardY, fmt.Sprintf("Score: %d", snapshot.Score), infoStyle)
	r.screen.DrawText(infoX, boardY+1, fmt.Sprintf("Lines: %d", snapshot.LinesCleared), infoStyle)
	r.screen.DrawText(infoX, boardY+2, fmt.Sprintf("Speed: %dms", snapshot.FallIntervalMs), infoStyle)

	switch snapshot.Status {
	case "game_over":
		r.screen.DrawText(infoX, boardY+4, "GAME OVER", tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	case "quit":
		r.screen.DrawText(infoX, boardY+4, "QUIT", tcell.StyleDefault.Foreground(tcell.ColorRed))
	default:
		r.screen.DrawText(infoX, boardY+4, "←→ move  ↓ down", infoStyle)
		r.screen.DrawText(infoX, boardY+5, "↑ rotate  q quit", infoStyle)
	}
}

// ScreenPosition returns the screen cell of the left half of a board position.
// ok is false for positions outside the visible rows.
func ScreenPosition(pos tetris.Position) (x, y int, ok bool) {
	if pos.Row < 0 || pos.Row >= tetris.VisibleHeight || pos.Col < 0 || pos.Col >= tetris.BoardWidth {
		return 0, 0, false
	}
	return boardX + 1 + pos.Col*cellWidth, boardY + tetris.VisibleHeight - 1 - pos.Row, true
}

func cellAppearance(cell tetris.BlockType) (rune, tcell.Style) {
	if cell == tetris.BlockEmpty {
		return emptyGlyph, tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	}
	return blockGlyph, tcell.StyleDefault.Foreground(blockColor(cell))
}

// blockColor returns the color for a block kind.
func blockColor(cell tetris.BlockType) tcell.Color {
	switch cell {
	case tetris.BlockT:
		return tcell.ColorPurple
	case tetris.BlockI:
		return tcell.ColorAqua
	case tetris.BlockS:
		return tcell.ColorGreen
	case tetris.BlockZ:
		return tcell.ColorRed
	case tetris.BlockO:
		return tcell.ColorYellow
	case tetris.BlockL:
		return tcell.ColorOrange
	case tetris.BlockJ:
		return tcell.ColorBlue
	default:
		return tcell.ColorWhite
	}
}
