package tetris

import "strings"

// Grid は表示部分のマスを上の行から順に並べたものです。Grid[0] が画面の最上段です。
type Grid [VisibleHeight][BoardWidth]BlockType

// Snapshot は描画側に渡す読み取り専用のゲーム状態です。
// 配列のコピーで構成されるため、受け取った側が変更してもゲーム側には影響しません。
type Snapshot struct {
	GameID         string    `json:"game_id"`
	Label          string    `json:"label"`
	Grid           Grid      `json:"grid"`
	ActiveType     PieceType `json:"active_type"`
	HasActive      bool      `json:"has_active"`
	Score          int       `json:"score"`
	LinesCleared   int       `json:"lines_cleared"`
	FallIntervalMs int64     `json:"fall_interval_ms"`
	Status         string    `json:"status"`
}

// NewGrid はボードの表示部分に active を重ねたグリッドを作ります。
// active が nil の場合はボードのみを描きます。
func NewGrid(board *Board, active *Piece) Grid {
	var grid Grid
	for row := 0; row < VisibleHeight; row++ {
		grid[VisibleHeight-1-row] = board[row]
	}
	if active != nil {
		for _, cell := range active.Cells {
			if cell.Row < 0 || cell.Row >= VisibleHeight || cell.Col < 0 || cell.Col >= BoardWidth {
				continue
			}
			grid[VisibleHeight-1-cell.Row][cell.Col] = active.Type.Block()
		}
	}
	return grid
}

// Lines はグリッドを "..TT......" のような文字列の行として返します。
func (g Grid) Lines() []string {
	lines := make([]string, 0, VisibleHeight)
	var sb strings.Builder
	for _, row := range g {
		sb.Reset()
		for _, cell := range row {
			sb.WriteRune(cell.Rune())
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// At はボード座標 pos のマスを返します。表示範囲外は BlockEmpty です。
func (g Grid) At(pos Position) BlockType {
	if pos.Row < 0 || pos.Row >= VisibleHeight || pos.Col < 0 || pos.Col >= BoardWidth {
		return BlockEmpty
	}
	return g[VisibleHeight-1-pos.Row][pos.Col]
}
