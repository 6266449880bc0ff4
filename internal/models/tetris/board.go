package tetris

const (
	BoardWidth    = 10 // テトリスボードの幅
	VisibleHeight = 20 // 表示される行数
	BoardHeight   = 21 // 表示部分 + スポーン・回転はみ出し用の見えない行 (最上段)

	// ゲームオーバー判定に使う予約ゾーン (行 16 の列 3〜6)。
	// ここに固定済みブロックが一つでもあればゲームオーバーです。
	GameOverZoneRow      = 16
	GameOverZoneFirstCol = 3
	GameOverZoneLastCol  = 6
)

// Position はボード上のマスの座標です。
// Row は 0 が最下段で、上に行くほど大きくなります。Col は 0 が左端です。
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add は p に (dRow, dCol) を足した座標を返します。
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Board は固定済みブロックを保持する2次元配列です。
// Board[row][col] でアクセスします。row 0 が最下段です。
// アクティブなピースは Freeze されるまでボードには書き込まれません。
type Board [BoardHeight][BoardWidth]BlockType

// NewBoard は新しい空のボードを初期化して返します。
// Goの配列はゼロ値（BlockEmpty）で初期化されるため、特別な初期化は不要です。
func NewBoard() Board {
	var board Board
	return board
}

// InBounds は pos がボードの範囲内にあるかどうかを返します。
func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < BoardHeight && pos.Col >= 0 && pos.Col < BoardWidth
}

// Get は pos のマスの状態を返します。範囲外は BlockEmpty として扱います。
func (b *Board) Get(pos Position) BlockType {
	if !b.InBounds(pos) {
		return BlockEmpty
	}
	return b[pos.Row][pos.Col]
}

// Set は pos のマスに block を書き込みます。範囲外への書き込みは無視されます。
func (b *Board) Set(pos Position, block BlockType) {
	if !b.InBounds(pos) {
		return
	}
	b[pos.Row][pos.Col] = block
}

// Freeze はピースの4マスをそのピースの種類のブロックとしてボードに固定します。
func (b *Board) Freeze(p Piece) {
	for _, cell := range p.Cells {
		b.Set(cell, p.Type.Block())
	}
}

// IsRowFull は row 行に空きマスが一つもないかどうかを返します。
func (b *Board) IsRowFull(row int) bool {
	if row < 0 || row >= BoardHeight {
		return false
	}
	for col := 0; col < BoardWidth; col++ {
		if b[row][col] == BlockEmpty {
			return false
		}
	}
	return true
}

// CollapseFrom は row 行を消し、それより上の全ての行を1行ずつ下にずらします。
// 最上段の行は空になります。
func (b *Board) CollapseFrom(row int) {
	if row < 0 || row >= BoardHeight {
		return
	}
	for y := row; y < BoardHeight-1; y++ {
		b[y] = b[y+1]
	}
	b[BoardHeight-1] = [BoardWidth]BlockType{}
}

// IsGameOverZoneOccupied は予約ゾーンに固定済みブロックがあるかどうかを返します。
func (b *Board) IsGameOverZoneOccupied() bool {
	for col := GameOverZoneFirstCol; col <= GameOverZoneLastCol; col++ {
		if b[GameOverZoneRow][col] != BlockEmpty {
			return true
		}
	}
	return false
}
