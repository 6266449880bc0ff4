package tetris

// Piece は操作中のテトリミノの状態（種類、ボード上の4マスの絶対座標、回転状態）を表します。
// 値型なので、代入するだけで操作前の状態を保持したまま候補位置を試せます。
type Piece struct {
	Type     PieceType   `json:"type"`
	Cells    [4]Position `json:"cells"`
	Rotation int         `json:"rotation"` // 0 から CycleLength(Type)-1 まで
}

// spawnLayouts は各テトリミノの出現時の4マスです。ボード上部中央付近に置かれます。
// マスの並び順は回転テーブルの各デルタと対応しているため、変更してはいけません。
var spawnLayouts = map[PieceType][4]Position{
	TypeT: {{16, 4}, {16, 5}, {16, 6}, {17, 5}},
	TypeI: {{16, 5}, {17, 5}, {18, 5}, {19, 5}}, // 縦向きで出現
	TypeS: {{16, 4}, {16, 5}, {17, 5}, {17, 6}},
	TypeZ: {{16, 5}, {16, 6}, {17, 4}, {17, 5}},
	TypeO: {{16, 4}, {16, 5}, {17, 5}, {17, 4}},
	TypeL: {{17, 4}, {16, 4}, {18, 4}, {16, 5}},
	TypeJ: {{17, 5}, {16, 5}, {18, 5}, {16, 4}},
}

// Spawn は指定された種類のピースを回転状態 0 の初期配置で生成します。
func Spawn(t PieceType) Piece {
	return Piece{Type: t, Cells: spawnLayouts[t], Rotation: 0}
}

// Translate は4マス全てに同じ (dRow, dCol) を足したピースを返します。
// 左右移動と落下に使います。レシーバは変更しません。
func (p Piece) Translate(dRow, dCol int) Piece {
	moved := p
	for i := range moved.Cells {
		moved.Cells[i] = moved.Cells[i].Add(dRow, dCol)
	}
	return moved
}

// Rotated は回転テーブルに従って回転させた候補のピースを返します。
// 各マスには (種類, 回転状態) ごとに決められた個別のデルタが加算され、
// 回転状態は周期で割った余りで進みます。レシーバは変更しません。
func (p Piece) Rotated() Piece {
	step, ok := lookupRotation(p.Type, p.Rotation)
	if !ok {
		return p
	}
	rotated := p
	for i, d := range step {
		rotated.Cells[i] = rotated.Cells[i].Add(d.Row, d.Col)
	}
	rotated.Rotation = (p.Rotation + 1) % CycleLength(p.Type)
	return rotated
}

// Contains はピースが pos のマスを含んでいるかどうかを返します。
func (p Piece) Contains(pos Position) bool {
	for _, cell := range p.Cells {
		if cell == pos {
			return true
		}
	}
	return false
}
