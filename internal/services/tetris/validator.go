package tetris

import "github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/models/tetris"

// MoveValidator は候補となるピース配置がボードと枠に対して合法かどうかを判定します。
type MoveValidator struct {
	board *tetris.Board
}

// NewMoveValidator は board を参照する MoveValidator を返します。
func NewMoveValidator(board *tetris.Board) MoveValidator {
	return MoveValidator{board: board}
}

// Validate は candidate が cmd の結果として置けるかどうかを返します。
// 判定は 壁越え、既存ブロックとの衝突、床・天井、縦向きIの壁 の順に行います。
func (v MoveValidator) Validate(candidate tetris.Piece, cmd Command) bool {
	if crossesWall(candidate) {
		return false
	}
	if hitsStack(v.board, candidate) {
		return false
	}
	if outsideRows(candidate) {
		return false
	}
	// 行・列の座標では縦向きIの壁越えは crossesWall が先に弾くため、ここに来るものはない。
	// 壁の規則としては独立させておく
	if verticalIAtWall(candidate, cmd) {
		return false
	}
	return true
}

// crossesWall は候補のいずれかのマスが左右の壁を越えた（行の境界をまたいだ）かどうかを返します。
func crossesWall(candidate tetris.Piece) bool {
	for _, cell := range candidate.Cells {
		if cell.Col < 0 || cell.Col >= tetris.BoardWidth {
			return true
		}
	}
	return false
}

func hitsStack(board *tetris.Board, candidate tetris.Piece) bool {
	for _, cell := range candidate.Cells {
		if board.Get(cell) != tetris.BlockEmpty {
			return true
		}
	}
	return false
}

// outsideRows は最下段より下（床）またはボード最上段より上に出たマスがあるかどうかを返します。
func outsideRows(candidate tetris.Piece) bool {
	for _, cell := range candidate.Cells {
		if cell.Row < 0 || cell.Row >= tetris.BoardHeight {
			return true
		}
	}
	return false
}

// verticalIAtWall は縦向きのIを左右に動かしたとき、基準マス (Cells[0]) が
// 移動方向の壁の外に出るかどうかを返します。
// 縦向きのIは4マスが同じ列に並ぶため、汎用の壁判定とは別の規則として扱います。
func verticalIAtWall(candidate tetris.Piece, cmd Command) bool {
	if candidate.Type != tetris.TypeI || candidate.Rotation != 0 {
		return false
	}
	ref := candidate.Cells[0]
	switch cmd {
	case CommandMoveLeft:
		return ref.Col < 0
	case CommandMoveRight:
		return ref.Col >= tetris.BoardWidth
	default:
		return false
	}
}
