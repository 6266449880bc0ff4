package tetris

import "github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/models/tetris"

// ClearLines は揃った行を全て消し、上の行を落として、消した行数を返します。
//
// 行は下から上へ調べます。ある行を消したら、上から落ちてきた行が同じ位置に入るため
// 同じ行番号をもう一度調べます。1周して何も消えなくなるまで繰り返します。
//
// Parameters:
//
//	board : 対象のボード
//
// Returns:
//
//	int: 消した行数
func ClearLines(board *tetris.Board) int {
	cleared := 0
	for {
		pass := 0
		row := 0
		for row < tetris.BoardHeight {
			if board.IsRowFull(row) {
				board.CollapseFrom(row)
				pass++
				continue
			}
			row++
		}
		if pass == 0 {
			return cleared
		}
		cleared += pass
	}
}
