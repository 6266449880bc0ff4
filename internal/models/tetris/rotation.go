package tetris

// rotationDelta は1回の回転で4マスそれぞれに加算する (dRow, dCol) です。
type rotationDelta [4]Position

// rotationTable は [PieceType][回転状態] ごとの回転デルタです。
// 回転行列から導出したものではなく、種類ごとに固定された値です。
// スライスの長さがその種類の回転周期になります。O は回転しないので周期 1 の恒等変換です。
var rotationTable = map[PieceType][]rotationDelta{
	TypeT: {
		{{-1, 1}, {0, 0}, {0, 0}, {0, 0}},
		{{0, 0}, {0, 0}, {0, 0}, {-1, -1}},
		{{0, 0}, {0, 0}, {1, -1}, {0, 0}},
		{{1, -1}, {0, 0}, {-1, 1}, {1, 1}},
	},
	TypeI: {
		{{1, -1}, {0, 0}, {-1, 1}, {-2, 2}}, // 縦 -> 横
		{{-1, 1}, {0, 0}, {1, -1}, {2, -2}}, // 横 -> 縦
	},
	TypeS: {
		{{2, 1}, {0, 1}, {0, 0}, {0, 0}},
		{{-2, -1}, {0, -1}, {0, 0}, {0, 0}},
	},
	TypeZ: {
		{{0, 0}, {2, 0}, {0, 2}, {0, 0}},
		{{0, 0}, {-2, 0}, {0, -2}, {0, 0}},
	},
	TypeO: {
		{{0, 0}, {0, 0}, {0, 0}, {0, 0}},
	},
	TypeL: {
		{{0, 0}, {1, 1}, {-1, -1}, {0, -2}},
		{{0, 0}, {-1, -1}, {1, 1}, {2, 0}},
		{{0, 0}, {1, 1}, {-1, -1}, {0, 2}},
		{{0, 0}, {-1, -1}, {1, 1}, {-2, 0}},
	},
	TypeJ: {
		{{0, 0}, {1, 1}, {-1, -1}, {2, 0}},
		{{0, 0}, {-1, -1}, {1, 1}, {0, 2}},
		{{0, 0}, {1, 1}, {-1, -1}, {-2, 0}},
		{{0, 0}, {-1, -1}, {1, 1}, {0, -2}},
	},
}

// CycleLength は種類ごとの回転周期を返します (O: 1, I/S/Z: 2, T/L/J: 4)。
func CycleLength(t PieceType) int {
	if n := len(rotationTable[t]); n > 0 {
		return n
	}
	return 1
}

func lookupRotation(t PieceType, rotation int) (rotationDelta, bool) {
	steps, ok := rotationTable[t]
	if !ok || rotation < 0 || rotation >= len(steps) {
		return rotationDelta{}, false
	}
	return steps[rotation], true
}
