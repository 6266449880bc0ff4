package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/models/tetris"
)

func fillRow(b *tetris.Board, row int, block tetris.BlockType, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, col := range except {
		skip[col] = true
	}
	for col := 0; col < tetris.BoardWidth; col++ {
		if !skip[col] {
			b.Set(tetris.Position{Row: row, Col: col}, block)
		}
	}
}

func TestClearLinesNothingToClear(t *testing.T) {
	board := tetris.NewBoard()
	fillRow(&board, 0, tetris.BlockT, 3)
	before := board
	assert.Equal(t, 0, ClearLines(&board))
	assert.Equal(t, before, board)
}

func TestClearLinesSingleRow(t *testing.T) {
	board := tetris.NewBoard()
	fillRow(&board, 0, tetris.BlockI)
	board.Set(tetris.Position{Row: 1, Col: 3}, tetris.BlockS)
	board.Set(tetris.Position{Row: 7, Col: 8}, tetris.BlockZ)

	assert.Equal(t, 1, ClearLines(&board))
	assert.Equal(t, tetris.BlockS, board.Get(tetris.Position{Row: 0, Col: 3}))
	assert.Equal(t, tetris.BlockZ, board.Get(tetris.Position{Row: 6, Col: 8}))
	assert.Equal(t, tetris.BlockEmpty, board.Get(tetris.Position{Row: 7, Col: 8}))
}

func TestClearLinesContiguousRows(t *testing.T) {
	tests := []struct {
		name string
		rows []int
	}{
		{"two at the bottom", []int{0, 1}},
		{"four stacked", []int{3, 4, 5, 6}},
		{"two apart", []int{2, 5}},
		{"whole visible field", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := tetris.NewBoard()
			for _, row := range tt.rows {
				fillRow(&board, row, tetris.BlockL)
			}
			marker := tetris.Position{Row: tetris.BoardHeight - 1, Col: 0}
			board.Set(marker, tetris.BlockO)

			assert.Equal(t, len(tt.rows), ClearLines(&board))
			for row := 0; row < tetris.BoardHeight; row++ {
				assert.False(t, board.IsRowFull(row), "row %d still full", row)
			}
			assert.Equal(t, tetris.BlockO, board.Get(marker.Add(-len(tt.rows), 0)))
		})
	}
}

func TestClearLinesPartialRowsBetweenFullRows(t *testing.T) {
	board := tetris.NewBoard()
	fillRow(&board, 0, tetris.BlockJ)
	fillRow(&board, 1, tetris.BlockJ, 4)
	fillRow(&board, 2, tetris.BlockJ)

	assert.Equal(t, 2, ClearLines(&board))
	assert.False(t, board.IsRowFull(0))
	assert.Equal(t, tetris.BlockEmpty, board.Get(tetris.Position{Row: 0, Col: 4}))
	assert.Equal(t, tetris.BlockJ, board.Get(tetris.Position{Row: 0, Col: 5}))
	for col := 0; col < tetris.BoardWidth; col++ {
		assert.Equal(t, tetris.BlockEmpty, board.Get(tetris.Position{Row: 1, Col: col}))
	}
}
