package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/models/tetris"
)

// tick は落下間隔だけ時間を進めて AutoFall を1回実行します。
func tick(state *GameState, clock *ManualClock) TickResult {
	clock.Advance(state.FallInterval())
	return AutoFall(state, clock.Now())
}

// tickUntilFrozen はピースが固定されるまで重力を進めます。
func tickUntilFrozen(t *testing.T, state *GameState, clock *ManualClock) TickResult {
	t.Helper()
	for i := 0; i < tetris.BoardHeight+1; i++ {
		if result := tick(state, clock); result.Frozen || result.GameOver {
			return result
		}
	}
	t.Fatal("piece never froze")
	return TickResult{}
}

// TestApplyCommand_MoveLeft はピースの左移動をテストします。
func TestApplyCommand_MoveLeft(t *testing.T) {
	state, _, _ := newTestState(t, tetris.TypeT)
	initial := state.CurrentPiece

	assert.True(t, ApplyCommand(state, CommandMoveLeft))
	assert.Equal(t, initial.Translate(0, -1), state.CurrentPiece)
}

func TestApplyCommand_LeftThenRightRestores(t *testing.T) {
	for _, pt := range tetris.AllPieceTypes {
		state, _, _ := newTestState(t, pt)
		initial := state.CurrentPiece
		require.True(t, ApplyCommand(state, CommandMoveLeft))
		require.True(t, ApplyCommand(state, CommandMoveRight))
		assert.Equal(t, initial, state.CurrentPiece, "%s", pt)
	}
}

// TestApplyCommand_LeftWall は左壁に押し付け続けても位置が変わらずラップしないことを確認します。
func TestApplyCommand_LeftWall(t *testing.T) {
	for _, pt := range tetris.AllPieceTypes {
		state, _, _ := newTestState(t, pt)
		for i := 0; i < tetris.BoardWidth; i++ {
			ApplyCommand(state, CommandMoveLeft)
		}
		pinned := state.CurrentPiece
		for i := 0; i < 20; i++ {
			assert.False(t, ApplyCommand(state, CommandMoveLeft), "%s moved through the wall", pt)
		}
		assert.Equal(t, pinned, state.CurrentPiece)

		minCol := tetris.BoardWidth
		for _, cell := range state.CurrentPiece.Cells {
			if cell.Col < minCol {
				minCol = cell.Col
			}
		}
		assert.Equal(t, 0, minCol, "%s should rest against the left wall", pt)
	}
}

func TestApplyCommand_RightWall(t *testing.T) {
	state, _, _ := newTestState(t, tetris.TypeI)
	for i := 0; i < tetris.BoardWidth; i++ {
		ApplyCommand(state, CommandMoveRight)
	}
	assert.Equal(t, tetris.BoardWidth-1, state.CurrentPiece.Cells[0].Col)
	assert.False(t, ApplyCommand(state, CommandMoveRight))
}

// TestApplyCommand_Rotate はピースの回転をテストします。
func TestApplyCommand_Rotate(t *testing.T) {
	state, _, _ := newTestState(t, tetris.TypeT)
	expected := state.CurrentPiece.Rotated()

	assert.True(t, ApplyCommand(state, CommandRotate))
	assert.Equal(t, expected, state.CurrentPiece)
	assert.Equal(t, 1, state.CurrentPiece.Rotation)
}

func TestApplyCommand_RotateO(t *testing.T) {
	state, _, _ := newTestState(t, tetris.TypeO)
	initial := state.CurrentPiece
	assert.False(t, ApplyCommand(state, CommandRotate))
	assert.Equal(t, initial, state.CurrentPiece)
}

// 回転後の位置が壁の外になる場合は回転状態も含めて何も変わらない
func TestApplyCommand_RotateBlockedKeepsState(t *testing.T) {
	state, _, _ := newTestState(t, tetris.TypeI)
	for i := 0; i < tetris.BoardWidth; i++ {
		ApplyCommand(state, CommandMoveRight)
	}
	initial := state.CurrentPiece
	// 縦向きIを右端で回転すると右に2マスはみ出す
	assert.False(t, ApplyCommand(state, CommandRotate))
	assert.Equal(t, initial, state.CurrentPiece)
	assert.Equal(t, 0, state.CurrentPiece.Rotation)
}

func TestApplyCommand_RotateBlockedByStack(t *testing.T) {
	state, _, _ := newTestState(t, tetris.TypeT)
	blocked := state.CurrentPiece.Rotated()
	state.Board.Set(blocked.Cells[0], tetris.BlockJ)

	assert.False(t, ApplyCommand(state, CommandRotate))
	assert.Equal(t, 0, state.CurrentPiece.Rotation)
}

func TestApplyCommand_MoveDown(t *testing.T) {
	state, _, gen := newTestState(t, tetris.TypeO)
	for state.CurrentPiece.Cells[0].Row > 0 {
		require.True(t, ApplyCommand(state, CommandMoveDown))
	}
	// プレイヤーの下移動では固定されない
	assert.False(t, ApplyCommand(state, CommandMoveDown))
	assert.True(t, state.HasPiece())
	assert.Equal(t, 1, gen.Taken())
	assert.Equal(t, tetris.NewBoard(), state.Board)
}

func TestApplyCommand_IgnoredWhenOver(t *testing.T) {
	state, _, _ := newTestState(t)
	state.Status = StatusGameOver
	assert.False(t, ApplyCommand(state, CommandMoveLeft))
	assert.False(t, ApplyCommand(state, CommandNone))
}

// TestAutoFall はピースの自動落下をテストします。
func TestAutoFall(t *testing.T) {
	state, clock, _ := newTestState(t, tetris.TypeT)
	initial := state.CurrentPiece

	// 落下間隔が経過していない
	clock.Advance(state.FallInterval() - 1)
	result := AutoFall(state, clock.Now())
	assert.False(t, result.Due)
	assert.Equal(t, initial, state.CurrentPiece)

	clock.Advance(1)
	result = AutoFall(state, clock.Now())
	assert.True(t, result.Due)
	assert.True(t, result.Moved)
	assert.Equal(t, initial.Translate(-1, 0), state.CurrentPiece)

	// タイマーはリセットされている
	assert.False(t, AutoFall(state, clock.Now()).Due)
}

func TestAutoFall_FreezeAndSpawn(t *testing.T) {
	state, clock, gen := newTestState(t, tetris.TypeO, tetris.TypeT)
	falling := state.CurrentPiece.Translate(-16, 0)

	result := tickUntilFrozen(t, state, clock)
	assert.Equal(t, tetris.TypeO, result.FrozenType)
	assert.Equal(t, 0, result.LinesCleared)
	assert.False(t, result.GameOver)
	for _, cell := range falling.Cells {
		assert.Equal(t, tetris.BlockO, state.Board.Get(cell))
	}
	assert.Equal(t, tetris.Spawn(tetris.TypeT), state.CurrentPiece)
	assert.Equal(t, 2, gen.Taken())
}

// 1マスだけ空いた行をピースの固定で埋めると、その行だけが消える
func TestAutoFall_ClearsSingleRow(t *testing.T) {
	state, clock, _ := newTestState(t, tetris.TypeI, tetris.TypeO)
	fillRow(&state.Board, 0, tetris.BlockZ, 5)
	state.Board.Set(tetris.Position{Row: 1, Col: 0}, tetris.BlockS)

	result := tickUntilFrozen(t, state, clock)
	require.Equal(t, 1, result.LinesCleared)
	assert.Equal(t, 1, state.Score)
	assert.Equal(t, InitialFallInterval-SpeedUpStep, state.FallInterval())

	// 上の行が1段ずつ下がる
	assert.Equal(t, tetris.BlockS, state.Board.Get(tetris.Position{Row: 0, Col: 0}))
	for row := 0; row < 3; row++ {
		assert.Equal(t, tetris.BlockI, state.Board.Get(tetris.Position{Row: row, Col: 5}))
	}
	assert.Equal(t, tetris.BlockEmpty, state.Board.Get(tetris.Position{Row: 3, Col: 5}))
	for col := 0; col < tetris.BoardWidth; col++ {
		assert.Equal(t, tetris.BlockEmpty, state.Board.Get(tetris.Position{Row: tetris.BoardHeight - 1, Col: col}))
	}
}

func TestAutoFall_ClearsTwoContiguousRows(t *testing.T) {
	state, clock, _ := newTestState(t, tetris.TypeI, tetris.TypeO)
	fillRow(&state.Board, 0, tetris.BlockL, 5)
	fillRow(&state.Board, 1, tetris.BlockL, 5)

	result := tickUntilFrozen(t, state, clock)
	assert.Equal(t, 2, result.LinesCleared)
	assert.Equal(t, 2, state.Score)
	assert.Equal(t, InitialFallInterval-2*SpeedUpStep, state.FallInterval())
	assert.Equal(t, tetris.BlockI, state.Board.Get(tetris.Position{Row: 0, Col: 5}))
	assert.Equal(t, tetris.BlockI, state.Board.Get(tetris.Position{Row: 1, Col: 5}))
	assert.Equal(t, tetris.BlockEmpty, state.Board.Get(tetris.Position{Row: 2, Col: 5}))
}

// 予約ゾーンが埋まった状態で重力が働くと、新しいピースを出さずにゲームオーバーになる
func TestAutoFall_GameOverZone(t *testing.T) {
	state, clock, gen := newTestState(t, tetris.TypeT)
	for col := tetris.GameOverZoneFirstCol; col <= tetris.GameOverZoneLastCol; col++ {
		state.Board.Set(tetris.Position{Row: tetris.GameOverZoneRow, Col: col}, tetris.BlockJ)
	}

	result := tick(state, clock)
	assert.True(t, result.GameOver)
	assert.Equal(t, StatusGameOver, state.Status)
	assert.Equal(t, 1, gen.Taken())

	assert.False(t, tick(state, clock).Due)
}

func TestAutoFall_FreezeIntoZoneEndsGame(t *testing.T) {
	state, clock, gen := newTestState(t, tetris.TypeO)
	// O の直下を埋めて、出現位置でそのまま固定させる
	fillRow(&state.Board, tetris.GameOverZoneRow-1, tetris.BlockT, 0)

	result := tick(state, clock)
	assert.True(t, result.Frozen)
	assert.True(t, result.GameOver)
	assert.False(t, state.HasPiece())
	assert.Equal(t, 1, gen.Taken())
}
