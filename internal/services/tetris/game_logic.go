package tetris

import (
	"time"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/models/tetris"
)

// ApplyCommand はプレイヤーの操作に基づいて操作中のピースを動かします。
// 候補位置を MoveValidator で判定し、合法なときだけ確定します。
// 不正な操作は黙って無視されます。プレイヤーの下移動ではピースは固定されません。
//
// Parameters:
//
//	state : 更新するゲーム状態のポインタ
//	cmd   : プレイヤーの操作
//
// Returns:
//
//	bool: ピースの位置や向きが実際に変わった場合はtrue
func ApplyCommand(state *GameState, cmd Command) bool {
	if state.IsOver() || !state.hasPiece {
		return false
	}

	var candidate tetris.Piece
	switch cmd {
	case CommandMoveLeft:
		candidate = state.CurrentPiece.Translate(0, -1)
	case CommandMoveRight:
		candidate = state.CurrentPiece.Translate(0, 1)
	case CommandMoveDown:
		candidate = state.CurrentPiece.Translate(-1, 0)
	case CommandRotate:
		candidate = state.CurrentPiece.Rotated()
	default:
		return false
	}

	if candidate == state.CurrentPiece {
		return false // O の回転など、形が変わらない操作
	}
	if !NewMoveValidator(&state.Board).Validate(candidate, cmd) {
		return false
	}
	state.CurrentPiece = candidate
	return true
}

// TickResult は1回の重力判定の結果です。
type TickResult struct {
	Due          bool // 落下間隔が経過していたか
	Moved        bool // ピースが1段落ちたか
	Frozen       bool // ピースがボードに固定されたか
	LinesCleared int
	FrozenType   tetris.PieceType
	GameOver     bool
}

// Changed は描画の更新が必要な変化があったかどうかを返します。
func (r TickResult) Changed() bool {
	return r.Moved || r.Frozen || r.GameOver
}

// AutoFall は自動落下処理を行います。
// 落下間隔が経過していれば、まず予約ゾーンを確認し、次に1段下への移動を試みます。
// 移動できなければピースを固定し、揃った行を消して次のピースを出します。
//
// Parameters:
//
//	state : 更新するゲーム状態のポインタ
//	now   : 現在時刻
//
// Returns:
//
//	TickResult: 落下・固定・ゲームオーバーの結果
func AutoFall(state *GameState, now time.Time) TickResult {
	var result TickResult
	if !state.GravityDue(now) {
		return result
	}
	result.Due = true
	state.lastTick = now

	if state.Board.IsGameOverZoneOccupied() {
		state.setGameOver()
		result.GameOver = true
		return result
	}
	if !state.hasPiece {
		result.GameOver = !state.SpawnNewPiece()
		return result
	}

	candidate := state.CurrentPiece.Translate(-1, 0)
	if NewMoveValidator(&state.Board).Validate(candidate, CommandMoveDown) {
		state.CurrentPiece = candidate
		result.Moved = true
		return result
	}

	result.Frozen = true
	result.FrozenType = state.CurrentPiece.Type
	result.LinesCleared = handlePieceLock(state)
	result.GameOver = state.IsOver()
	return result
}

// handlePieceLock はピースをボードに固定した後の処理をまとめて行います。
// ライン消去、スコア・落下間隔の更新、ゲームオーバー判定、次のピース生成が含まれます。
//
// Returns:
//
//	int: 消した行数
func handlePieceLock(state *GameState) int {
	state.Board.Freeze(state.CurrentPiece)
	state.hasPiece = false

	cleared := ClearLines(&state.Board)
	state.applyLineClears(cleared)

	state.SpawnNewPiece()
	return cleared
}
