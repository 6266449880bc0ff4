package tetris

import (
	"log"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/models/tetris"
)

// ゲーム全体の速度設定のデフォルト値です。
const (
	InitialFallInterval = 800 * time.Millisecond // 最初の自動落下間隔
	SpeedUpStep         = 10 * time.Millisecond  // 1行消すごとに短縮される落下間隔
	MinFallInterval     = 100 * time.Millisecond // 落下間隔の下限
)

// Settings は落下速度に関する設定です。
type Settings struct {
	InitialFallInterval time.Duration
	SpeedUpStep         time.Duration
	MinFallInterval     time.Duration
}

// DefaultSettings はデフォルトの速度設定を返します。
func DefaultSettings() Settings {
	return Settings{
		InitialFallInterval: InitialFallInterval,
		SpeedUpStep:         SpeedUpStep,
		MinFallInterval:     MinFallInterval,
	}
}

// Status はゲームの進行状態です。
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusGameOver Status = "game_over"
	StatusQuit     Status = "quit"
)

// GameState は1人用ゲームの状態です。ボードと操作中のピースを排他的に所有します。
type GameState struct {
	ID           string
	Label        string
	Board        tetris.Board
	CurrentPiece tetris.Piece
	Score        int // 消した行数と同じだけ加算される
	LinesCleared int
	Status       Status

	hasPiece     bool
	settings     Settings
	fallInterval time.Duration
	lastTick     time.Time
	startedAt    time.Time
	generator    PieceGenerator
	clock        Clock
}

// NewGameState は空のボードと最初のピースでゲーム状態を初期化して返します。
//
// Parameters:
//
//	settings  : 落下速度の設定
//	generator : ピースの種類を決めるジェネレータ
//	clock     : 重力判定に使う時計
//
// Returns:
//
//	*GameState: 初期化されたゲーム状態のポインタ
func NewGameState(settings Settings, generator PieceGenerator, clock Clock) *GameState {
	now := clock.Now()
	state := &GameState{
		ID:           uuid.New().String(),
		Label:        petname.Generate(2, "-"),
		Board:        tetris.NewBoard(),
		Status:       StatusPlaying,
		settings:     settings,
		fallInterval: settings.InitialFallInterval,
		lastTick:     now,
		startedAt:    now,
		generator:    generator,
		clock:        clock,
	}
	state.SpawnNewPiece()
	return state
}

// FallInterval は現在の自動落下間隔を返します。
func (s *GameState) FallInterval() time.Duration {
	return s.fallInterval
}

// HasPiece は操作中のピースがあるかどうかを返します。
func (s *GameState) HasPiece() bool {
	return s.hasPiece
}

// IsOver はゲームが終了しているかどうかを返します。
func (s *GameState) IsOver() bool {
	return s.Status != StatusPlaying
}

// ElapsedAt は now 時点でのゲーム開始からの経過時間を返します。時計は読みません。
func (s *GameState) ElapsedAt(now time.Time) time.Duration {
	return now.Sub(s.startedAt)
}

// GravityDue は now 時点で自動落下の間隔が経過しているかどうかを返します。
func (s *GameState) GravityDue(now time.Time) bool {
	return !s.IsOver() && now.Sub(s.lastTick) >= s.fallInterval
}

// SpawnNewPiece は新しいテトリミノをボード上に出現させます。
// 予約ゾーンが埋まっている場合、または出現位置が既存のブロックと重なる場合は
// ピースを出さずにゲームオーバーにします。
//
// Returns:
//
//	bool: ピースが出現した場合はtrue
func (s *GameState) SpawnNewPiece() bool {
	if s.IsOver() {
		return false
	}
	if s.Board.IsGameOverZoneOccupied() {
		s.setGameOver()
		return false
	}

	piece := tetris.Spawn(s.generator.NextPieceType())
	if hitsStack(&s.Board, piece) {
		s.setGameOver()
		return false
	}
	s.CurrentPiece = piece
	s.hasPiece = true
	return true
}

// applyLineClears は消した行数に応じてスコアと落下間隔を更新します。
// 1行ごとに個別にスコア +1、落下間隔 -step です。
func (s *GameState) applyLineClears(lines int) {
	for i := 0; i < lines; i++ {
		s.Score++
		s.LinesCleared++
		s.fallInterval = nextFallInterval(s.fallInterval, s.settings.SpeedUpStep, s.settings.MinFallInterval)
	}
}

// nextFallInterval は1行消した後の落下間隔を計算します。下限より短くはなりません。
func nextFallInterval(current, step, floor time.Duration) time.Duration {
	next := current - step
	if next < floor {
		next = floor
	}
	return next
}

func (s *GameState) setGameOver() {
	s.Status = StatusGameOver
	s.hasPiece = false
	log.Printf("[GameState] Game %s (%s) over! Final Score: %d, Lines Cleared: %d", s.ID, s.Label, s.Score, s.LinesCleared)
}

// Snapshot は描画用にボードと操作中のピースを重ねた読み取り専用のコピーを返します。
func (s *GameState) Snapshot() tetris.Snapshot {
	var active *tetris.Piece
	if s.hasPiece {
		piece := s.CurrentPiece
		active = &piece
	}
	return tetris.Snapshot{
		GameID:         s.ID,
		Label:          s.Label,
		Grid:           tetris.NewGrid(&s.Board, active),
		ActiveType:     s.CurrentPiece.Type,
		HasActive:      s.hasPiece,
		Score:          s.Score,
		LinesCleared:   s.LinesCleared,
		FallIntervalMs: s.fallInterval.Milliseconds(),
		Status:         string(s.Status),
	}
}
