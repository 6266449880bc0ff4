package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/models/tetris"
)

func TestRandomGeneratorIsDeterministicForSeed(t *testing.T) {
	a := NewRandomGenerator(42)
	b := NewRandomGenerator(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.NextPieceType(), b.NextPieceType())
	}
}

func TestRandomGeneratorCoversAllKinds(t *testing.T) {
	gen := NewRandomGenerator(7)
	seen := make(map[tetris.PieceType]int)
	for i := 0; i < 7000; i++ {
		pt := gen.NextPieceType()
		assert.True(t, pt.Valid())
		seen[pt]++
	}
	assert.Len(t, seen, tetris.PieceTypeCount)
	for pt, n := range seen {
		// 期待値は 1000。大きく偏っていないことだけ確認する
		assert.Greater(t, n, 700, "%s drawn too rarely", pt)
	}
}

func TestSequenceGenerator(t *testing.T) {
	gen := NewSequenceGenerator(tetris.TypeS, tetris.TypeZ)
	assert.Equal(t, tetris.TypeS, gen.NextPieceType())
	assert.Equal(t, tetris.TypeZ, gen.NextPieceType())
	assert.Equal(t, tetris.TypeS, gen.NextPieceType())
	assert.Equal(t, 3, gen.Taken())

	assert.Equal(t, tetris.TypeT, NewSequenceGenerator().NextPieceType())
}

func TestManualClock(t *testing.T) {
	clock := NewManualClock(testEpoch)
	assert.Equal(t, testEpoch, clock.Now())
	assert.Equal(t, testEpoch, clock.Now())

	clock.Advance(time.Second)
	assert.Equal(t, testEpoch.Add(time.Second), clock.Now())

	clock.Step = 5 * time.Millisecond
	assert.Equal(t, testEpoch.Add(time.Second), clock.Now())
	assert.Equal(t, testEpoch.Add(time.Second+5*time.Millisecond), clock.Now())
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		action   string
		expected Command
		ok       bool
	}{
		{"move_left", CommandMoveLeft, true},
		{"move_right", CommandMoveRight, true},
		{"soft_drop", CommandMoveDown, true},
		{"rotate_right", CommandRotate, true},
		{"quit", CommandQuit, true},
		{"hard_drop", CommandNone, false},
	}
	for _, tt := range tests {
		cmd, ok := ParseCommand(tt.action)
		assert.Equal(t, tt.expected, cmd, tt.action)
		assert.Equal(t, tt.ok, ok, tt.action)
	}
	assert.Equal(t, "move_down", CommandMoveDown.String())
}
