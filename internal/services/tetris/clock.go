package tetris

import "time"

// Clock は重力判定に使う現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

// SystemClock は実時間を返す Clock です。
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock は手動で進める Clock です。
// Step が 0 でなければ、Now を呼ぶたびに Step だけ時刻が進みます。
type ManualClock struct {
	now  time.Time
	Step time.Duration
}

// NewManualClock は start から始まる ManualClock を返します。
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	now := c.now
	c.now = c.now.Add(c.Step)
	return now
}

// Advance は時刻を d だけ進めます。
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
