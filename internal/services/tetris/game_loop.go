package tetris

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/models/tetris"
	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/telemetry"
)

// CommandSource は入力を1つずつ返します。PollCommand はブロックしてはいけません。
// 入力がなければ CommandNone を返します。
type CommandSource interface {
	PollCommand() Command
}

// Renderer は状態が変わるたびにスナップショットを受け取ります。
type Renderer interface {
	Render(snapshot tetris.Snapshot)
}

// RendererFunc は関数を Renderer として使うためのアダプタです。
type RendererFunc func(snapshot tetris.Snapshot)

func (f RendererFunc) Render(snapshot tetris.Snapshot) { f(snapshot) }

// MultiRenderer は1つのスナップショットを複数の Renderer に配ります。
type MultiRenderer []Renderer

func (m MultiRenderer) Render(snapshot tetris.Snapshot) {
	for _, r := range m {
		if r != nil {
			r.Render(snapshot)
		}
	}
}

// Reason はゲームループが終了した理由です。
type Reason string

const (
	ReasonGameOver Reason = "game_over"
	ReasonQuit     Reason = "quit"
)

// Outcome はゲームループの終了結果です。
type Outcome struct {
	Reason       Reason        `json:"reason"`
	Score        int           `json:"score"`
	LinesCleared int           `json:"lines_cleared"`
	Duration     time.Duration `json:"duration"`
}

// LoopOption は Loop の設定を変更します。
type LoopOption func(*Loop)

// WithPollInterval は何も起きなかった反復の後に待つ時間を設定します。0 なら待ちません。
func WithPollInterval(d time.Duration) LoopOption {
	return func(l *Loop) { l.pollInterval = d }
}

// WithTracer はループが使うトレーサーを設定します。
func WithTracer(tracer trace.Tracer) LoopOption {
	return func(l *Loop) { l.tracer = tracer }
}

// Loop は入力と重力を交互に処理するゲームループです。
// 1回の反復では、入力の処理か重力の処理のどちらか1つだけを行います。落下の時刻が来ていれば重力が先です。
type Loop struct {
	state        *GameState
	input        CommandSource
	renderer     Renderer
	clock        Clock
	pollInterval time.Duration
	tracer       trace.Tracer
}

// NewLoop は state を input と renderer に接続した Loop を返します。
func NewLoop(state *GameState, input CommandSource, renderer Renderer, opts ...LoopOption) *Loop {
	l := &Loop{
		state:    state,
		input:    input,
		renderer: renderer,
		clock:    state.clock,
		tracer:   telemetry.Tracer("game"),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.renderer == nil {
		l.renderer = MultiRenderer{}
	}
	return l
}

// State はループが所有するゲーム状態を返します。
func (l *Loop) State() *GameState {
	return l.state
}

// Run はゲームオーバーか終了操作までゲームを進め、その結果を返します。
// ctx がキャンセルされた場合は Quit の結果と ctx.Err() を返します。
func (l *Loop) Run(ctx context.Context) (Outcome, error) {
	ctx, span := l.tracer.Start(ctx, "game.run", trace.WithAttributes(
		attribute.String("game.id", l.state.ID),
		attribute.String("game.label", l.state.Label),
	))
	defer span.End()

	log.Printf("[GameLoop] Game %s (%s) started, fall interval %s", l.state.ID, l.state.Label, l.state.FallInterval())
	l.renderer.Render(l.state.Snapshot())

	if l.state.IsOver() {
		return l.finish(span, ReasonGameOver, l.clock.Now()), nil
	}

	var idle *time.Timer
	if l.pollInterval > 0 {
		idle = time.NewTimer(l.pollInterval)
		defer idle.Stop()
	}

	for {
		now := l.clock.Now()
		select {
		case <-ctx.Done():
			span.SetStatus(codes.Error, ctx.Err().Error())
			return l.finish(span, ReasonQuit, now), ctx.Err()
		default:
		}

		// 落下の時刻が来ていれば入力より重力を優先する。入力が途切れなくても落下は止まらない
		changed := false
		if l.state.GravityDue(now) {
			result := AutoFall(l.state, now)
			if result.Frozen {
				l.traceLock(ctx, result)
			}
			if result.GameOver {
				l.renderer.Render(l.state.Snapshot())
				return l.finish(span, ReasonGameOver, now), nil
			}
			changed = result.Changed()
		} else if cmd := l.input.PollCommand(); cmd != CommandNone {
			if cmd == CommandQuit {
				l.state.Status = StatusQuit
				l.renderer.Render(l.state.Snapshot())
				return l.finish(span, ReasonQuit, now), nil
			}
			changed = ApplyCommand(l.state, cmd)
		}

		if changed {
			l.renderer.Render(l.state.Snapshot())
			continue
		}
		if idle != nil {
			idle.Reset(l.pollInterval)
			select {
			case <-ctx.Done():
			case <-idle.C:
			}
		}
	}
}

func (l *Loop) traceLock(ctx context.Context, result TickResult) {
	_, span := l.tracer.Start(ctx, "game.lock")
	span.SetAttributes(
		attribute.String("piece.type", result.FrozenType.String()),
		attribute.Int("lines.cleared", result.LinesCleared),
		attribute.Int("game.score", l.state.Score),
		attribute.Int64("game.fall_interval_ms", l.state.FallInterval().Milliseconds()),
	)
	span.End()

	if result.LinesCleared > 0 {
		log.Printf("[GameLoop] Cleared %d line(s), score %d, fall interval %s", result.LinesCleared, l.state.Score, l.state.FallInterval())
	}
}

// finish は now を終了時刻として Outcome を組み立てます。
func (l *Loop) finish(span trace.Span, reason Reason, now time.Time) Outcome {
	outcome := Outcome{
		Reason:       reason,
		Score:        l.state.Score,
		LinesCleared: l.state.LinesCleared,
		Duration:     l.state.ElapsedAt(now),
	}
	span.SetAttributes(
		attribute.String("game.outcome", string(reason)),
		attribute.Int("game.score", outcome.Score),
		attribute.Int("game.lines_cleared", outcome.LinesCleared),
	)
	log.Printf("[GameLoop] Game %s finished: %s, score %d", l.state.ID, reason, outcome.Score)
	return outcome
}
