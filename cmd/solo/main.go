// Package main is the entry point for GITRIS Solo.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/api/handlers"
	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/config"
	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/logging"
	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/services/spectator"
	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/services/tetris"
	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/telemetry"
	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/ui"
)

// 観戦者へのプレイ中の配信間隔
const spectatorBroadcastInterval = 100 * time.Millisecond

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 画面をターミナルUIが使うので、ログはファイルに書き出す
	logFile, err := logging.InitLog(cfg.LogFile, "[gitris] ")
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	outcome, err := run(cfg)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[Main] Game error: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		logFile.Close()
		os.Exit(1)
	}

	fmt.Printf("Finished (%s): score %d, lines %d, played %s\n",
		outcome.Reason, outcome.Score, outcome.LinesCleared, outcome.Duration.Round(time.Second))
}

func run(cfg *config.Config) (tetris.Outcome, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEnabled {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("[Main] Warning: telemetry setup failed, running without tracing: %v", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Printf("[Main] Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	state := tetris.NewGameState(cfg.GameSettings(), tetris.NewRandomGenerator(cfg.Seed), tetris.SystemClock{})

	screen, err := ui.NewScreen()
	if err != nil {
		return tetris.Outcome{}, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Close()

	input := ui.NewKeyboardSource(screen)
	input.Start(ctx)
	renderers := tetris.MultiRenderer{ui.NewRenderer(screen)}

	if cfg.SpectatorEnabled() {
		hub := spectator.NewHub(spectatorBroadcastInterval)
		defer hub.Shutdown()
		renderers = append(renderers, hub)

		srv := &http.Server{
			Addr: cfg.SpectatorAddr,
			Handler: handlers.NewRouter(hub, handlers.RouterConfig{
				JWTSecret:      cfg.SpectatorJWTSecret,
				AllowedOrigins: cfg.CORSAllowedOrigins,
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Printf("[Main] Spectator server starting on %s", cfg.SpectatorAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[Main] Spectator server error: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("[Main] Error shutting down spectator server: %v", err)
			}
		}()
	}

	loop := tetris.NewLoop(state, input, renderers, tetris.WithPollInterval(cfg.PollInterval))
	outcome, err := loop.Run(ctx)
	if err != nil {
		return outcome, fmt.Errorf("game loop stopped: %w", err)
	}

	// 最終画面を少しだけ見せてから端末を戻す
	if outcome.Reason == tetris.ReasonGameOver {
		select {
		case <-ctx.Done():
		case <-time.After(1500 * time.Millisecond):
		}
	}
	return outcome, nil
}
