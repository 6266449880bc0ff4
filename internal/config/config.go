// Package config は .env ファイルと環境変数からアプリケーション設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/services/tetris"
)

// ErrInvalidConfig は設定値が不正な場合に返されるエラーです。
var ErrInvalidConfig = errors.New("invalid config")

// Config はアプリケーション全体の設定です。
type Config struct {
	FallInterval       time.Duration
	SpeedUpStep        time.Duration
	MinFallInterval    time.Duration
	PollInterval       time.Duration
	Seed               int64
	LogFile            string
	SpectatorAddr      string // 空なら観戦サーバーを起動しない
	SpectatorJWTSecret string // 空なら認証なし
	CORSAllowedOrigins []string
	OTelEnabled        bool
}

var defaultAllowedOrigins = []string{"http://localhost:3000"}

// Load は設定を読み込みます。APP_ENV が production 以外のときは先に .env を読み込みます。
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("[Config] warning: Error loading .env file (this is fine in production): %v", err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv は lookup から設定を組み立てます。テストでは環境変数の代わりに map を渡せます。
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{
		LogFile:            "./gitris.log",
		CORSAllowedOrigins: defaultAllowedOrigins,
	}

	var err error
	if cfg.FallInterval, err = durationMs(lookup, "FALL_INTERVAL_MS", tetris.InitialFallInterval); err != nil {
		return nil, err
	}
	if cfg.SpeedUpStep, err = durationMs(lookup, "SPEEDUP_STEP_MS", tetris.SpeedUpStep); err != nil {
		return nil, err
	}
	if cfg.MinFallInterval, err = durationMs(lookup, "MIN_FALL_INTERVAL_MS", tetris.MinFallInterval); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = durationMs(lookup, "POLL_INTERVAL_MS", 5*time.Millisecond); err != nil {
		return nil, err
	}

	if v, ok := lookup("SEED"); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: SEED=%q: %v", ErrInvalidConfig, v, err)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup("LOG_FILE"); ok && v != "" {
		cfg.LogFile = v
	}
	if v, ok := lookup("SPECTATOR_ADDR"); ok {
		cfg.SpectatorAddr = strings.TrimSpace(v)
	}
	if v, ok := lookup("SPECTATOR_JWT_SECRET"); ok {
		cfg.SpectatorJWTSecret = v
	}
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && strings.TrimSpace(v) != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	if v, ok := lookup("OTEL_ENABLED"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: OTEL_ENABLED=%q: %v", ErrInvalidConfig, v, err)
		}
		cfg.OTelEnabled = enabled
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値の整合性を確認します。
func (c *Config) Validate() error {
	if c.FallInterval <= 0 {
		return fmt.Errorf("%w: fall interval must be positive, got %s", ErrInvalidConfig, c.FallInterval)
	}
	if c.MinFallInterval <= 0 {
		return fmt.Errorf("%w: min fall interval must be positive, got %s", ErrInvalidConfig, c.MinFallInterval)
	}
	if c.MinFallInterval > c.FallInterval {
		return fmt.Errorf("%w: min fall interval %s exceeds fall interval %s", ErrInvalidConfig, c.MinFallInterval, c.FallInterval)
	}
	if c.SpeedUpStep < 0 {
		return fmt.Errorf("%w: speed-up step must not be negative, got %s", ErrInvalidConfig, c.SpeedUpStep)
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("%w: poll interval must not be negative, got %s", ErrInvalidConfig, c.PollInterval)
	}
	return nil
}

// GameSettings はゲームエンジン用の速度設定に変換します。
func (c *Config) GameSettings() tetris.Settings {
	return tetris.Settings{
		InitialFallInterval: c.FallInterval,
		SpeedUpStep:         c.SpeedUpStep,
		MinFallInterval:     c.MinFallInterval,
	}
}

// SpectatorEnabled は観戦サーバーを起動するかどうかを返します。
func (c *Config) SpectatorEnabled() bool {
	return c.SpectatorAddr != ""
}

func durationMs(lookup func(string) (string, bool), key string, def time.Duration) (time.Duration, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def, nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
