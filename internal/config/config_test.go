package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/services/tetris"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(mapLookup(nil))
	require.NoError(t, err)

	assert.Equal(t, 800*time.Millisecond, cfg.FallInterval)
	assert.Equal(t, 10*time.Millisecond, cfg.SpeedUpStep)
	assert.Equal(t, 100*time.Millisecond, cfg.MinFallInterval)
	assert.Equal(t, 5*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, "./gitris.log", cfg.LogFile)
	assert.False(t, cfg.SpectatorEnabled())
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, tetris.DefaultSettings(), cfg.GameSettings())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(mapLookup(map[string]string{
		"FALL_INTERVAL_MS":     "500",
		"SPEEDUP_STEP_MS":      "20",
		"MIN_FALL_INTERVAL_MS": "50",
		"POLL_INTERVAL_MS":     "0",
		"SEED":                 "1234",
		"LOG_FILE":             "/tmp/solo.log",
		"SPECTATOR_ADDR":       " :8080 ",
		"SPECTATOR_JWT_SECRET": "s3cret",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,,",
		"OTEL_ENABLED":         "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.FallInterval)
	assert.Equal(t, 20*time.Millisecond, cfg.SpeedUpStep)
	assert.Equal(t, 50*time.Millisecond, cfg.MinFallInterval)
	assert.Equal(t, time.Duration(0), cfg.PollInterval)
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, "/tmp/solo.log", cfg.LogFile)
	assert.Equal(t, ":8080", cfg.SpectatorAddr)
	assert.True(t, cfg.SpectatorEnabled())
	assert.Equal(t, "s3cret", cfg.SpectatorJWTSecret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.OTelEnabled)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non-numeric interval", map[string]string{"FALL_INTERVAL_MS": "fast"}},
		{"zero interval", map[string]string{"FALL_INTERVAL_MS": "0"}},
		{"floor above interval", map[string]string{"FALL_INTERVAL_MS": "200", "MIN_FALL_INTERVAL_MS": "300"}},
		{"negative step", map[string]string{"SPEEDUP_STEP_MS": "-1"}},
		{"negative poll", map[string]string{"POLL_INTERVAL_MS": "-5"}},
		{"bad seed", map[string]string{"SEED": "abc"}},
		{"bad bool", map[string]string{"OTEL_ENABLED": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv(mapLookup(tt.env))
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadInProductionSkipsDotEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("FALL_INTERVAL_MS", "650")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 650*time.Millisecond, cfg.FallInterval)
}
