package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

// TestLoadDefaults verifies the zero-environment defaults.
func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.TotalRounds != 5 {
		t.Errorf("TotalRounds = %d, want 5", cfg.TotalRounds)
	}
	if cfg.TurnTimer != 60*time.Second {
		t.Errorf("TurnTimer = %v, want 60s", cfg.TurnTimer)
	}
	if cfg.LogLevel != logrus.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

// TestLoadOverrides verifies environment variables take effect and bad
// values fall back.
func TestLoadOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("GAME_ROUNDS", "3")
	t.Setenv("TURN_TIMER_SEC", "0")
	t.Setenv("ROOM_MAX_PLAYERS", "notanumber")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.TotalRounds != 3 {
		t.Errorf("TotalRounds = %d, want 3", cfg.TotalRounds)
	}
	if cfg.TurnTimer != 0 {
		t.Errorf("TurnTimer = %v, want 0 (disabled)", cfg.TurnTimer)
	}
	if cfg.MaxPlayers != 8 {
		t.Errorf("MaxPlayers = %d, want fallback 8", cfg.MaxPlayers)
	}
	if cfg.LogLevel != logrus.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}
