// Package config centralizes environment-driven settings for the
// server. A .env file is honored when present; explicit environment
// variables always win.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all server settings.
type Config struct {
	Addr string // listen address, e.g. ":8080"

	RedisURL  string // optional; empty disables action history
	WordsFile string // optional; empty uses the embedded list

	TotalRounds     int           // rounds per game
	TurnTimer       time.Duration // per-turn limit; 0 disables
	DisconnectGrace time.Duration // grace before a disconnect counts as leaving
	LobbyResetDelay time.Duration // delay before a finished game returns to lobby
	MaxPlayers      int           // per-room player cap, spectators included

	LogLevel logrus.Level
}

// Load reads settings from the environment, after loading an optional
// .env file. Missing values fall back to defaults suitable for local
// play.
func Load() Config {
	// Best effort; absent .env is the normal production case.
	_ = godotenv.Load()

	cfg := Config{
		Addr:            getEnv("LISTEN_ADDR", ":8080"),
		RedisURL:        os.Getenv("REDIS_URL"),
		WordsFile:       os.Getenv("WORDS_FILE"),
		TotalRounds:     getEnvInt("GAME_ROUNDS", 5),
		TurnTimer:       getEnvSeconds("TURN_TIMER_SEC", 60),
		DisconnectGrace: getEnvSeconds("DISCONNECT_GRACE_SEC", 30),
		LobbyResetDelay: getEnvSeconds("LOBBY_RESET_SEC", 15),
		MaxPlayers:      getEnvInt("ROOM_MAX_PLAYERS", 8),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// getEnvSeconds reads an integer second count. Zero and negative values
// resolve to 0, which callers treat as disabled.
func getEnvSeconds(key string, fallback int) time.Duration {
	n := getEnvInt(key, fallback)
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func parseLogLevel(s string) logrus.Level {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		logrus.Warnf("config: invalid LOG_LEVEL=%q, using info", s)
		return logrus.InfoLevel
	}
	return lvl
}
