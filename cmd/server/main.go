// Command server runs the multiplayer word game service: HTTP room
// creation plus WebSocket gameplay.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/robert-carpenter/spellcast-clone/internal/cache"
	"github.com/robert-carpenter/spellcast-clone/internal/config"
	"github.com/robert-carpenter/spellcast-clone/internal/game"
	"github.com/robert-carpenter/spellcast-clone/internal/words"
	"github.com/robert-carpenter/spellcast-clone/internal/ws"
)

func main() {
	cfg := config.Load()
	logrus.SetLevel(cfg.LogLevel)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	dict, err := words.Load(cfg.WordsFile)
	if err != nil {
		logrus.WithError(err).Fatal("loading dictionary")
	}
	logrus.WithField("words", dict.Len()).Info("dictionary loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cache.InitRedis(ctx, cfg.RedisURL); err != nil {
		// History is best effort; the game runs without it.
		logrus.WithError(err).Warn("redis unavailable, action history disabled")
	}
	defer cache.Close()

	manager := game.NewManager(game.ManagerConfig{
		TotalRounds:     cfg.TotalRounds,
		TurnDuration:    cfg.TurnTimer,
		DisconnectGrace: cfg.DisconnectGrace,
		LobbyResetDelay: cfg.LobbyResetDelay,
		MaxPlayers:      cfg.MaxPlayers,
	}, dict)
	defer manager.Shutdown()

	mux := http.NewServeMux()
	ws.NewServer(manager).Routes(mux)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	go func() {
		logrus.WithField("addr", cfg.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutdown error")
	}
}
