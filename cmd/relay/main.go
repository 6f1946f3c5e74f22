package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctchen222/tictactoe/internal/config"
	"ctchen222/tictactoe/internal/db"
	"ctchen222/tictactoe/internal/logger"
	"ctchen222/tictactoe/internal/relay"
	"ctchen222/tictactoe/internal/server"
	"ctchen222/tictactoe/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Relay stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Init(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, "tictactoe-relay", cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	broker, err := newBroker(ctx, cfg)
	if err != nil {
		return err
	}
	defer broker.Close()

	hub := relay.NewHub(broker)
	hubCtx, cancelHub := context.WithCancel(context.Background())
	defer cancelHub()
	go hub.Run(hubCtx)

	srv := server.NewServer(hub, cfg.StaticDir)
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Relay listening", "addr", httpServer.Addr, "static.dir", cfg.StaticDir)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	slog.Info("Shutting down relay...")

	// Closing the hub ends every websocket, which lets Shutdown finish.
	cancelHub()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("Relay exiting")
	return nil
}

func newBroker(ctx context.Context, cfg config.Config) (relay.Broker, error) {
	if cfg.RedisAddr == "" {
		return relay.NewLocalBroker(256), nil
	}

	rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	broker, err := relay.NewRedisBroker(ctx, rdb)
	if err != nil {
		rdb.Close()
		return nil, err
	}
	slog.Info("Relay fan-out through redis", "redis.addr", cfg.RedisAddr)
	return broker, nil
}
