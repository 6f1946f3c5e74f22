package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/tictactoe/internal/config"
	"ctchen222/tictactoe/internal/console"
	"ctchen222/tictactoe/internal/controller"
	"ctchen222/tictactoe/internal/logger"
	"ctchen222/tictactoe/internal/loop"
	"ctchen222/tictactoe/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.Error("Invalid log level", "error", err)
		os.Exit(1)
	}
	logger.Init(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.InitOtel(ctx, "tictactoe", cfg.OTLPEndpoint)
	if err != nil {
		slog.Error("Failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	slog.Debug("Random source seeded", "seed", seed)

	events := loop.New(16)
	term := console.New(os.Stdout)
	ctrl := controller.New(events.Scheduler(), rand.New(rand.NewPCG(seed, seed)),
		controller.WithListener(term),
		controller.WithThinkDelay(cfg.ThinkDelay),
	)
	term.Attach(ctrl)

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go events.Run(loopCtx)

	events.Do(func() { ctrl.Reset(cfg.Mode, cfg.Difficulty) })

	inputDone := make(chan error, 1)
	go func() {
		inputDone <- term.ReadCommands(os.Stdin, events)
	}()

	select {
	case err := <-inputDone:
		if err != nil {
			slog.Error("Failed to read input", "error", err)
		}
	case <-ctx.Done():
		slog.Info("Interrupted")
	}

	cancel()
	<-events.Done()
}
