package controller

import (
	"log/slog"

	"ctchen222/tictactoe/internal/game"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var meter = otel.Meter("controller")

type instruments struct {
	moves metric.Int64Counter
	games metric.Int64Counter
}

func newInstruments() instruments {
	moves, err := meter.Int64Counter("game.moves", metric.WithDescription("Moves applied to a board"))
	if err != nil {
		slog.Warn("Failed to create moves counter", "error", err)
		moves = noop.Int64Counter{}
	}
	games, err := meter.Int64Counter("game.finished", metric.WithDescription("Games that reached a result"))
	if err != nil {
		slog.Warn("Failed to create games counter", "error", err)
		games = noop.Int64Counter{}
	}
	return instruments{moves: moves, games: games}
}

func (instruments) playerAttr(p game.Player) metric.AddOption {
	return metric.WithAttributes(attribute.String("player.mark", p.Mark()))
}

func (instruments) resultAttr(r game.Result, mode Mode) metric.AddOption {
	return metric.WithAttributes(
		attribute.String("game.result", r.String()),
		attribute.String("game.mode", string(mode)),
	)
}
