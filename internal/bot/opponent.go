package bot

import (
	"context"
	"log/slog"
	"time"

	"ctchen222/tictactoe/internal/game"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

// Opponent is the computer player. It owns the random source used by the
// policy and reports every selection as a span and a latency sample.
type Opponent struct {
	player   game.Player
	rng      Rand
	duration metric.Float64Histogram
}

// NewOpponent creates the computer side playing as p.
func NewOpponent(p game.Player, rng Rand) *Opponent {
	duration, err := meter.Float64Histogram(
		"bot.select_move.duration",
		metric.WithDescription("Time spent choosing a computer move"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		slog.Warn("Failed to create move duration histogram", "error", err)
		duration = noop.Float64Histogram{}
	}
	return &Opponent{player: p, rng: rng, duration: duration}
}

// Player returns the side the opponent plays.
func (o *Opponent) Player() game.Player {
	return o.player
}

// SelectMove chooses the opponent's next cell on b at difficulty d.
func (o *Opponent) SelectMove(ctx context.Context, b game.Board, d Difficulty) int {
	ctx, span := tracer.Start(ctx, "bot.SelectMove", trace.WithAttributes(
		attribute.String("bot.difficulty", string(d)),
		attribute.String("bot.mark", o.player.Mark()),
		attribute.Int("board.empty", len(b.EmptyCells())),
	))
	defer span.End()

	start := time.Now()
	index := SelectMove(b, o.player, d, o.rng)
	elapsed := float64(time.Since(start).Microseconds()) / 1000

	span.SetAttributes(attribute.Int("move.index", index))
	o.duration.Record(ctx, elapsed, metric.WithAttributes(attribute.String("bot.difficulty", string(d))))
	slog.DebugContext(ctx, "Bot selected move", "bot.difficulty", d, "move.index", index, "elapsed_ms", elapsed)
	return index
}
