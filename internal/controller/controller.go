package controller

import (
	"context"
	"log/slog"
	"time"

	"ctchen222/tictactoe/internal/bot"
	"ctchen222/tictactoe/internal/game"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultThinkDelay is how long the computer waits before moving.
const DefaultThinkDelay = 500 * time.Millisecond

var tracer = otel.Tracer("controller")

// Controller owns one board, the turn order, the score tally and the
// computer's deferred move. It is not safe for concurrent use: every method
// and every scheduled task must run on the same goroutine.
type Controller struct {
	sched    Scheduler
	selector MoveSelector
	listener Listener
	delay    time.Duration
	metrics  instruments

	gameID string
	board  game.Board
	active game.Player
	mode   Mode
	level  bot.Difficulty
	result game.Result
	state  State
	scores ScoreTally

	// pending is the outstanding computer move, nil when none is scheduled.
	// generation changes on every reset so a task that escaped Stop can
	// recognise it belongs to an older game.
	pending    Timer
	generation uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithListener registers the receiver of state change notifications.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		if l != nil {
			c.listener = l
		}
	}
}

// WithThinkDelay overrides DefaultThinkDelay.
func WithThinkDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

// WithMoveSelector replaces the computer opponent built from the random source.
func WithMoveSelector(s MoveSelector) Option {
	return func(c *Controller) {
		if s != nil {
			c.selector = s
		}
	}
}

// New creates an idle controller. rng drives the Easy and Medium tiers and
// sched runs the computer's deferred moves.
func New(sched Scheduler, rng bot.Rand, opts ...Option) *Controller {
	c := &Controller{
		sched:    sched,
		selector: bot.NewOpponent(game.Computer, rng),
		listener: nopListener{},
		delay:    DefaultThinkDelay,
		metrics:  newInstruments(),
		mode:     PvP,
		level:    bot.Hard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset cancels any scheduled computer move and starts a new game with First
// to move. The score tally is kept.
func (c *Controller) Reset(mode Mode, level bot.Difficulty) {
	c.cancelPending()
	c.generation++

	c.gameID = uuid.NewString()
	c.board = game.Board{}
	c.mode = mode
	c.level = level
	c.active = game.First
	c.result = game.Result{Status: game.InProgress}
	c.state = AwaitingMove

	slog.Info("New game", "game.id", c.gameID, "game.mode", mode, "bot.difficulty", level)
	c.listener.TurnChanged(c.active)
}

// NewGame resets with the current mode and difficulty.
func (c *Controller) NewGame() {
	c.Reset(c.mode, c.level)
}

// SetDifficulty switches the computer's tier. A different tier always
// restarts the game.
func (c *Controller) SetDifficulty(level bot.Difficulty) {
	if level == c.level && c.state != Idle {
		return
	}
	c.Reset(c.mode, level)
}

// SetMode switches between PvP and PvC, clearing the tally and the board.
func (c *Controller) SetMode(mode Mode) {
	c.mode = mode
	c.scores = ScoreTally{}
	c.listener.ScoreChanged(c.scores)
	c.Reset(mode, c.level)
}

// ResetScores zeroes the tally.
func (c *Controller) ResetScores() {
	c.scores = ScoreTally{}
	c.listener.ScoreChanged(c.scores)
}

// ApplyMove places the active human's mark at index. It reports false, with
// no state change, for any invalid move and while the computer is to move.
func (c *Controller) ApplyMove(index int) bool {
	if c.computerToMove() {
		slog.Debug("Move rejected, computer is thinking", "game.id", c.gameID, "move.index", index)
		return false
	}
	return c.Move(index, c.active) == nil
}

// Move places by's mark at index. The returned error wraps ErrInvalidMove
// when the move is rejected.
func (c *Controller) Move(index int, by game.Player) error {
	if err := c.validate(index, by); err != nil {
		slog.Debug("Move rejected", "game.id", c.gameID, "move.index", index, "player", by, "error", err)
		return err
	}

	c.board[index] = game.Mark(by)
	c.result = game.Evaluate(&c.board)
	c.metrics.moves.Add(context.Background(), 1, c.metrics.playerAttr(by))

	if c.result.Terminal() {
		c.finish()
		return nil
	}

	c.active = c.active.Opponent()
	c.listener.TurnChanged(c.active)
	if c.computerToMove() {
		c.scheduleComputerMove()
	}
	return nil
}

func (c *Controller) validate(index int, by game.Player) error {
	switch {
	case c.state == Idle:
		return ErrNoGame
	case c.result.Terminal():
		return ErrGameOver
	case by != c.active:
		return ErrNotYourTurn
	case !game.InRange(index):
		return ErrOutOfRange
	case c.board[index] != game.Empty:
		return ErrCellOccupied
	}
	return nil
}

func (c *Controller) finish() {
	c.state = Terminal
	c.scores.record(c.result)
	c.metrics.games.Add(context.Background(), 1, c.metrics.resultAttr(c.result, c.mode))

	slog.Info("Game ended", "game.id", c.gameID, "game.result", c.result.String())
	c.listener.GameEnded(c.result)
	c.listener.ScoreChanged(c.scores)
}

func (c *Controller) computerToMove() bool {
	return c.mode == PvC && c.state == AwaitingMove && c.active == game.Computer
}

func (c *Controller) scheduleComputerMove() {
	c.cancelPending()
	gen := c.generation
	c.pending = c.sched.AfterFunc(c.delay, func() {
		c.playComputerMove(gen)
	})
}

func (c *Controller) cancelPending() {
	if c.pending == nil {
		return
	}
	if c.pending.Stop() {
		slog.Debug("Cancelled pending computer move", "game.id", c.gameID)
	}
	c.pending = nil
}

func (c *Controller) playComputerMove(gen uint64) {
	if gen != c.generation || !c.computerToMove() {
		slog.Debug("Discarding stale computer move", "game.id", c.gameID)
		return
	}
	c.pending = nil

	ctx, span := tracer.Start(context.Background(), "controller.playComputerMove", trace.WithAttributes(
		attribute.String("game.id", c.gameID),
		attribute.String("bot.difficulty", string(c.level)),
	))
	defer span.End()

	index := c.selector.SelectMove(ctx, c.board, c.level)
	if err := c.Move(index, game.Computer); err != nil {
		// The selector only returns empty cells, so this is a bug in it.
		slog.ErrorContext(ctx, "Computer move rejected", "game.id", c.gameID, "move.index", index, "error", err)
		span.RecordError(err)
	}
}

// Board returns a copy of the board.
func (c *Controller) Board() game.Board { return c.board }

// Active returns the player to move.
func (c *Controller) Active() game.Player { return c.active }

// Result returns the current game result.
func (c *Controller) Result() game.Result { return c.result }

// Scores returns the session tally.
func (c *Controller) Scores() ScoreTally { return c.scores }

// State returns the controller phase.
func (c *Controller) State() State { return c.state }

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Difficulty returns the computer's tier.
func (c *Controller) Difficulty() bot.Difficulty { return c.level }

// Snapshot copies the full state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		GameID:     c.gameID,
		Board:      c.board,
		Active:     c.active,
		Mode:       c.mode,
		Difficulty: c.level,
		State:      c.state,
		Result:     c.result,
		Scores:     c.scores,
		Thinking:   c.pending != nil,
	}
	if line, ok := game.WinningLine(&c.board); ok {
		s.WinningLine = line[:]
	}
	return s
}
