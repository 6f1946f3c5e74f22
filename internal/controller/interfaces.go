package controller

import (
	"context"
	"time"

	"ctchen222/tictactoe/internal/bot"
	"ctchen222/tictactoe/internal/game"
)

// Listener receives state changes. Calls are made on the goroutine driving the
// controller, after the change has been applied.
type Listener interface {
	TurnChanged(p game.Player)
	GameEnded(r game.Result)
	ScoreChanged(t ScoreTally)
}

// MoveSelector picks the computer's cell for a board.
type MoveSelector interface {
	SelectMove(ctx context.Context, b game.Board, d bot.Difficulty) int
}

// Timer is a handle to a deferred task.
type Timer interface {
	// Stop prevents the task from running. It reports whether the call
	// stopped it, false if it already ran or was stopped.
	Stop() bool
}

// Scheduler runs f once after d. Tasks must run on the same goroutine that
// drives the controller.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, f func()) Timer

// AfterFunc calls fn(d, f).
func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer {
	return fn(d, f)
}

type nopListener struct{}

func (nopListener) TurnChanged(game.Player) {}
func (nopListener) GameEnded(game.Result)   {}
func (nopListener) ScoreChanged(ScoreTally) {}
