package controller

import (
	"fmt"

	"ctchen222/tictactoe/internal/bot"
	"ctchen222/tictactoe/internal/game"
)

// Mode selects who plays Second.
type Mode string

const (
	// PvP is two humans sharing the board.
	PvP Mode = "pvp"
	// PvC puts the computer on Second.
	PvC Mode = "pvc"
)

// ParseMode converts the textual form used by config and the console.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case PvP, PvC:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// State is the phase of the controller.
type State uint8

const (
	Idle State = iota
	AwaitingMove
	Terminal
)

func (s State) String() string {
	switch s {
	case AwaitingMove:
		return "awaiting_move"
	case Terminal:
		return "terminal"
	}
	return "idle"
}

// ScoreTally counts finished games for the session.
type ScoreTally struct {
	FirstWins  int
	SecondWins int
	Draws      int
}

func (t *ScoreTally) record(r game.Result) {
	switch r.Status {
	case game.Win:
		if r.Winner == game.First {
			t.FirstWins++
		} else {
			t.SecondWins++
		}
	case game.Draw:
		t.Draws++
	}
}

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	GameID     string
	Board      game.Board
	Active     game.Player
	Mode       Mode
	Difficulty bot.Difficulty
	State      State
	Result     game.Result
	Scores     ScoreTally
	// WinningLine holds the completed line when Result is a win.
	WinningLine []int
	// Thinking is set while a computer move is scheduled.
	Thinking bool
}
