package bot

import (
	"errors"
	"fmt"

	"ctchen222/tictactoe/internal/game"
)

// Difficulty selects how the computer picks its moves.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ErrNoEmptyCell is the panic value (wrapped) when a move is requested on a
// board with nowhere left to play. Callers must gate on the game result.
var ErrNoEmptyCell = errors.New("bot: no empty cell to select")

// ErrUnknownDifficulty is returned by ParseDifficulty.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty converts the textual form used by config and the console.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Rand is the source of randomness used by the policy. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// SelectMove picks the cell me plays on b:
//   - Easy: uniformly among empty cells.
//   - Medium: one Float64 draw; below 0.5 it plays BestMove, otherwise a
//     second draw picks a uniform empty cell.
//   - Hard: BestMove.
//
// Unknown difficulties play as Hard. SelectMove panics if b is full.
func SelectMove(b game.Board, me game.Player, d Difficulty, rng Rand) int {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		panic(fmt.Errorf("%w (difficulty %s)", ErrNoEmptyCell, d))
	}

	switch d {
	case Easy:
		return randomMove(empty, rng)
	case Medium:
		if rng.Float64() < 0.5 {
			return BestMove(b, me)
		}
		return randomMove(empty, rng)
	default:
		return BestMove(b, me)
	}
}

func randomMove(empty []int, rng Rand) int {
	return empty[rng.IntN(len(empty))]
}
