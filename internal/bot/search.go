package bot

import (
	"math"

	"ctchen222/tictactoe/internal/game"
)

// Terminal scores, seen from the maximizing side. They do not depend on depth.
const (
	WinScore  = 10
	LossScore = -10
	DrawScore = 0
)

// scratch is the one board mutated while a search runs. Every placement made
// through try is undone before try returns.
type scratch struct {
	board game.Board
}

// try marks index for p, evaluates fn and clears the cell again on every exit
// path, including panics.
func (s *scratch) try(index int, p game.Player, fn func() int) int {
	s.board[index] = game.Mark(p)
	defer func() { s.board[index] = game.Empty }()
	return fn()
}

func (s *scratch) search(toMove, me game.Player) int {
	switch {
	case game.HasWon(&s.board, me):
		return WinScore
	case game.HasWon(&s.board, me.Opponent()):
		return LossScore
	case game.IsFull(&s.board):
		return DrawScore
	}

	next := toMove.Opponent()
	eval := func() int { return s.search(next, me) }

	if toMove == me {
		best := math.MinInt
		for i := 0; i < game.Size; i++ {
			if s.board[i] != game.Empty {
				continue
			}
			best = max(best, s.try(i, toMove, eval))
		}
		return best
	}

	best := math.MaxInt
	for i := 0; i < game.Size; i++ {
		if s.board[i] != game.Empty {
			continue
		}
		best = min(best, s.try(i, toMove, eval))
	}
	return best
}

// Search returns the minimax value of b with toMove to play, scored for me
// (the maximizer). The search is exhaustive and b is left untouched.
func Search(b *game.Board, toMove, me game.Player) int {
	s := scratch{board: *b}
	return s.search(toMove, me)
}

// BestMove returns the empty cell with the highest Search value for me.
// Cells are tried in ascending order and only a strictly greater score
// replaces the current choice, so ties resolve to the lowest index.
// It returns -1 when the board has no empty cell.
func BestMove(b game.Board, me game.Player) int {
	s := scratch{board: b}
	opp := me.Opponent()
	eval := func() int { return s.search(opp, me) }

	bestScore, move := math.MinInt, -1
	for i := 0; i < game.Size; i++ {
		if s.board[i] != game.Empty {
			continue
		}
		if score := s.try(i, me, eval); score > bestScore {
			bestScore, move = score, i
		}
	}
	return move
}
