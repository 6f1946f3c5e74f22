package controller

import (
	"errors"
	"fmt"
)

// ErrInvalidMove is the parent of every reason a move is rejected. Rejections
// never change state.
var ErrInvalidMove = errors.New("invalid move")

var (
	ErrNoGame       = fmt.Errorf("%w: no game started", ErrInvalidMove)
	ErrGameOver     = fmt.Errorf("%w: game already finished", ErrInvalidMove)
	ErrNotYourTurn  = fmt.Errorf("%w: not player's turn", ErrInvalidMove)
	ErrOutOfRange   = fmt.Errorf("%w: cell index out of range", ErrInvalidMove)
	ErrCellOccupied = fmt.Errorf("%w: cell already occupied", ErrInvalidMove)
)

// ErrUnknownMode is returned by ParseMode.
var ErrUnknownMode = errors.New("unknown mode")
