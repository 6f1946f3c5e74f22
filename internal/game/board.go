package game

// Player identifies one of the two sides.
type Player uint8

const (
	// First always opens the game. In PvC mode it is the human.
	First Player = iota + 1
	// Second moves after First. In PvC mode it is the computer.
	Second
)

const (
	Human    = First
	Computer = Second
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == First {
		return Second
	}
	return First
}

// Mark returns the symbol drawn for the player.
func (p Player) Mark() string {
	switch p {
	case First:
		return "X"
	case Second:
		return "O"
	}
	return "?"
}

func (p Player) String() string {
	return p.Mark()
}

// Cell is either Empty or holds the mark of a player.
type Cell uint8

// Empty is the zero Cell.
const Empty Cell = 0

// Mark returns the cell occupied by p.
func Mark(p Player) Cell {
	return Cell(p)
}

// Owner reports which player occupies the cell.
func (c Cell) Owner() (Player, bool) {
	if c == Empty {
		return 0, false
	}
	return Player(c), true
}

func (c Cell) String() string {
	if p, ok := c.Owner(); ok {
		return p.Mark()
	}
	return " "
}

// Size is the number of cells on the board.
const Size = 9

// Board holds the nine cells in row-major order:
//
//	0 | 1 | 2
//	3 | 4 | 5
//	6 | 7 | 8
type Board [Size]Cell

// InRange reports whether index addresses a cell.
func InRange(index int) bool {
	return index >= 0 && index < Size
}

// EmptyCells returns the indices of all empty cells in ascending order.
func (b *Board) EmptyCells() []int {
	cells := make([]int, 0, Size)
	for i, c := range b {
		if c == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

// Status is the tag of a Result.
type Status uint8

const (
	InProgress Status = iota
	Win
	Draw
)

func (s Status) String() string {
	switch s {
	case Win:
		return "win"
	case Draw:
		return "draw"
	}
	return "in_progress"
}

// Result is the outcome of a position. Winner is only set when Status is Win.
type Result struct {
	Status Status
	Winner Player
}

// Won returns the result of p completing a line.
func Won(p Player) Result {
	return Result{Status: Win, Winner: p}
}

// Drawn returns the result of a full board without a line.
func Drawn() Result {
	return Result{Status: Draw}
}

// Terminal reports whether the result ends the game.
func (r Result) Terminal() bool {
	return r.Status != InProgress
}

func (r Result) String() string {
	if r.Status == Win {
		return "win:" + r.Winner.Mark()
	}
	return r.Status.String()
}
