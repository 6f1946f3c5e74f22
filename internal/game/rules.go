package game

// Lines lists every triple that wins the game: rows, columns, then diagonals.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// HasWon reports whether p occupies every cell of some line.
func HasWon(b *Board, p Player) bool {
	_, ok := winningLineFor(b, p)
	return ok
}

// IsFull reports whether no cell is empty.
func IsFull(b *Board) bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Evaluate derives the result of a board. Both players are checked, First
// before Second, so the function does not depend on who moved last.
func Evaluate(b *Board) Result {
	for _, p := range [2]Player{First, Second} {
		if HasWon(b, p) {
			return Won(p)
		}
	}
	if IsFull(b) {
		return Drawn()
	}
	return Result{Status: InProgress}
}

// WinningLine returns the first completed line on the board, if any.
func WinningLine(b *Board) ([3]int, bool) {
	for _, p := range [2]Player{First, Second} {
		if line, ok := winningLineFor(b, p); ok {
			return line, true
		}
	}
	return [3]int{}, false
}

func winningLineFor(b *Board, p Player) ([3]int, bool) {
	m := Mark(p)
	for _, line := range Lines {
		if b[line[0]] == m && b[line[1]] == m && b[line[2]] == m {
			return line, true
		}
	}
	return [3]int{}, false
}
