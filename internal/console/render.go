package console

import (
	"fmt"
	"strconv"
	"strings"

	"ctchen222/tictactoe/internal/controller"
	"ctchen222/tictactoe/internal/game"

	"github.com/muesli/termenv"
)

const separator = "---+---+---"

// renderBoard draws the 3x3 grid. Empty cells show their index so the player
// knows what to type; the winning line is highlighted.
func (c *Console) renderBoard(s controller.Snapshot) string {
	winning := make(map[int]bool, len(s.WinningLine))
	for _, i := range s.WinningLine {
		winning[i] = true
	}

	var sb strings.Builder
	for row := range 3 {
		if row > 0 {
			sb.WriteString(separator + "\n")
		}
		cells := make([]string, 3)
		for col := range 3 {
			i := row*3 + col
			cells[col] = " " + c.renderCell(i, s.Board[i], winning[i]) + " "
		}
		sb.WriteString(strings.Join(cells, "|") + "\n")
	}
	return sb.String()
}

func (c *Console) renderCell(i int, cell game.Cell, highlight bool) string {
	owner, ok := cell.Owner()
	if !ok {
		return c.out.String(strconv.Itoa(i)).Faint().String()
	}

	style := c.out.String(owner.Mark()).Foreground(c.markColor(owner)).Bold()
	if highlight {
		style = style.Reverse()
	}
	return style.String()
}

func (c *Console) markColor(p game.Player) termenv.Color {
	if p == game.First {
		return c.out.Color("1")
	}
	return c.out.Color("4")
}

func playerLabel(mode controller.Mode, p game.Player) string {
	if mode != controller.PvC {
		return "Player " + p.Mark()
	}
	if p == game.Computer {
		return "Computer (" + p.Mark() + ")"
	}
	return "You (" + p.Mark() + ")"
}

func renderResult(mode controller.Mode, r game.Result) string {
	switch {
	case r.Status == game.Draw:
		return "It's a draw!"
	case mode == controller.PvC && r.Winner == game.Human:
		return "You win!"
	case mode == controller.PvC:
		return "The computer wins."
	}
	return fmt.Sprintf("Player %s wins!", r.Winner.Mark())
}

func renderScores(mode controller.Mode, t controller.ScoreTally) string {
	return fmt.Sprintf("Score  %s: %d  %s: %d  Draws: %d",
		playerLabel(mode, game.First), t.FirstWins,
		playerLabel(mode, game.Second), t.SecondWins,
		t.Draws)
}

const helpText = `Commands:
  0-8                  place your mark on a cell
  new                  start a new game
  mode pvp|pvc         two players, or play the computer (resets scores)
  level easy|medium|hard
                       computer difficulty (restarts the game)
  scores               show the score
  clear                reset the score
  board                redraw the board
  help                 show this text
  quit                 leave
`
