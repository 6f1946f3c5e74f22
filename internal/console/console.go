// Package console drives a Controller from a line-oriented terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ctchen222/tictactoe/internal/bot"
	"ctchen222/tictactoe/internal/controller"
	"ctchen222/tictactoe/internal/game"

	"github.com/muesli/termenv"
)

// Poster runs a function on the goroutine that owns the controller and waits
// for it. *loop.Loop satisfies it.
type Poster interface {
	Do(f func()) bool
}

// Console renders controller events and turns typed commands into controller
// calls. Every method must run on the controller's goroutine.
type Console struct {
	out  *termenv.Output
	ctrl *controller.Controller
}

// New writes to w. Pass termenv.WithProfile to force a color profile.
func New(w io.Writer, opts ...termenv.OutputOption) *Console {
	return &Console{out: termenv.NewOutput(w, opts...)}
}

// Attach sets the controller commands are sent to. The console is usually also
// the controller's Listener, so it is attached after the controller is built.
func (c *Console) Attach(ctrl *controller.Controller) {
	c.ctrl = ctrl
}

// TurnChanged implements controller.Listener.
func (c *Console) TurnChanged(p game.Player) {
	s := c.ctrl.Snapshot()
	c.printf("\n%s", c.renderBoard(s))
	if s.Mode == controller.PvC && p == game.Computer {
		c.printf("%s is thinking...\n", playerLabel(s.Mode, p))
		return
	}
	c.printf("%s to move (0-8):\n", playerLabel(s.Mode, p))
}

// GameEnded implements controller.Listener.
func (c *Console) GameEnded(r game.Result) {
	s := c.ctrl.Snapshot()
	c.printf("\n%s", c.renderBoard(s))
	c.printf("%s Type 'new' to play again.\n", renderResult(s.Mode, r))
}

// ScoreChanged implements controller.Listener.
func (c *Console) ScoreChanged(t controller.ScoreTally) {
	c.printf("%s\n", renderScores(c.ctrl.Mode(), t))
}

// Execute runs one command line. It reports true when the user asked to quit.
func (c *Console) Execute(line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	if index, err := strconv.Atoi(fields[0]); err == nil && len(fields) == 1 {
		if !c.ctrl.ApplyMove(index) {
			c.explainRejection(index)
		}
		return false
	}

	switch cmd, args := fields[0], fields[1:]; cmd {
	case "new":
		c.ctrl.NewGame()
	case "mode":
		if len(args) != 1 {
			c.printf("Usage: mode pvp|pvc\n")
			break
		}
		mode, err := controller.ParseMode(args[0])
		if err != nil {
			c.printf("%v\n", err)
			break
		}
		c.ctrl.SetMode(mode)
	case "level":
		if len(args) != 1 {
			c.printf("Usage: level easy|medium|hard\n")
			break
		}
		level, err := bot.ParseDifficulty(args[0])
		if err != nil {
			c.printf("%v\n", err)
			break
		}
		if level == c.ctrl.Difficulty() {
			c.printf("Difficulty is already %s.\n", level)
		}
		c.ctrl.SetDifficulty(level)
	case "scores":
		c.printf("%s\n", renderScores(c.ctrl.Mode(), c.ctrl.Scores()))
	case "clear":
		c.ctrl.ResetScores()
	case "board":
		c.printf("%s", c.renderBoard(c.ctrl.Snapshot()))
	case "help", "?":
		c.printf("%s", helpText)
	case "quit", "exit", "q":
		return true
	default:
		c.printf("Unknown command %q. Type 'help' for the list.\n", cmd)
	}
	return false
}

func (c *Console) explainRejection(index int) {
	s := c.ctrl.Snapshot()
	switch {
	case s.State == controller.Idle:
		c.printf("No game in progress. Type 'new'.\n")
	case s.State == controller.Terminal:
		c.printf("The game is over. Type 'new' to play again.\n")
	case s.Mode == controller.PvC && s.Active == game.Computer:
		c.printf("Wait for the computer to move.\n")
	case !game.InRange(index):
		c.printf("Cells are numbered 0 to 8.\n")
	default:
		c.printf("Cell %d is already taken.\n", index)
	}
}

// ReadCommands feeds each line of in to Execute through p until the input
// ends, the user quits or p stops accepting work.
func (c *Console) ReadCommands(in io.Reader, p Poster) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		var quit bool
		if !p.Do(func() { quit = c.Execute(line) }) {
			return nil
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
