package controller

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"ctchen222/tictactoe/internal/bot"
	"ctchen222/tictactoe/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeTimer struct {
	delay   time.Duration
	task    func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeScheduler queues tasks until the test fires them.
type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{delay: d, task: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) outstanding() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fireNext runs the oldest outstanding task.
func (s *fakeScheduler) fireNext(t *testing.T) {
	t.Helper()
	pending := s.outstanding()
	require.NotEmpty(t, pending, "no task scheduled")
	pending[0].fired = true
	pending[0].task()
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *fakeScheduler) {
	t.Helper()
	sched := &fakeScheduler{}
	rng := rand.New(rand.NewPCG(1, 2))
	return New(sched, rng, opts...), sched
}

func play(t *testing.T, c *Controller, moves ...int) {
	t.Helper()
	for _, m := range moves {
		require.NoError(t, c.Move(m, c.Active()), "move %d", m)
	}
}

func TestMoveBeforeReset(t *testing.T) {
	c, _ := newTestController(t)
	assert.Equal(t, Idle, c.State())

	err := c.Move(0, game.First)
	assert.ErrorIs(t, err, ErrNoGame)
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.False(t, c.ApplyMove(0))
	assert.Equal(t, game.Board{}, c.Board())
}

func TestResetStartsGame(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := NewMockListener(ctrl)
	listener.EXPECT().TurnChanged(game.First).Times(2)

	c, _ := newTestController(t, WithListener(listener))
	c.Reset(PvP, bot.Easy)

	snap := c.Snapshot()
	assert.Equal(t, AwaitingMove, snap.State)
	assert.Equal(t, game.First, snap.Active)
	assert.Equal(t, game.InProgress, snap.Result.Status)
	assert.Equal(t, PvP, snap.Mode)
	assert.Equal(t, bot.Easy, snap.Difficulty)
	assert.NotEmpty(t, snap.GameID)

	first := snap.GameID
	c.NewGame()
	assert.NotEqual(t, first, c.Snapshot().GameID)
}

func TestWinInPvP(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := NewMockListener(ctrl)
	listener.EXPECT().TurnChanged(gomock.Any()).AnyTimes()
	gomock.InOrder(
		listener.EXPECT().GameEnded(game.Won(game.First)),
		listener.EXPECT().ScoreChanged(ScoreTally{FirstWins: 1}),
	)

	c, sched := newTestController(t, WithListener(listener))
	c.Reset(PvP, bot.Hard)

	// X X .
	// O O .
	// . . .
	play(t, c, 0, 3, 1, 4)
	require.True(t, c.ApplyMove(2))

	assert.Equal(t, game.Won(game.First), c.Result())
	assert.Equal(t, Terminal, c.State())
	assert.Equal(t, ScoreTally{FirstWins: 1}, c.Scores())
	assert.Equal(t, []int{0, 1, 2}, c.Snapshot().WinningLine)
	assert.Empty(t, sched.timers, "PvP never schedules the computer")

	err := c.Move(5, c.Active())
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestDrawInPvP(t *testing.T) {
	c, _ := newTestController(t)
	c.Reset(PvP, bot.Hard)

	// X O X
	// X O O
	// O X X
	play(t, c, 0, 1, 2, 4, 3, 5, 7, 6, 8)

	assert.Equal(t, game.Drawn(), c.Result())
	assert.Equal(t, ScoreTally{Draws: 1}, c.Scores())
	assert.Nil(t, c.Snapshot().WinningLine)
}

func TestRejectedMovesLeaveStateUnchanged(t *testing.T) {
	c, _ := newTestController(t)
	c.Reset(PvP, bot.Hard)
	play(t, c, 4)

	before := c.Snapshot()
	tests := []struct {
		name  string
		index int
		by    game.Player
		want  error
	}{
		{name: "Occupied cell", index: 4, by: game.Second, want: ErrCellOccupied},
		{name: "Wrong player", index: 0, by: game.First, want: ErrNotYourTurn},
		{name: "Index below range", index: -1, by: game.Second, want: ErrOutOfRange},
		{name: "Index above range", index: 9, by: game.Second, want: ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Move(tt.index, tt.by)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidMove)
			assert.Equal(t, before, c.Snapshot())
		})
	}

	assert.False(t, c.ApplyMove(4))
	assert.Equal(t, before, c.Snapshot())
}

func TestComputerMovesAfterDelay(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := NewMockListener(ctrl)
	selector := NewMockMoveSelector(ctrl)

	gomock.InOrder(
		listener.EXPECT().TurnChanged(game.First),
		listener.EXPECT().TurnChanged(game.Second),
		selector.EXPECT().
			SelectMove(gomock.Any(), game.Board{4: game.Mark(game.First)}, bot.Medium).
			Return(0),
		listener.EXPECT().TurnChanged(game.First),
	)

	c, sched := newTestController(t,
		WithListener(listener),
		WithMoveSelector(selector),
		WithThinkDelay(250*time.Millisecond),
	)
	c.Reset(PvC, bot.Medium)
	require.True(t, c.ApplyMove(4))

	pending := sched.outstanding()
	require.Len(t, pending, 1)
	assert.Equal(t, 250*time.Millisecond, pending[0].delay)
	assert.True(t, c.Snapshot().Thinking)

	// The human cannot move for the computer.
	assert.False(t, c.ApplyMove(0))
	assert.ErrorIs(t, c.Move(0, game.First), ErrNotYourTurn)

	sched.fireNext(t)

	b := c.Board()
	assert.Equal(t, game.Mark(game.Second), b[0])
	assert.Equal(t, game.First, c.Active())
	assert.False(t, c.Snapshot().Thinking)
	assert.Empty(t, sched.outstanding())
}

func TestResetCancelsPendingComputerMove(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No SelectMove expectation: any call fails the test.
	selector := NewMockMoveSelector(ctrl)

	c, sched := newTestController(t, WithMoveSelector(selector))
	c.Reset(PvC, bot.Hard)
	require.True(t, c.ApplyMove(4))
	require.Len(t, sched.outstanding(), 1)
	stale := sched.timers[0]

	c.Reset(PvC, bot.Hard)
	assert.True(t, stale.stopped)
	assert.Empty(t, sched.outstanding())

	// Even if the timer had already fired, the task must see it is stale.
	stale.task()
	assert.Equal(t, game.Board{}, c.Board())
	assert.Equal(t, game.First, c.Active())
	assert.Equal(t, AwaitingMove, c.State())
}

func TestSetDifficulty(t *testing.T) {
	c, sched := newTestController(t)
	c.Reset(PvC, bot.Hard)
	require.True(t, c.ApplyMove(4))
	id := c.Snapshot().GameID

	c.SetDifficulty(bot.Hard)
	assert.Equal(t, id, c.Snapshot().GameID, "same tier keeps the game")
	assert.Len(t, sched.outstanding(), 1)

	c.SetDifficulty(bot.Easy)
	assert.NotEqual(t, id, c.Snapshot().GameID)
	assert.Equal(t, bot.Easy, c.Difficulty())
	assert.Equal(t, game.Board{}, c.Board())
	assert.Empty(t, sched.outstanding())
}

func TestSetModeAndResetScores(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := NewMockListener(ctrl)
	listener.EXPECT().TurnChanged(gomock.Any()).AnyTimes()
	listener.EXPECT().GameEnded(gomock.Any()).AnyTimes()
	listener.EXPECT().ScoreChanged(ScoreTally{FirstWins: 1})
	listener.EXPECT().ScoreChanged(ScoreTally{}).Times(2)

	c, _ := newTestController(t, WithListener(listener))
	c.Reset(PvP, bot.Hard)
	play(t, c, 0, 3, 1, 4, 2)
	require.Equal(t, ScoreTally{FirstWins: 1}, c.Scores())

	c.NewGame()
	assert.Equal(t, ScoreTally{FirstWins: 1}, c.Scores(), "reset keeps the tally")

	c.ResetScores()
	assert.Equal(t, ScoreTally{}, c.Scores())

	c.SetMode(PvC)
	assert.Equal(t, PvC, c.Mode())
	assert.Equal(t, AwaitingMove, c.State())
}

func TestHardComputerNeverLoses(t *testing.T) {
	strategies := map[string]func(b game.Board) int{
		"lowest empty cell": func(b game.Board) int { return b.EmptyCells()[0] },
		"highest empty cell": func(b game.Board) int {
			e := b.EmptyCells()
			return e[len(e)-1]
		},
		"centre first": func(b game.Board) int {
			if b[4] == game.Empty {
				return 4
			}
			return b.EmptyCells()[0]
		},
	}

	for name, next := range strategies {
		t.Run(name, func(t *testing.T) {
			c, sched := newTestController(t)
			c.Reset(PvC, bot.Hard)
			for c.State() == AwaitingMove {
				require.True(t, c.ApplyMove(next(c.Board())))
				if c.State() == AwaitingMove {
					sched.fireNext(t)
				}
			}
			assert.NotEqual(t, game.Won(game.Human), c.Result())
			assert.Empty(t, sched.outstanding())
		})
	}
}

func TestComputerWinIsScored(t *testing.T) {
	ctrl := gomock.NewController(t)
	selector := NewMockMoveSelector(ctrl)
	selector.EXPECT().SelectMove(gomock.Any(), gomock.Any(), bot.Easy).Return(3)
	selector.EXPECT().SelectMove(gomock.Any(), gomock.Any(), bot.Easy).Return(4)
	selector.EXPECT().SelectMove(gomock.Any(), gomock.Any(), bot.Easy).DoAndReturn(
		func(_ context.Context, b game.Board, _ bot.Difficulty) int {
			require.Equal(t, game.Empty, b[5])
			return 5
		})

	c, sched := newTestController(t, WithMoveSelector(selector))
	c.Reset(PvC, bot.Easy)
	for _, human := range []int{0, 1, 8} {
		require.True(t, c.ApplyMove(human))
		sched.fireNext(t)
	}

	assert.Equal(t, game.Won(game.Computer), c.Result())
	assert.Equal(t, ScoreTally{SecondWins: 1}, c.Scores())
	assert.Equal(t, []int{3, 4, 5}, c.Snapshot().WinningLine)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("pvc")
	require.NoError(t, err)
	assert.Equal(t, PvC, m)

	_, err = ParseMode("online")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestSchedulerFunc(t *testing.T) {
	var got time.Duration
	s := SchedulerFunc(func(d time.Duration, f func()) Timer {
		got = d
		return &fakeTimer{delay: d, task: f}
	})
	tm := s.AfterFunc(time.Second, func() {})
	assert.Equal(t, time.Second, got)
	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
}
