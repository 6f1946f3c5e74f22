// Package loop runs tasks one at a time on a single goroutine.
//
// The controller is not safe for concurrent use, so everything that touches it
// (console input, deferred computer moves) is funnelled through a Loop.
package loop

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"ctchen222/tictactoe/internal/controller"
)

// Loop serialises tasks onto the goroutine that calls Run.
type Loop struct {
	tasks chan func()
	done  chan struct{}
}

// New returns a loop whose queue holds up to buffer tasks before Post blocks.
func New(buffer int) *Loop {
	return &Loop{
		tasks: make(chan func(), max(buffer, 0)),
		done:  make(chan struct{}),
	}
}

// Run executes posted tasks until ctx is cancelled. Tasks still queued when
// ctx ends are dropped.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			slog.Debug("Loop stopping", "error", ctx.Err())
			return
		case task := <-l.tasks:
			task()
		}
	}
}

// Post queues f. It reports false if the loop has stopped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- f:
		return true
	case <-l.done:
		return false
	}
}

// Do runs f on the loop and waits for it to return.
func (l *Loop) Do(f func()) bool {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		f()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Timer is a task that runs on the loop after a delay.
type Timer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

// Stop prevents the task from running. The check happens on the loop
// goroutine, so a task already queued when Stop is called is still skipped.
// It reports whether the call stopped the task.
func (t *Timer) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	t.timer.Stop()
	return true
}

// AfterFunc runs f on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, f func()) *Timer {
	t := &Timer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.CompareAndSwap(false, true) {
				f()
			}
		})
	})
	return t
}

// Scheduler adapts the loop to controller.Scheduler.
func (l *Loop) Scheduler() controller.Scheduler {
	return controller.SchedulerFunc(func(d time.Duration, f func()) controller.Timer {
		return l.AfterFunc(d, f)
	})
}
