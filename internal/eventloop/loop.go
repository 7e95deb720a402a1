// Package eventloop runs callbacks one at a time on a single goroutine.
//
// Widgets are not safe for concurrent use. Each mounted widget lives on its
// own Loop, and every timer it schedules through Loop.Scheduler is delivered
// back onto that loop, so widget state is only ever touched by one goroutine.
package eventloop

import (
	"context"
	"sync"
	"time"

	"github.com/Zachkp/folio/internal/clock"
)

const queueSize = 64

// Loop is a cooperative, single-goroutine executor.
type Loop struct {
	queue chan func()
	done  chan struct{}

	mu      sync.Mutex
	stopped bool
	base    clock.Scheduler
}

// New returns a Loop whose timers are backed by the real clock.
func New() *Loop {
	return NewWithScheduler(clock.Real())
}

// NewWithScheduler returns a Loop whose timers are backed by base. base
// callbacks may run on any goroutine; they are forwarded onto the loop.
func NewWithScheduler(base clock.Scheduler) *Loop {
	return &Loop{
		queue: make(chan func(), queueSize),
		done:  make(chan struct{}),
		base:  base,
	}
}

// Run executes posted funcs until ctx is cancelled or Stop has run.
func (l *Loop) Run(ctx context.Context) {
	defer l.markStopped()
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Post enqueues fn. It reports false when the loop no longer accepts work.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()
	if stopped {
		return false
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Stop runs final on the loop and then ends Run. Work posted after Stop is
// dropped.
func (l *Loop) Stop(final func()) {
	l.Post(func() {
		if final != nil {
			final()
		}
		l.markStopped()
	})
}

// Done is closed once the loop has stopped accepting work.
func (l *Loop) Done() <-chan struct{} { return l.done }

func (l *Loop) markStopped() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	close(l.done)
}

// Scheduler returns a clock.Scheduler whose callbacks execute on the loop.
// AfterFunc and Stop must be called from the loop goroutine.
func (l *Loop) Scheduler() clock.Scheduler { return loopScheduler{l} }

type loopScheduler struct{ l *Loop }

type loopTimer struct {
	inner   clock.Timer
	fired   bool
	stopped bool
}

func (s loopScheduler) AfterFunc(d time.Duration, f func()) clock.Timer {
	t := &loopTimer{}
	t.inner = s.l.base.AfterFunc(d, func() {
		s.l.Post(func() {
			// a Stop on the loop may have raced the wall-clock delivery
			if t.stopped {
				return
			}
			t.fired = true
			f()
		})
	})
	return t
}

func (t *loopTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.inner.Stop()
	return true
}
