package scheduler

import (
	"sync"
	"sync/atomic"
	"time"
)

// loopQueueSize bounds how many callbacks may wait for the loop goroutine.
// Timer goroutines block when it is full, which only delays ticks.
const loopQueueSize = 64

// Loop is the production Runtime. Timer goroutines only post work; the
// callbacks themselves always execute on the loop goroutine.
type Loop struct {
	tasks     chan func()
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewLoop starts a loop goroutine
func NewLoop() *Loop {
	l := &Loop{
		tasks: make(chan func(), loopQueueSize),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.quit:
			return
		case fn := <-l.tasks:
			select {
			case <-l.quit:
				return
			default:
				fn()
			}
		}
	}
}

func (l *Loop) post(fn func()) bool {
	select {
	case <-l.quit:
		return false
	default:
	}

	select {
	case <-l.quit:
		return false
	case l.tasks <- fn:
		return true
	}
}

// Do runs fn on the loop goroutine and waits for it
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})
	if !l.post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrClosed
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrClosed
	}
}

// Close stops the loop goroutine and every timer created from it
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.quit)
	})
}

type loopTimer struct {
	stopped atomic.Bool
	quit    chan struct{}
	once    sync.Once
}

func newLoopTimer() *loopTimer {
	return &loopTimer{quit: make(chan struct{})}
}

func (t *loopTimer) Stop() {
	t.stopped.Store(true)
	t.once.Do(func() {
		close(t.quit)
	})
}

// Every posts fn to the loop once per interval until stopped
func (l *Loop) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		panic("scheduler: non-positive interval")
	}

	t := newLoopTimer()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.quit:
				return
			case <-l.quit:
				return
			case <-ticker.C:
				l.post(func() {
					if !t.stopped.Load() {
						fn()
					}
				})
			}
		}
	}()
	return t
}

// After posts fn to the loop once, after delay, unless stopped first
func (l *Loop) After(delay time.Duration, fn func()) Timer {
	t := newLoopTimer()
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-t.quit:
		case <-l.quit:
		case <-timer.C:
			l.post(func() {
				if t.stopped.CompareAndSwap(false, true) {
					fn()
				}
			})
		}
	}()
	return t
}
