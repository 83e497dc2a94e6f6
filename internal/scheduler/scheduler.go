// Package scheduler drives game state forward on timers.
//
// A Runtime executes every timer callback and every Do closure on a single
// goroutine, one at a time, so game machines never need their own locking.
package scheduler

import (
	"errors"
	"time"
)

// ErrClosed is returned by Do once the runtime has been closed
var ErrClosed = errors.New("scheduler closed")

// Timer is a scheduled callback. Stop is idempotent and once it returns the
// callback will not run again.
type Timer interface {
	Stop()
}

// Scheduler creates periodic and one-shot timers
type Scheduler interface {
	Every(interval time.Duration, fn func()) Timer
	After(delay time.Duration, fn func()) Timer
}

// Runtime is a Scheduler that also serialises outside work onto its
// callback goroutine
type Runtime interface {
	Scheduler
	// Do runs fn on the runtime goroutine and waits for it to finish.
	// It must not be called from inside a callback.
	Do(fn func()) error
	// Close stops every timer. Pending callbacks are dropped.
	Close()
}
