package scheduler

import "time"

// Ticker owns at most one periodic timer. Games start it while something is
// moving and stop it on every exit path.
type Ticker struct {
	sched Scheduler
	timer Timer
	ticks int64
}

// NewTicker creates a stopped ticker on the given scheduler
func NewTicker(sched Scheduler) *Ticker {
	return &Ticker{sched: sched}
}

// Start begins calling onTick once per interval. A running timer is
// replaced.
func (t *Ticker) Start(interval time.Duration, onTick func()) {
	t.Stop()
	t.timer = t.sched.Every(interval, func() {
		t.ticks++
		onTick()
	})
}

// Stop halts the ticker. Calling it on a stopped ticker does nothing.
func (t *Ticker) Stop() {
	if t.timer == nil {
		return
	}
	t.timer.Stop()
	t.timer = nil
}

// Running reports whether a timer is active
func (t *Ticker) Running() bool {
	return t.timer != nil
}

// Ticks returns how many ticks have been delivered since creation
func (t *Ticker) Ticks() int64 {
	return t.ticks
}
