package scheduler

import "time"

// Manual is a deterministic Runtime. Time only moves when Advance is
// called, and due callbacks fire synchronously in time order; timers due at
// the same instant fire in creation order. It is not safe for concurrent use.
type Manual struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
	closed bool
}

type manualTimer struct {
	due      time.Duration
	interval time.Duration
	seq      int
	fn       func()
	stopped  bool
}

func (t *manualTimer) Stop() {
	t.stopped = true
}

// NewManual creates a manual runtime at time zero
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the elapsed virtual time
func (m *Manual) Now() time.Duration {
	return m.now
}

// Every schedules fn once per interval
func (m *Manual) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		panic("scheduler: non-positive interval")
	}
	return m.add(interval, interval, fn)
}

// After schedules fn once
func (m *Manual) After(delay time.Duration, fn func()) Timer {
	if delay < 0 {
		delay = 0
	}
	return m.add(delay, 0, fn)
}

func (m *Manual) add(delay, interval time.Duration, fn func()) *manualTimer {
	m.seq++
	t := &manualTimer{
		due:      m.now + delay,
		interval: interval,
		seq:      m.seq,
		fn:       fn,
		stopped:  m.closed,
	}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves virtual time forward by d, firing everything that falls due
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		m.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			t.stopped = true
		}
		t.fn()
	}
	m.now = target
	m.compact()
}

func (m *Manual) next(limit time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.stopped || t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *Manual) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.timers); i++ {
		m.timers[i] = nil
	}
	m.timers = live
}

// Pending returns the number of timers that can still fire
func (m *Manual) Pending() int {
	count := 0
	for _, t := range m.timers {
		if !t.stopped {
			count++
		}
	}
	return count
}

// Do runs fn inline
func (m *Manual) Do(fn func()) error {
	if m.closed {
		return ErrClosed
	}
	fn()
	return nil
}

// Close stops every timer
func (m *Manual) Close() {
	m.closed = true
	for _, t := range m.timers {
		t.stopped = true
	}
}
