package syncutil

import (
	"sync"
	"time"
)

type timerState int

const (
	timerIdle timerState = iota
	timerRunning
	timerFired
	timerStopped
)

// Timer calls a function once after an interval. Restart pushes the
// deadline back by a full interval while the timer is still pending.
type Timer struct {
	interval time.Duration
	fn       func()
	done     chan struct{}

	mu    sync.Mutex
	state timerState
	gen   uint64
	t     *time.Timer
}

// NewTimer creates a stopped timer. fn must be non-nil and interval positive.
func NewTimer(interval time.Duration, fn func()) (*Timer, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &Timer{interval: interval, fn: fn, done: make(chan struct{})}, nil
}

// Start arms the timer. A timer can be started once.
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != timerIdle {
		return ErrTimerStarted
	}
	t.state = timerRunning
	t.arm()
	return nil
}

// Restart resets the deadline to a full interval from now. It is a no-op
// before Start and fails with ErrTimerFinished after the timer fired or
// was stopped.
func (t *Timer) Restart() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case timerIdle:
		return nil
	case timerFired, timerStopped:
		return ErrTimerFinished
	}
	t.t.Stop()
	t.arm()
	return nil
}

// Stop cancels a pending call and reports whether it did so.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case timerFired, timerStopped:
		return false
	case timerRunning:
		t.t.Stop()
	}
	t.state = timerStopped
	close(t.done)
	return true
}

// Done is closed once the function has returned or the timer was stopped.
func (t *Timer) Done() <-chan struct{} {
	return t.done
}

// arm schedules a fire for a new generation. A callback from an older
// generation finds the counter moved on and does nothing.
func (t *Timer) arm() {
	t.gen++
	gen := t.gen
	t.t = time.AfterFunc(t.interval, func() { t.fire(gen) })
}

func (t *Timer) fire(gen uint64) {
	t.mu.Lock()
	if t.state != timerRunning || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.state = timerFired
	t.mu.Unlock()

	defer close(t.done)
	t.fn()
}
