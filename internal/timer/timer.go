// Package timer provides the per-question countdown.
package timer

import (
	"sync"
	"time"
)

// DefaultUnits is the default countdown length in whole units.
const DefaultUnits = 20

// Timer counts down whole units and reports each decrement.
//
// A Timer created by New ticks on its own from a time.Ticker. A Timer created
// by NewManual only ticks when Tick is called, which lets an event loop (or a
// test) own the clock.
//
// Callbacks run on the ticking goroutine and never while the Timer's lock is
// held, so they may call back into Start or Stop.
type Timer struct {
	unit time.Duration

	mu        sync.Mutex
	gen       uint64
	running   bool
	remaining int
	onTick    func(remaining int)
	onExpire  func()
	done      chan struct{}
}

// New returns a Timer that decrements once per unit of wall-clock time.
func New(unit time.Duration) *Timer {
	return &Timer{unit: unit}
}

// NewManual returns a Timer that decrements only when Tick is called.
func NewManual() *Timer {
	return &Timer{}
}

// Start begins a countdown of units, stopping any countdown already running.
// onTick receives the remaining count after every decrement; onExpire runs
// exactly once when the count reaches zero. Either callback may be nil.
func (t *Timer) Start(units int, onTick func(remaining int), onExpire func()) {
	if units < 1 {
		units = 1
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.gen++
	t.running = true
	t.remaining = units
	t.onTick = onTick
	t.onExpire = onExpire

	if t.unit > 0 {
		done := make(chan struct{})
		t.done = done
		go t.run(t.gen, done)
	}
}

// Stop cancels the running countdown. It is safe to call when idle and
// calling it more than once has no further effect.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Tick advances the current countdown by one unit.
// It does nothing when no countdown is running.
func (t *Timer) Tick() {
	t.mu.Lock()
	gen := t.gen
	t.mu.Unlock()
	t.tick(gen)
}

// Remaining returns the units left on the current countdown, or 0 when idle.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return 0
	}
	return t.remaining
}

// Running reports whether a countdown is in progress.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Timer) stopLocked() {
	if !t.running {
		return
	}
	t.running = false
	t.gen++
	t.onTick = nil
	t.onExpire = nil
	if t.done != nil {
		close(t.done)
		t.done = nil
	}
}

// tick decrements the countdown started as generation gen. It reports
// whether that countdown is still running afterwards.
func (t *Timer) tick(gen uint64) bool {
	t.mu.Lock()
	if !t.running || t.gen != gen {
		t.mu.Unlock()
		return false
	}

	t.remaining--
	remaining := t.remaining
	onTick := t.onTick
	var onExpire func()
	if remaining <= 0 {
		onExpire = t.onExpire
		t.stopLocked()
	}
	t.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	if onExpire != nil {
		onExpire()
	}
	return remaining > 0
}

func (t *Timer) run(gen uint64, done <-chan struct{}) {
	ticker := time.NewTicker(t.unit)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if !t.tick(gen) {
				return
			}
		}
	}
}
