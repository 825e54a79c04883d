// Package clock abstracts the time source used to stamp envelopes and
// measure step durations, so tests can substitute a deterministic clock.
package clock

import (
	"sync"
	"time"
)

// Clock supplies wall-clock readings. Implementations must be safe for
// concurrent use and must return monotonically non-decreasing readings
// per caller.
type Clock interface {
	Now() time.Time
}

// System reads the host wall clock.
type System struct{}

func NewSystem() System {
	return System{}
}

func (System) Now() time.Time {
	return time.Now()
}

// Fake is a manually controlled clock for deterministic tests.
// When created with a tick, every read moves the clock forward so that
// consecutive readings are distinguishable without explicit Advance calls.
type Fake struct {
	mu   sync.Mutex
	now  time.Time
	tick time.Duration
}

// NewFake returns a Fake frozen at start. It only moves via Advance.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// NewTicking returns a Fake that advances by tick on every Now call.
func NewTicking(start time.Time, tick time.Duration) *Fake {
	return &Fake{now: start, tick: tick}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	current := f.now
	f.now = f.now.Add(f.tick)

	return current
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
}

// Set moves the clock to an absolute instant.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = t
}
