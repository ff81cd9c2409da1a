package tick

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Scheduler is a fixed-timestep lag accumulator: it gates a peer's work loop
// to a stable rate independent of jitter within a single tick's work. A
// plain sleep between ticks would drift under variable work; the
// accumulator carries the remainder forward instead.
type Scheduler struct {
	clock     clockwork.Clock
	msPerTick time.Duration
	lag       time.Duration
	lastCheck time.Time
}

// NewScheduler builds a Scheduler ticking at tps ticks per second. A nil
// clock defaults to the real clock.
func NewScheduler(tps float32, clock clockwork.Clock) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		clock:     clock,
		msPerTick: time.Duration(1000.0/tps) * time.Millisecond,
		lastCheck: clock.Now(),
	}
}

// Due advances the internal lag accumulator by the elapsed clock time and
// reports how many ticks to run now: 1 if the lag has reached msPerTick
// (which is then subtracted once), otherwise 0. Lag beyond one tick carries
// over to later calls, and Sleep does not wait while it does. Callers drive
// their peer's tick() exactly that many times.
func (s *Scheduler) Due() int {
	now := s.clock.Now()
	s.lag += now.Sub(s.lastCheck)
	s.lastCheck = now

	if s.lag >= s.msPerTick {
		s.lag -= s.msPerTick
		return 1
	}
	return 0
}

// Sleep blocks the caller until the next tick is due, or returns
// immediately if one already is. It exists for production loops driven by
// the real clock; tests should drive Due directly against a fake clock.
func (s *Scheduler) Sleep() {
	now := s.clock.Now()
	elapsed := now.Sub(s.lastCheck) + s.lag
	if elapsed >= s.msPerTick {
		return
	}
	s.clock.Sleep(s.msPerTick - elapsed)
}

// MsPerTick returns the configured tick interval.
func (s *Scheduler) MsPerTick() time.Duration { return s.msPerTick }
