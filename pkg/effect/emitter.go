// Package effect holds the timing and sampling rules shared by every
// visual effect in the game: the rate-limited emitter that decides when to
// spawn, the spawn request that describes what to spawn, and the lifetime
// that decides when a spawned effect goes away.
package effect

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRate is returned when an emitter is configured with a
// non-positive emission rate.
var ErrInvalidRate = errors.New("emission rate must be positive")

// Emitter decides once per tick whether an effect is due.
//
// At most one emission is signaled per tick. When a tick spans several
// periods the surplus is discarded and the accumulator restarts at zero, so
// a stalled frame never produces a burst.
type Emitter struct {
	period      float64
	accumulated float64
}

// NewEmitter creates an emitter that fires ratePerSecond times per second
func NewEmitter(ratePerSecond float64) (*Emitter, error) {
	if ratePerSecond <= 0 || math.IsNaN(ratePerSecond) || math.IsInf(ratePerSecond, 0) {
		return nil, fmt.Errorf("emitter: %w, got %v", ErrInvalidRate, ratePerSecond)
	}
	return &Emitter{period: 1 / ratePerSecond}, nil
}

// Tick adds dt to the accumulator and reports whether to emit now
func (e *Emitter) Tick(dt float64) bool {
	if dt > 0 {
		e.accumulated += dt
	}
	if e.accumulated >= e.period {
		e.accumulated = 0
		return true
	}
	return false
}

// Reset discards any accumulated time
func (e *Emitter) Reset() {
	e.accumulated = 0
}

// Period returns the time between emissions in seconds
func (e *Emitter) Period() float64 {
	return e.period
}

// Accumulated returns the time gathered toward the next emission
func (e *Emitter) Accumulated() float64 {
	return e.accumulated
}

// Clone returns a fresh emitter with the same period and an empty accumulator
func (e *Emitter) Clone() *Emitter {
	return &Emitter{period: e.period}
}
