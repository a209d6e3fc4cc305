package effect

import "github.com/opd-ai/go-gunship/pkg/physics"

// FadeFraction is the share of an effect's lifetime spent fading out. The
// effect stays fully transparent for the remainder.
const FadeFraction = 0.7

// Lifetime counts down the seconds an effect has left
type Lifetime struct {
	Duration  float64
	Remaining float64
	Elapsed   float64
}

// NewLifetime creates a countdown of the given number of seconds
func NewLifetime(seconds float64) *Lifetime {
	return &Lifetime{Duration: seconds, Remaining: seconds}
}

// Tick advances the countdown and reports whether it has expired.
// Negative dt is ignored.
func (l *Lifetime) Tick(dt float64) bool {
	if dt < 0 {
		dt = 0
	}
	l.Remaining -= dt
	l.Elapsed += dt
	return l.Remaining <= 0
}

// Expired reports whether the countdown has run out
func (l *Lifetime) Expired() bool {
	return l.Remaining <= 0
}

// Alpha returns base scaled by the fade curve for the current elapsed time
func (l *Lifetime) Alpha(base float64) float64 {
	return base * FadeAlpha(l.Elapsed, l.Duration)
}

// FadeAlpha returns the opacity multiplier of a fading effect: 1 at spawn,
// falling linearly to 0 at FadeFraction of lifetime, then held at 0.
func FadeAlpha(elapsed, lifetime float64) float64 {
	fadeDuration := lifetime * FadeFraction
	if fadeDuration <= 0 {
		return 0
	}
	return physics.Lerp(1, 0, physics.Clamp01(elapsed/fadeDuration))
}
