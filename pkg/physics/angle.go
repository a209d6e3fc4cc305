package physics

import "math"

// Conversion factors between degrees and radians.
const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

// WrapDegrees maps any angle onto [0, 360).
func WrapDegrees(angle float64) float64 {
	wrapped := math.Mod(angle, 360)
	if wrapped < 0 {
		wrapped += 360
	}
	// math.Mod(-1e-18, 360) + 360 rounds to 360
	if wrapped >= 360 {
		wrapped = 0
	}
	return wrapped
}

// DeltaAngle returns the signed shortest rotation in degrees that takes from
// onto to. The result lies in (-180, 180].
func DeltaAngle(from, to float64) float64 {
	delta := WrapDegrees(to - from)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Lerp interpolates between a and b by t without clamping.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpAngle moves from towards to along the shortest arc by fraction t,
// clamped to [0, 1]. The result is wrapped to [0, 360).
func LerpAngle(from, to, t float64) float64 {
	return WrapDegrees(from + DeltaAngle(from, to)*Clamp01(t))
}

// HeadingOf returns the heading whose Facing is v. The zero vector has
// heading 0.
func HeadingOf(v Vector2D) float64 {
	if v.IsZero() {
		return 0
	}
	return WrapDegrees(math.Atan2(-v.X, v.Y) * Rad2Deg)
}
