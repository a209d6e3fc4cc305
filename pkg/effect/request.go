package effect

import (
	"image/color"
	"math"

	"github.com/opd-ai/go-gunship/pkg/physics"
)

// MinLifetime is the floor applied to sampled lifetimes
const MinLifetime = 0.1

// Kind identifies which emitter produced a request
type Kind int

const (
	KindThruster Kind = iota
	KindTrail
	KindAimLine
)

// String returns the kind's name
func (k Kind) String() string {
	switch k {
	case KindThruster:
		return "thruster"
	case KindTrail:
		return "trail"
	case KindAimLine:
		return "aim_line"
	default:
		return "unknown"
	}
}

// Pose is where an effect starts and which way it is pushed.
// Facing is a heading in degrees (0 faces +Y).
type Pose struct {
	Position physics.Vector2D
	Facing   float64
}

// SpawnRequest describes one visual effect instance. It is built once,
// handed to the renderer and never modified.
type SpawnRequest struct {
	Kind      Kind
	Position  physics.Vector2D
	Direction physics.Vector2D // unit vector
	Speed     float64
	Color     color.NRGBA
	Size      float64
	Lifetime  float64
	Fade      bool
}

// Velocity returns the initial velocity of the effect
func (r SpawnRequest) Velocity() physics.Vector2D {
	return r.Direction.Scale(r.Speed)
}

// Profile is the sampling recipe for one family of effects
type Profile struct {
	Kind              Kind
	SpreadAngle       float64 // degrees, full cone width
	Speed             float64
	SpeedVariation    float64 // fraction of Speed, 0.5 means +/-50%
	SizeMin           float64
	SizeMax           float64
	Lifetime          float64
	LifetimeVariation float64 // seconds, symmetric
	PositionJitter    float64 // radius of the random spawn disc
	Color             color.NRGBA
	Fade              bool
}

// Build samples one request at pose. Each call draws fresh samples from rnd;
// ranges of zero width are taken as-is without touching rnd.
func (p Profile) Build(pose Pose, rnd RandomSource) SpawnRequest {
	angle := sample(rnd, -p.SpreadAngle/2, p.SpreadAngle/2)
	speed := sample(rnd, p.Speed*(1-p.SpeedVariation), p.Speed*(1+p.SpeedVariation))
	size := sample(rnd, p.SizeMin, p.SizeMax)
	lifetime := math.Max(MinLifetime, p.Lifetime+sample(rnd, -p.LifetimeVariation, p.LifetimeVariation))

	return SpawnRequest{
		Kind:      p.Kind,
		Position:  pose.Position.Add(jitter(rnd, p.PositionJitter)),
		Direction: physics.Facing(pose.Facing + angle),
		Speed:     speed,
		Color:     p.Color,
		Size:      size,
		Lifetime:  lifetime,
		Fade:      p.Fade,
	}
}

func sample(rnd RandomSource, lo, hi float64) float64 {
	if lo == hi || rnd == nil {
		return lo
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return rnd.Next(lo, hi)
}

// jitter returns a uniform point inside a disc of the given radius
func jitter(rnd RandomSource, radius float64) physics.Vector2D {
	if radius <= 0 || rnd == nil {
		return physics.Vector2D{}
	}
	r := radius * math.Sqrt(rnd.Next(0, 1))
	theta := rnd.Next(0, 2*math.Pi)
	return physics.FromAngle(theta, r)
}
