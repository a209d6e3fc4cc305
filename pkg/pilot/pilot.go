// Package pilot flies the player ship without a human at the controls. It
// drives headless runs and demos.
package pilot

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-gunship/pkg/engine"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

// Behavior selects how the pilot flies
type Behavior int

const (
	BehaviorIdle      Behavior = iota // Sits still with the aim line up
	BehaviorExplorer                  // Cruises around in random arcs
	BehaviorAggressor                 // Hunts the nearest enemy and shoots it
)

// String returns the behavior's flag name
func (b Behavior) String() string {
	switch b {
	case BehaviorIdle:
		return "idle"
	case BehaviorExplorer:
		return "explorer"
	case BehaviorAggressor:
		return "aggressor"
	default:
		return "unknown"
	}
}

// Description explains a behavior in one line
func (b Behavior) Description() string {
	switch b {
	case BehaviorIdle:
		return "Holds position and sweeps the aim line"
	case BehaviorExplorer:
		return "Cruises in random arcs, boosting now and then"
	case BehaviorAggressor:
		return "Closes on the nearest enemy and fires at it"
	default:
		return "Unknown behavior"
	}
}

// ParseBehavior maps a flag value to a Behavior
func ParseBehavior(name string) (Behavior, error) {
	for _, b := range []Behavior{BehaviorIdle, BehaviorExplorer, BehaviorAggressor} {
		if b.String() == name {
			return b, nil
		}
	}
	return BehaviorIdle, fmt.Errorf("unknown behavior: %s", name)
}

// Tuning of the pilot's maneuvers
const (
	explorerLegDuration = 2.0  // seconds between course changes
	explorerTurnShare   = 0.25 // share of a leg spent turning
	explorerBoostChance = 0.3
	aggressorStandoff   = 4.0  // preferred distance to the target
	aggressorFireRange  = 8.0  // fires only inside this distance
	headingTolerance    = 10.0 // degrees off course before turning
	idleSweepRadius     = 3.0
	idleSweepPeriod     = 4.0
)

// Pilot turns world snapshots into control input
type Pilot struct {
	behavior Behavior
	random   *rand.Rand

	legStart float64
	turnLeft bool
	boost    bool
}

// New creates a pilot. Equal seeds fly identical courses.
func New(behavior Behavior, seed uint64) *Pilot {
	return &Pilot{
		behavior: behavior,
		random:   rand.New(rand.NewPCG(seed, uint64(behavior))),
		legStart: math.Inf(-1),
	}
}

// Behavior returns the pilot's behavior
func (p *Pilot) Behavior() Behavior {
	return p.behavior
}

// Decide returns the input for the next step
func (p *Pilot) Decide(s engine.Snapshot) engine.Input {
	switch p.behavior {
	case BehaviorExplorer:
		return p.explore(s)
	case BehaviorAggressor:
		return p.attack(s)
	default:
		return p.idle(s)
	}
}

// idle sweeps the pointer in a circle around the ship
func (p *Pilot) idle(s engine.Snapshot) engine.Input {
	angle := 2 * math.Pi * s.Now / idleSweepPeriod
	return engine.Input{
		Aim:     true,
		Pointer: s.ShipPosition.Add(physics.FromAngle(angle, idleSweepRadius)),
	}
}

// explore flies legs of explorerLegDuration, turning at the start of each
func (p *Pilot) explore(s engine.Snapshot) engine.Input {
	if s.Now-p.legStart >= explorerLegDuration {
		p.legStart = s.Now
		p.turnLeft = p.random.IntN(2) == 0
		p.boost = p.random.Float64() < explorerBoostChance
	}

	turning := s.Now-p.legStart < explorerLegDuration*explorerTurnShare
	ahead := s.ShipPosition.Add(physics.Facing(s.ShipHeading).Scale(aggressorStandoff))
	return engine.Input{
		Forward:   true,
		Boost:     p.boost && !turning,
		TurnLeft:  turning && p.turnLeft,
		TurnRight: turning && !p.turnLeft,
		Aim:       turning,
		Pointer:   ahead,
	}
}

// attack steers toward the nearest enemy and fires once it is in range
func (p *Pilot) attack(s engine.Snapshot) engine.Input {
	target, distance, ok := nearest(s.ShipPosition, s.EnemyPositions)
	if !ok {
		return p.idle(s)
	}

	in := engine.Input{
		Aim:     true,
		Pointer: target,
		Fire:    distance <= aggressorFireRange,
	}

	delta := physics.DeltaAngle(s.ShipHeading, physics.HeadingOf(target.Sub(s.ShipPosition)))
	switch {
	case delta > headingTolerance:
		in.TurnLeft = true
	case delta < -headingTolerance:
		in.TurnRight = true
	}

	onCourse := math.Abs(delta) <= 90
	switch {
	case distance > aggressorStandoff && onCourse:
		in.Forward = true
		in.Boost = distance > 2*aggressorFireRange
	case distance < aggressorStandoff:
		in.Back = true
	}
	return in
}

// nearest returns the closest of points to from
func nearest(from physics.Vector2D, points []physics.Vector2D) (physics.Vector2D, float64, bool) {
	best, bestDistance := physics.Vector2D{}, math.Inf(1)
	for _, pt := range points {
		if d := from.Distance(pt); d < bestDistance {
			best, bestDistance = pt, d
		}
	}
	return best, bestDistance, len(points) > 0
}
