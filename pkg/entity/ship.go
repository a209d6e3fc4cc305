// pkg/entity/ship.go
package entity

import (
	"github.com/opd-ai/go-gunship/pkg/effect"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

// DefaultEmissionPoint is where exhaust leaves a ship with no configured
// nozzles, in ship-local units behind the hull center.
var DefaultEmissionPoint = physics.Vector2D{X: 0, Y: -0.5}

// ThrusterConfig describes the boost exhaust of a ship
type ThrusterConfig struct {
	EmissionRate   float64
	EmissionPoints []physics.Vector2D // ship-local offsets
	Profile        effect.Profile
}

// ShipStats contains the tuning of a player ship
type ShipStats struct {
	Flight   physics.FlightConfig
	Radius   float64
	Thruster ThrusterConfig
}

// Ship represents the player's spaceship
type Ship struct {
	BaseEntity
	Stats    ShipStats
	Flight   *physics.FlightModel
	Controls physics.FlightInput

	thruster       *effect.Emitter
	emissionPoints []physics.Vector2D
}

// NewShip creates a ship at rest with the given heading in degrees
func NewShip(id ID, stats ShipStats, position physics.Vector2D, heading float64) (*Ship, error) {
	flight, err := physics.NewFlightModel(stats.Flight, heading)
	if err != nil {
		return nil, err
	}

	thruster, err := effect.NewEmitter(stats.Thruster.EmissionRate)
	if err != nil {
		return nil, err
	}

	points := stats.Thruster.EmissionPoints
	if len(points) == 0 {
		points = []physics.Vector2D{DefaultEmissionPoint}
	}

	return &Ship{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Rotation: flight.Heading(),
			Collider: physics.Circle{Center: position, Radius: stats.Radius},
			Active:   true,
		},
		Stats:          stats,
		Flight:         flight,
		thruster:       thruster,
		emissionPoints: points,
	}, nil
}

// Update handles the ship's state update for a single game tick
func (s *Ship) Update(deltaTime float64) {
	out := s.Flight.Step(s.Controls, deltaTime)
	s.Velocity = out.Velocity
	s.BaseEntity.Update(deltaTime)
	s.Rotation = s.Flight.Heading()
}

// IsBoosting reports whether boost is currently held
func (s *Ship) IsBoosting() bool {
	return s.Flight.IsBoosting()
}

// Speed returns the ship's current forward speed
func (s *Ship) Speed() float64 {
	return s.Flight.Speed()
}

// EmitThrusters returns the exhaust particles due this tick. The emitter only
// gathers time while boosting, so releasing boost freezes it rather than
// resetting it.
func (s *Ship) EmitThrusters(deltaTime float64, rnd effect.RandomSource) []effect.SpawnRequest {
	if !s.Flight.IsBoosting() || !s.thruster.Tick(deltaTime) {
		return nil
	}

	requests := make([]effect.SpawnRequest, 0, len(s.emissionPoints))
	for _, point := range s.EmissionPoints() {
		pose := effect.Pose{Position: point, Facing: s.Rotation + 180}
		requests = append(requests, s.Stats.Thruster.Profile.Build(pose, rnd))
	}
	return requests
}

// EmissionPoints returns the nozzle positions in world space
func (s *Ship) EmissionPoints() []physics.Vector2D {
	points := make([]physics.Vector2D, len(s.emissionPoints))
	for i, local := range s.emissionPoints {
		points[i] = s.Position.Add(local.RotateDegrees(s.Rotation))
	}
	return points
}
