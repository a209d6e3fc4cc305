// pkg/entity/ship_test.go
package entity

import (
	"errors"
	"testing"

	"github.com/opd-ai/go-gunship/pkg/effect"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

func defaultShipStats() ShipStats {
	return ShipStats{
		Flight: physics.FlightConfig{
			MaxSpeed:        10,
			Acceleration:    5,
			Deceleration:    3,
			RotationSpeed:   200,
			BoostMultiplier: 1.5,
		},
		Radius: 0.5,
		Thruster: ThrusterConfig{
			EmissionRate: 10,
			Profile: effect.Profile{
				Kind:              effect.KindThruster,
				SpreadAngle:       30,
				Speed:             3,
				SpeedVariation:    0.5,
				SizeMin:           0.1,
				SizeMax:           0.3,
				Lifetime:          0.5,
				LifetimeVariation: 0.2,
				Fade:              true,
			},
		},
	}
}

func newTestShip(t *testing.T) *Ship {
	t.Helper()
	ship, err := NewShip(1, defaultShipStats(), physics.Vector2D{}, 0)
	if err != nil {
		t.Fatalf("NewShip() error = %v", err)
	}
	return ship
}

func TestNewShip_Validation(t *testing.T) {
	stats := defaultShipStats()
	stats.Thruster.EmissionRate = 0
	if _, err := NewShip(1, stats, physics.Vector2D{}, 0); !errors.Is(err, effect.ErrInvalidRate) {
		t.Errorf("NewShip() error = %v, want ErrInvalidRate", err)
	}

	stats = defaultShipStats()
	stats.Flight.MaxSpeed = 0
	if _, err := NewShip(1, stats, physics.Vector2D{}, 0); !errors.Is(err, physics.ErrInvalidFlightConfig) {
		t.Errorf("NewShip() error = %v, want ErrInvalidFlightConfig", err)
	}
}

func TestShip_UpdateMovesAlongHeading(t *testing.T) {
	ship := newTestShip(t)
	ship.Controls = physics.FlightInput{Forward: true}

	for i := 0; i < 10; i++ {
		ship.Update(0.1)
	}

	if !near(ship.Speed(), 5) {
		t.Errorf("Speed() = %v, want 5", ship.Speed())
	}
	if !near(ship.Velocity.Y, 5) || !near(ship.Velocity.X, 0) {
		t.Errorf("Velocity = %v, want {0 5}", ship.Velocity)
	}
	// 0.05 + 0.10 + ... + 0.50 with velocity applied after each speed update
	if !near(ship.Position.Y, 2.75) {
		t.Errorf("Position.Y = %v, want 2.75", ship.Position.Y)
	}
}

func TestShip_UpdateTracksHeading(t *testing.T) {
	ship := newTestShip(t)
	ship.Controls = physics.FlightInput{TurnLeft: true}
	ship.Update(0.45)

	if !near(ship.Rotation, 90) {
		t.Errorf("Rotation = %v, want 90", ship.Rotation)
	}
}

func TestShip_EmitThrusters(t *testing.T) {
	ship := newTestShip(t)

	// Not boosting: nothing, and the emitter does not accumulate.
	for i := 0; i < 5; i++ {
		ship.Update(0.1)
		if reqs := ship.EmitThrusters(0.1, midSource{}); len(reqs) != 0 {
			t.Fatalf("EmitThrusters() emitted %d without boost", len(reqs))
		}
	}

	ship.Controls = physics.FlightInput{Boost: true}
	ship.Update(0.05)
	if reqs := ship.EmitThrusters(0.05, midSource{}); len(reqs) != 0 {
		t.Fatalf("EmitThrusters() fired before a full period")
	}
	ship.Update(0.05)
	reqs := ship.EmitThrusters(0.05, midSource{})
	if len(reqs) != 1 {
		t.Fatalf("EmitThrusters() = %d requests, want 1", len(reqs))
	}

	req := reqs[0]
	if req.Kind != effect.KindThruster {
		t.Errorf("Kind = %v, want thruster", req.Kind)
	}
	if !near(req.Position.X, 0) || !near(req.Position.Y, -0.5) {
		t.Errorf("Position = %v, want nozzle at {0 -0.5}", req.Position)
	}
	if !near(req.Direction.X, 0) || !near(req.Direction.Y, -1) {
		t.Errorf("Direction = %v, want exhaust pointing -Y", req.Direction)
	}
	if !near(req.Speed, 3) {
		t.Errorf("Speed = %v, want 3", req.Speed)
	}
}

func TestShip_EmitThrustersFrozenWhileNotBoosting(t *testing.T) {
	ship := newTestShip(t)

	ship.Controls = physics.FlightInput{Boost: true}
	ship.Update(0.07)
	ship.EmitThrusters(0.07, midSource{})

	ship.Controls = physics.FlightInput{}
	ship.Update(1)
	ship.EmitThrusters(1, midSource{})

	ship.Controls = physics.FlightInput{Boost: true}
	ship.Update(0.05)
	if reqs := ship.EmitThrusters(0.05, midSource{}); len(reqs) != 1 {
		t.Errorf("EmitThrusters() = %d, want accumulated time to carry across the pause", len(reqs))
	}
}

func TestShip_EmissionPointsFollowRotation(t *testing.T) {
	stats := defaultShipStats()
	stats.Thruster.EmissionPoints = []physics.Vector2D{{X: -0.2, Y: -0.5}, {X: 0.2, Y: -0.5}}
	ship, err := NewShip(1, stats, physics.Vector2D{X: 10, Y: 10}, 90)
	if err != nil {
		t.Fatalf("NewShip() error = %v", err)
	}

	points := ship.EmissionPoints()
	want := []physics.Vector2D{{X: 10.5, Y: 9.8}, {X: 10.5, Y: 10.2}}
	for i := range want {
		if !near(points[i].X, want[i].X) || !near(points[i].Y, want[i].Y) {
			t.Errorf("EmissionPoints()[%d] = %v, want %v", i, points[i], want[i])
		}
	}

	ship.Controls = physics.FlightInput{Boost: true}
	if reqs := ship.EmitThrusters(0.1, midSource{}); len(reqs) != 0 {
		t.Error("EmitThrusters() fired before the flight model saw boost")
	}
	ship.Update(0.1)
	if reqs := ship.EmitThrusters(0.1, midSource{}); len(reqs) != 2 {
		t.Errorf("EmitThrusters() = %d requests, want one per nozzle", len(reqs))
	}
}
