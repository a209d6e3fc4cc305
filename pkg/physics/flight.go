// pkg/physics/flight.go
package physics

import (
	"errors"
	"fmt"
)

// stopThreshold is the coasting speed below which a ship snaps to rest.
const stopThreshold = 0.01

// ErrInvalidFlightConfig is returned when a flight model is built from
// tuning values it cannot honor.
var ErrInvalidFlightConfig = errors.New("invalid flight config")

// FlightConfig holds the tuning knobs of a ship's flight model
type FlightConfig struct {
	MaxSpeed        float64 // units per second without boost
	Acceleration    float64 // units per second squared
	Deceleration    float64 // units per second squared
	RotationSpeed   float64 // degrees per second
	BoostMultiplier float64 // multiplier applied to MaxSpeed while boosting
}

// Validate checks that the configuration describes a usable flight model
func (c FlightConfig) Validate() error {
	switch {
	case c.MaxSpeed <= 0:
		return fmt.Errorf("%w: max speed must be positive, got %v", ErrInvalidFlightConfig, c.MaxSpeed)
	case c.Acceleration < 0:
		return fmt.Errorf("%w: acceleration must not be negative, got %v", ErrInvalidFlightConfig, c.Acceleration)
	case c.Deceleration < 0:
		return fmt.Errorf("%w: deceleration must not be negative, got %v", ErrInvalidFlightConfig, c.Deceleration)
	case c.RotationSpeed < 0:
		return fmt.Errorf("%w: rotation speed must not be negative, got %v", ErrInvalidFlightConfig, c.RotationSpeed)
	case c.BoostMultiplier < 1:
		return fmt.Errorf("%w: boost multiplier must be at least 1, got %v", ErrInvalidFlightConfig, c.BoostMultiplier)
	}
	return nil
}

// FlightInput is the directional key state sampled for one tick
type FlightInput struct {
	Forward   bool
	Back      bool
	Boost     bool
	TurnLeft  bool
	TurnRight bool
}

// FlightOutput is what a single Step produced
type FlightOutput struct {
	Velocity     Vector2D
	HeadingDelta float64 // degrees, positive is counter-clockwise
}

// FlightModel tracks forward speed, boost and heading of a ship.
// Rotation is kinematic: releasing the turn keys stops rotation at once.
type FlightModel struct {
	config        FlightConfig
	currentSpeed  float64
	movingForward bool
	boosting      bool
	heading       float64
}

// NewFlightModel creates a flight model at rest facing the given heading in degrees
func NewFlightModel(config FlightConfig, heading float64) (*FlightModel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &FlightModel{
		config:  config,
		heading: WrapDegrees(heading),
	}, nil
}

// Step advances the model by dt seconds. Negative dt is treated as zero.
func (f *FlightModel) Step(in FlightInput, dt float64) FlightOutput {
	if dt < 0 {
		dt = 0
	}

	// Boost is an instantaneous flag, independent of the branch below.
	f.boosting = in.Boost
	if dt == 0 {
		return FlightOutput{Velocity: f.Velocity()}
	}

	f.updateSpeed(in, dt)
	velocity := f.Velocity()
	delta := f.updateHeading(in, dt)

	return FlightOutput{Velocity: velocity, HeadingDelta: delta}
}

func (f *FlightModel) updateSpeed(in FlightInput, dt float64) {
	switch {
	case in.Forward:
		f.currentSpeed = min(f.currentSpeed+f.config.Acceleration*dt, f.speedCap(in.Boost))
		f.movingForward = true
	case in.Back && f.currentSpeed > 0:
		f.currentSpeed = max(f.currentSpeed-f.config.Deceleration*dt, 0)
		f.movingForward = f.currentSpeed > 0
	case f.currentSpeed > 0:
		f.currentSpeed = max(f.currentSpeed-f.config.Deceleration*dt, 0)
		if f.currentSpeed <= stopThreshold {
			f.currentSpeed = 0
			f.movingForward = false
		}
	default:
		f.currentSpeed = 0
		f.movingForward = false
	}
}

// updateHeading applies turn input. Left wins when both keys are held.
func (f *FlightModel) updateHeading(in FlightInput, dt float64) float64 {
	var turn float64
	if in.TurnLeft {
		turn = 1
	} else if in.TurnRight {
		turn = -1
	}

	delta := turn * f.config.RotationSpeed * dt
	if delta != 0 {
		f.heading = WrapDegrees(f.heading + delta)
	}
	return delta
}

func (f *FlightModel) speedCap(boost bool) float64 {
	if boost {
		return f.config.MaxSpeed * f.config.BoostMultiplier
	}
	return f.config.MaxSpeed
}

// Velocity returns the current velocity along the heading, or zero when the
// ship is not moving forward
func (f *FlightModel) Velocity() Vector2D {
	if !f.movingForward || f.currentSpeed <= 0 {
		return Vector2D{}
	}
	return Facing(f.heading).Scale(f.currentSpeed)
}

// Speed returns the current forward speed
func (f *FlightModel) Speed() float64 {
	return f.currentSpeed
}

// Heading returns the heading in degrees, wrapped to [0, 360)
func (f *FlightModel) Heading() float64 {
	return f.heading
}

// SetHeading teleports the heading, e.g. on respawn
func (f *FlightModel) SetHeading(heading float64) {
	f.heading = WrapDegrees(heading)
}

// IsBoosting reports whether boost was held on the last step
func (f *FlightModel) IsBoosting() bool {
	return f.boosting
}

// IsMovingForward reports whether the ship is under way
func (f *FlightModel) IsMovingForward() bool {
	return f.movingForward
}

// MaxBoostedSpeed is the highest speed the model can ever reach
func (f *FlightModel) MaxBoostedSpeed() float64 {
	return f.speedCap(true)
}

// Config returns the tuning the model was built with
func (f *FlightModel) Config() FlightConfig {
	return f.config
}
