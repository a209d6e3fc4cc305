// pkg/physics/turret.go
package physics

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMountOffset turns an atan2 angle into a heading for a mount whose
// sprite points along +Y.
const DefaultMountOffset = -90.0

var (
	// ErrInvalidFireRate is returned when a turret is built with a non-positive fire rate.
	ErrInvalidFireRate = errors.New("fire rate must be positive")
	// ErrInvalidRotationSpeed is returned when a turret is built with a negative rotation speed.
	ErrInvalidRotationSpeed = errors.New("rotation speed must not be negative")
)

// TurretConfig holds the tuning of a rotating mount
type TurretConfig struct {
	RotationSpeed float64 // interpolation factor per second
	FireRate      float64 // shots per second
	MountOffset   float64 // degrees added to the raw target angle
}

// AimHeading returns the heading a mount at mount reaches after dt seconds of
// turning toward target. The mount moves a clamped fraction
// rotationSpeed*dt of the shortest arc, so it never overshoots. A target on
// top of the mount leaves the heading unchanged.
func AimHeading(mount, target Vector2D, current, offset, rotationSpeed, dt float64) float64 {
	direction := target.Sub(mount)
	if direction.IsZero() {
		return WrapDegrees(current)
	}

	targetHeading := math.Atan2(direction.Y, direction.X)*Rad2Deg + offset
	return LerpAngle(current, targetHeading, rotationSpeed*dt)
}

// TurretAimModel turns a mount toward a target point and gates firing.
// It is independent of whatever the mount is attached to; the owner moves
// Position every tick.
type TurretAimModel struct {
	Position Vector2D

	config       TurretConfig
	heading      float64
	nextFireTime float64
}

// NewTurretAimModel creates a turret at the given position and heading
func NewTurretAimModel(config TurretConfig, position Vector2D, heading float64) (*TurretAimModel, error) {
	if config.FireRate <= 0 || math.IsNaN(config.FireRate) {
		return nil, fmt.Errorf("turret: %w, got %v", ErrInvalidFireRate, config.FireRate)
	}
	if config.RotationSpeed < 0 {
		return nil, fmt.Errorf("turret: %w, got %v", ErrInvalidRotationSpeed, config.RotationSpeed)
	}
	return &TurretAimModel{
		Position: position,
		config:   config,
		heading:  WrapDegrees(heading),
	}, nil
}

// Aim turns the mount toward target and returns the new heading
func (t *TurretAimModel) Aim(target Vector2D, dt float64) float64 {
	if dt < 0 {
		dt = 0
	}
	t.heading = AimHeading(t.Position, target, t.heading, t.config.MountOffset, t.config.RotationSpeed, dt)
	return t.heading
}

// Heading returns the mount heading in degrees
func (t *TurretAimModel) Heading() float64 {
	return t.heading
}

// Facing returns the unit vector the mount points along
func (t *TurretAimModel) Facing() Vector2D {
	return Facing(t.heading)
}

// CanFire reports whether the cooldown watermark has passed
func (t *TurretAimModel) CanFire(now float64) bool {
	return now >= t.nextFireTime
}

// MarkFired records a shot at now and arms the cooldown
func (t *TurretAimModel) MarkFired(now float64) {
	t.nextFireTime = now + 1/t.config.FireRate
}

// TryFire records a shot if the cooldown allows one
func (t *TurretAimModel) TryFire(now float64) bool {
	if !t.CanFire(now) {
		return false
	}
	t.MarkFired(now)
	return true
}

// NextFireTime returns the earliest time the next shot is allowed
func (t *TurretAimModel) NextFireTime() float64 {
	return t.nextFireTime
}

// Config returns the tuning the turret was built with
func (t *TurretAimModel) Config() TurretConfig {
	return t.config
}
