// pkg/entity/enemy.go
package entity

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-gunship/pkg/physics"
)

// ErrInvalidEnemyConfig is returned for enemy tuning that cannot work
var ErrInvalidEnemyConfig = errors.New("invalid enemy config")

// Target is anything an enemy can chase
type Target interface {
	GetPosition() physics.Vector2D
	IsActive() bool
}

// EnemyConfig contains the tuning of the chase AI
type EnemyConfig struct {
	MoveSpeed        float64
	DetectionRadius  float64
	StoppingDistance float64
	Radius           float64
}

// Validate checks the enemy tuning
func (c EnemyConfig) Validate() error {
	switch {
	case c.MoveSpeed < 0:
		return fmt.Errorf("%w: move speed must not be negative, got %v", ErrInvalidEnemyConfig, c.MoveSpeed)
	case c.DetectionRadius < 0:
		return fmt.Errorf("%w: detection radius must not be negative, got %v", ErrInvalidEnemyConfig, c.DetectionRadius)
	case c.StoppingDistance < 0:
		return fmt.Errorf("%w: stopping distance must not be negative, got %v", ErrInvalidEnemyConfig, c.StoppingDistance)
	case c.StoppingDistance > c.DetectionRadius:
		return fmt.Errorf("%w: stopping distance %v beyond detection radius %v",
			ErrInvalidEnemyConfig, c.StoppingDistance, c.DetectionRadius)
	}
	return nil
}

// Enemy chases its target while it is within the detection radius and halts
// at the stopping distance. Outside the radius it idles.
type Enemy struct {
	BaseEntity
	Config  EnemyConfig
	Target  Target
	Home    physics.Vector2D
	InRange bool
	FlipX   bool // sprite mirrored, set when last moving toward -X
}

// NewEnemy creates an enemy at position chasing target. Target may be nil
// and assigned later.
func NewEnemy(id ID, cfg EnemyConfig, position physics.Vector2D, target Target) (*Enemy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Enemy{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
			Collider: physics.Circle{Center: position, Radius: cfg.Radius},
			Active:   true,
		},
		Config: cfg,
		Target: target,
		Home:   position,
	}, nil
}

// Think picks this tick's velocity from the target's position
func (e *Enemy) Think() {
	if e.Target == nil || !e.Target.IsActive() {
		e.InRange = false
		e.Velocity = physics.Vector2D{}
		return
	}

	toTarget := e.Target.GetPosition().Sub(e.Position)
	distance := toTarget.Length()
	e.InRange = distance <= e.Config.DetectionRadius

	if !e.InRange || distance <= e.Config.StoppingDistance {
		e.Velocity = physics.Vector2D{}
		return
	}

	direction := toTarget.Normalize()
	e.Velocity = direction.Scale(e.Config.MoveSpeed)
	if direction.X > 0 {
		e.FlipX = false
	} else if direction.X < 0 {
		e.FlipX = true
	}
}

// Update runs the AI and moves the enemy
func (e *Enemy) Update(deltaTime float64) {
	e.Think()
	e.BaseEntity.Update(deltaTime)
}

// DetectionArea returns the circle the enemy watches
func (e *Enemy) DetectionArea() physics.Circle {
	return physics.Circle{Center: e.Position, Radius: e.Config.DetectionRadius}
}
