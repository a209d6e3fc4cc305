// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/go-gunship/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Entity is the base interface for all game objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	GetCollider() physics.Circle
	IsActive() bool
	Update(deltaTime float64)
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Rotation float64 // heading in degrees, 0 faces +Y
	Collider physics.Circle
	Active   bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// GetCollider returns the entity's collision shape at its current position
func (e *BaseEntity) GetCollider() physics.Circle {
	return physics.Circle{
		Center: e.Position,
		Radius: e.Collider.Radius,
	}
}

// IsActive reports whether the entity is still in play
func (e *BaseEntity) IsActive() bool {
	return e.Active
}

// Update moves the entity along its velocity
func (e *BaseEntity) Update(deltaTime float64) {
	e.Position = e.Position.Add(e.Velocity.Scale(deltaTime))
	e.Collider.Center = e.Position
}

// Render does nothing for the base type
func (e *BaseEntity) Render(r Renderer) {}

func (s *Ship) Render(r Renderer) {
	r.RenderShip(s)
}

func (e *Enemy) Render(r Renderer) {
	r.RenderEnemy(e)
}

func (p *Projectile) Render(r Renderer) {
	r.RenderProjectile(p)
}

var nextID atomic.Uint64

// GenerateID returns a process-wide unique entity ID
func GenerateID() ID {
	return ID(nextID.Add(1))
}
