// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-gunship/pkg/physics"
)

// Type represents the type of event
type Type string

// Gameplay event types
const (
	ShipBoostStarted  Type = "ship_boost_started"
	ShipBoostEnded    Type = "ship_boost_ended"
	ProjectileFired   Type = "projectile_fired"
	ProjectileExpired Type = "projectile_expired"
	EffectSpawned     Type = "effect_spawned"
	EffectExpired     Type = "effect_expired"
	EnemyAlerted      Type = "enemy_alerted"
	EnemyLostTarget   Type = "enemy_lost_target"
	EnemyContact      Type = "enemy_contact"
	GameStarted       Type = "game_started"
	GameEnded         Type = "game_ended"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is returned by Subscribe. Cancel removes the handler.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// publishing goroutine and may subscribe or cancel without deadlocking.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// ShipEvent reports a change in a ship's boost state
type ShipEvent struct {
	BaseEvent
	ShipID   uint64
	Position physics.Vector2D
	Speed    float64
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, shipID uint64, position physics.Vector2D, speed float64) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID:   shipID,
		Position: position,
		Speed:    speed,
	}
}

// ProjectileEvent contains information about a bullet being fired or retired
type ProjectileEvent struct {
	BaseEvent
	ProjectileID uint64
	OwnerID      uint64
	Position     physics.Vector2D
	Heading      float64
}

// NewProjectileEvent creates a new projectile event
func NewProjectileEvent(eventType Type, source interface{}, projectileID, ownerID uint64, position physics.Vector2D, heading float64) *ProjectileEvent {
	return &ProjectileEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ProjectileID: projectileID,
		OwnerID:      ownerID,
		Position:     position,
		Heading:      heading,
	}
}

// EffectEvent reports a visual effect handed to or retired by the renderer
type EffectEvent struct {
	BaseEvent
	Handle uint64
	Kind   string
}

// NewEffectEvent creates a new effect event
func NewEffectEvent(eventType Type, source interface{}, handle uint64, kind string) *EffectEvent {
	return &EffectEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Handle: handle,
		Kind:   kind,
	}
}

// EnemyEvent contains information about an enemy noticing, losing or
// touching its target
type EnemyEvent struct {
	BaseEvent
	EnemyID  uint64
	TargetID uint64
	Distance float64
}

// NewEnemyEvent creates a new enemy event
func NewEnemyEvent(eventType Type, source interface{}, enemyID, targetID uint64, distance float64) *EnemyEvent {
	return &EnemyEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EnemyID:  enemyID,
		TargetID: targetID,
		Distance: distance,
	}
}
