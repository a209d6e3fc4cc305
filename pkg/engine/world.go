// pkg/engine/world.go
package engine

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/opd-ai/go-gunship/pkg/config"
	"github.com/opd-ai/go-gunship/pkg/effect"
	"github.com/opd-ai/go-gunship/pkg/entity"
	"github.com/opd-ai/go-gunship/pkg/event"
	"github.com/opd-ai/go-gunship/pkg/logging"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

// GameStatus is the lifecycle state of a world
type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusEnded
)

// String returns the status name
func (s GameStatus) String() string {
	switch s {
	case GameStatusWaiting:
		return "waiting"
	case GameStatusActive:
		return "active"
	case GameStatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// spatialCapacity is the number of enemies per quad before it subdivides
const spatialCapacity = 8

// World owns the player ship, its cannon, the enemies and the bullets in
// flight, and advances them in a fixed order every step.
type World struct {
	Config      *config.GameConfig
	Ship        *entity.Ship
	Cannon      *entity.Cannon
	Enemies     []*entity.Enemy
	Projectiles []*entity.Projectile
	EventBus    *event.Bus
	Status      GameStatus
	CurrentTick uint64
	Now         float64 // simulation seconds
	EntityLock  sync.RWMutex

	sink     EffectSink
	renderer entity.Renderer
	rnd      effect.RandomSource
	logger   *logging.Logger
	ctx      context.Context
	mount    physics.Vector2D
	contacts map[entity.ID]bool
	aimRow   []effect.Handle // aim-line particles currently shown
}

// Option customizes a World at construction
type Option func(*World)

// WithRandomSource sets the source used to sample effects
func WithRandomSource(rnd effect.RandomSource) Option {
	return func(w *World) { w.rnd = rnd }
}

// WithEventBus publishes gameplay events on bus
func WithEventBus(bus *event.Bus) Option {
	return func(w *World) { w.EventBus = bus }
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(w *World) { w.logger = logger }
}

// WithRenderer draws the entities at the end of every step
func WithRenderer(r entity.Renderer) Option {
	return func(w *World) { w.renderer = r }
}

// WithContext sets the context carried into log calls
func WithContext(ctx context.Context) Option {
	return func(w *World) { w.ctx = ctx }
}

// NewWorld validates cfg and creates a world with the ship at its start
// position and every configured enemy chasing it. A nil sink tracks effects
// in an ArenaSink.
func NewWorld(cfg *config.GameConfig, sink EffectSink, opts ...Option) (*World, error) {
	if cfg == nil {
		return nil, errors.New("world: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "world")
	}
	if sink == nil {
		sink = NewArenaSink()
	}

	w := &World{
		Config:   cfg,
		EventBus: event.NewEventBus(),
		sink:     sink,
		rnd:      effect.NewRandomSource(cfg.Simulation.Seed),
		logger:   logging.Discard(),
		ctx:      context.Background(),
		mount:    cfg.Cannon.Mount.Vector(),
		contacts: make(map[entity.ID]bool),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.spawnShip(); err != nil {
		return nil, err
	}
	if err := w.spawnEnemies(); err != nil {
		return nil, err
	}

	w.logger.Debug(w.ctx, "world created",
		"enemies", len(w.Enemies),
		"tick_rate", cfg.Simulation.TickRate,
		"seed", cfg.Simulation.Seed)
	return w, nil
}

func (w *World) spawnShip() error {
	stats, err := w.Config.ShipStats()
	if err != nil {
		return logging.WrapError(err, "ship")
	}
	ship, err := entity.NewShip(entity.GenerateID(), stats, w.Config.Ship.Start.Vector(), w.Config.Ship.StartHeading)
	if err != nil {
		return logging.WrapError(err, "ship")
	}

	cannonStats, err := w.Config.CannonStats()
	if err != nil {
		return logging.WrapError(err, "cannon")
	}
	cannon, err := entity.NewCannon(ship.ID, cannonStats, w.mountPosition(ship), ship.Rotation)
	if err != nil {
		return logging.WrapError(err, "cannon")
	}

	w.Ship = ship
	w.Cannon = cannon
	return nil
}

func (w *World) spawnEnemies() error {
	stats := w.Config.EnemyStats()
	for i, spawn := range w.Config.Enemies {
		enemy, err := entity.NewEnemy(entity.GenerateID(), stats, spawn.Vector(), w.Ship)
		if err != nil {
			return logging.WrapError(err, "enemy %d", i)
		}
		w.Enemies = append(w.Enemies, enemy)
	}
	return nil
}

// Start marks the world active and publishes GameStarted
func (w *World) Start() {
	w.EntityLock.Lock()
	w.Status = GameStatusActive
	w.EntityLock.Unlock()

	w.logger.Info(w.ctx, "game started")
	w.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameStarted,
		Source:    w,
	})
}

// Stop ends the world and publishes GameEnded. Later steps do nothing.
func (w *World) Stop() {
	w.EntityLock.Lock()
	if w.Status == GameStatusEnded {
		w.EntityLock.Unlock()
		return
	}
	w.Status = GameStatusEnded
	tick, now := w.CurrentTick, w.Now
	w.EntityLock.Unlock()

	w.logger.Info(w.ctx, "game ended", "tick", tick, "sim_time", now)
	w.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameEnded,
		Source:    w,
	})
}

// Step advances the world by dt seconds. Negative dt is treated as zero.
// Events are published after the lock is released, so handlers may read
// the world.
func (w *World) Step(in Input, dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}

	w.EntityLock.Lock()
	if w.Status == GameStatusEnded {
		w.EntityLock.Unlock()
		return
	}
	if w.Status == GameStatusWaiting {
		w.Status = GameStatusActive
	}

	var events []event.Event
	w.Now += dt

	events = w.tickEffects(dt, events)
	events = w.updateShip(in, dt, events)
	w.Cannon.Aim(w.mountPosition(w.Ship), in.Pointer, dt)
	fired := w.fire(in.Fire)
	events = w.emit(in.Aim, dt, events)
	events = w.updateProjectiles(dt, events)
	if fired != nil {
		w.Projectiles = append(w.Projectiles, fired)
		events = append(events, event.NewProjectileEvent(event.ProjectileFired, w,
			uint64(fired.ID), uint64(fired.OwnerID), fired.Position, fired.Heading()))
	}
	events = w.updateEnemies(dt, events)
	events = w.detectContacts(events)
	w.render()
	w.CurrentTick++

	w.EntityLock.Unlock()

	for _, e := range events {
		w.EventBus.Publish(e)
	}
}

func (w *World) tickEffects(dt float64, events []event.Event) []event.Event {
	for _, h := range w.sink.Tick(dt) {
		events = append(events, event.NewEffectEvent(event.EffectExpired, w, uint64(h), ""))
	}
	return events
}

func (w *World) updateShip(in Input, dt float64, events []event.Event) []event.Event {
	wasBoosting := w.Ship.IsBoosting()
	w.Ship.Controls = in.Flight()
	w.Ship.Update(dt)

	if boosting := w.Ship.IsBoosting(); boosting != wasBoosting {
		eventType := event.ShipBoostEnded
		if boosting {
			eventType = event.ShipBoostStarted
		}
		events = append(events, event.NewShipEvent(eventType, w,
			uint64(w.Ship.ID), w.Ship.Position, w.Ship.Speed()))
	}
	return events
}

func (w *World) fire(held bool) *entity.Projectile {
	if !held {
		return nil
	}
	p := w.Cannon.Fire(w.Now)
	if p != nil {
		w.logger.Debug(w.ctx, "projectile fired", "projectile_id", p.ID, "heading", p.Heading())
	}
	return p
}

func (w *World) emit(aimHeld bool, dt float64, events []event.Event) []event.Event {
	events = w.spawn(w.Ship.EmitThrusters(dt, w.rnd), events)
	for _, p := range w.Projectiles {
		events = w.spawn(p.EmitTrail(dt, w.rnd), events)
	}
	return w.emitAimLine(aimHeld, dt, events)
}

// emitAimLine keeps at most one aim-line row live. A new row replaces the
// previous one and releasing the button clears it.
func (w *World) emitAimLine(held bool, dt float64, events []event.Event) []event.Event {
	row := w.Cannon.UpdateAimLine(held, dt)
	if len(row) == 0 && held {
		return events
	}

	for _, h := range w.aimRow {
		if w.sink.Remove(h) {
			events = append(events, event.NewEffectEvent(event.EffectExpired, w, uint64(h), effect.KindAimLine.String()))
		}
	}
	w.aimRow = w.aimRow[:0]

	for _, req := range row {
		h := w.sink.Spawn(req)
		w.aimRow = append(w.aimRow, h)
		events = append(events, event.NewEffectEvent(event.EffectSpawned, w, uint64(h), req.Kind.String()))
	}
	return events
}

func (w *World) spawn(requests []effect.SpawnRequest, events []event.Event) []event.Event {
	for _, req := range requests {
		h := w.sink.Spawn(req)
		events = append(events, event.NewEffectEvent(event.EffectSpawned, w, uint64(h), req.Kind.String()))
	}
	return events
}

func (w *World) updateProjectiles(dt float64, events []event.Event) []event.Event {
	live := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		p.Update(dt)
		if p.IsActive() {
			live = append(live, p)
			continue
		}
		events = append(events, event.NewProjectileEvent(event.ProjectileExpired, w,
			uint64(p.ID), uint64(p.OwnerID), p.Position, p.Heading()))
	}
	clear(w.Projectiles[len(live):])
	w.Projectiles = live
	return events
}

func (w *World) updateEnemies(dt float64, events []event.Event) []event.Event {
	for _, e := range w.Enemies {
		if !e.IsActive() {
			continue
		}
		wasInRange := e.InRange
		e.Update(dt)
		if e.InRange == wasInRange {
			continue
		}

		eventType := event.EnemyLostTarget
		if e.InRange {
			eventType = event.EnemyAlerted
		}
		events = append(events, event.NewEnemyEvent(eventType, w,
			uint64(e.ID), uint64(w.Ship.ID), e.Position.Distance(w.Ship.Position)))
	}
	return events
}

// detectContacts publishes EnemyContact once when an enemy starts touching
// the ship. Enemies are bucketed in a quad tree sized to their extent.
func (w *World) detectContacts(events []event.Event) []event.Event {
	if len(w.Enemies) == 0 || !w.Ship.IsActive() {
		clear(w.contacts)
		return events
	}

	var maxRadius float64
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, e := range w.Enemies {
		maxRadius = max(maxRadius, e.Collider.Radius)
		minX, maxX = min(minX, e.Position.X), max(maxX, e.Position.X)
		minY, maxY = min(minY, e.Position.Y), max(maxY, e.Position.Y)
	}

	index := physics.NewQuadTree[*entity.Enemy](physics.Rect{
		Center: physics.Vector2D{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
		Width:  maxX - minX + 2,
		Height: maxY - minY + 2,
	}, spatialCapacity)
	for _, e := range w.Enemies {
		if e.IsActive() {
			index.Insert(e.Position, e)
		}
	}

	shipCollider := w.Ship.GetCollider()
	search := physics.Circle{Center: shipCollider.Center, Radius: shipCollider.Radius + maxRadius}

	touching := make(map[entity.ID]bool)
	for _, e := range index.QueryCircle(search) {
		if !shipCollider.Collides(e.GetCollider()) {
			continue
		}
		touching[e.ID] = true
		if !w.contacts[e.ID] {
			events = append(events, event.NewEnemyEvent(event.EnemyContact, w,
				uint64(e.ID), uint64(w.Ship.ID), e.Position.Distance(w.Ship.Position)))
		}
	}
	w.contacts = touching
	return events
}

func (w *World) render() {
	if w.renderer == nil {
		return
	}
	w.renderer.Clear()
	for _, e := range w.Enemies {
		if e.IsActive() {
			e.Render(w.renderer)
		}
	}
	for _, p := range w.Projectiles {
		p.Render(w.renderer)
	}
	w.Ship.Render(w.renderer)
	w.renderer.Present()
}

// mountPosition places the cannon on ship in world space
func (w *World) mountPosition(ship *entity.Ship) physics.Vector2D {
	return ship.Position.Add(w.mount.RotateDegrees(ship.Rotation))
}

// Run steps the world at Simulation.TickRate until ctx is done, sampling
// input before every step. It returns ctx.Err().
func (w *World) Run(ctx context.Context, input func() Input) error {
	tickRate := w.Config.Simulation.TickRate
	dt := 1.0 / float64(tickRate)
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	w.Start()
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Step(input(), dt)
		}
	}
}

// Snapshot is a copy of the state a HUD or test needs
type Snapshot struct {
	Tick          uint64
	Now           float64
	Status        GameStatus
	ShipPosition  physics.Vector2D
	ShipHeading   float64
	ShipSpeed     float64
	Boosting      bool
	CannonHeading float64
	Enemies       int
	EnemiesAlert  int
	Projectiles   int

	EnemyPositions []physics.Vector2D // active enemies only
}

// Snapshot returns a consistent copy of the world state
func (w *World) Snapshot() Snapshot {
	w.EntityLock.RLock()
	defer w.EntityLock.RUnlock()

	s := Snapshot{
		Tick:          w.CurrentTick,
		Now:           w.Now,
		Status:        w.Status,
		ShipPosition:  w.Ship.Position,
		ShipHeading:   w.Ship.Rotation,
		ShipSpeed:     w.Ship.Speed(),
		Boosting:      w.Ship.IsBoosting(),
		CannonHeading: w.Cannon.Heading(),
		Projectiles:   len(w.Projectiles),
	}
	for _, e := range w.Enemies {
		if e.IsActive() {
			s.Enemies++
			s.EnemyPositions = append(s.EnemyPositions, e.Position)
			if e.InRange {
				s.EnemiesAlert++
			}
		}
	}
	return s
}

// Sink returns the effect sink the world spawns into
func (w *World) Sink() EffectSink {
	return w.sink
}
