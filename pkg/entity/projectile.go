// pkg/entity/projectile.go
package entity

import (
	"github.com/opd-ai/go-gunship/pkg/effect"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

// TrailWindowFactor sets how long a bullet keeps shedding trail particles,
// as a multiple of the trail particle lifetime.
const TrailWindowFactor = 2.0

// Projectile represents a fired bullet and its particle trail
type Projectile struct {
	BaseEntity
	OwnerID  ID
	Lifetime *effect.Lifetime

	trail        *effect.Emitter
	trailProfile effect.Profile
	trailWindow  *effect.Lifetime
}

// Update moves the projectile and retires it once its lifetime is spent
func (p *Projectile) Update(deltaTime float64) {
	if !p.Active {
		return
	}
	p.BaseEntity.Update(deltaTime)
	if p.Lifetime.Tick(deltaTime) {
		p.Active = false
	}
}

// EmitTrail returns the trail particle due this tick, if any. Particles are
// pushed straight back from the bullet. The trail stops when the bullet is
// gone or its trail window has elapsed.
func (p *Projectile) EmitTrail(deltaTime float64, rnd effect.RandomSource) []effect.SpawnRequest {
	if !p.Active || p.trail == nil || p.trailWindow.Expired() {
		return nil
	}
	p.trailWindow.Tick(deltaTime)
	if !p.trail.Tick(deltaTime) {
		return nil
	}

	pose := effect.Pose{Position: p.Position, Facing: p.Rotation + 180}
	return []effect.SpawnRequest{p.trailProfile.Build(pose, rnd)}
}

// TrailActive reports whether the projectile still sheds trail particles
func (p *Projectile) TrailActive() bool {
	return p.Active && p.trail != nil && !p.trailWindow.Expired()
}

// Heading returns the direction of travel in degrees
func (p *Projectile) Heading() float64 {
	return p.Rotation
}

func newProjectile(owner ID, position physics.Vector2D, heading float64, cfg CannonConfig, trail *effect.Emitter) *Projectile {
	return &Projectile{
		BaseEntity: BaseEntity{
			ID:       GenerateID(),
			Position: position,
			Velocity: physics.Facing(heading).Scale(cfg.BulletSpeed),
			Rotation: heading,
			Collider: physics.Circle{Center: position, Radius: cfg.BulletRadius},
			Active:   true,
		},
		OwnerID:      owner,
		Lifetime:     effect.NewLifetime(cfg.BulletLifetime),
		trail:        trail,
		trailProfile: cfg.Trail.Profile,
		trailWindow:  effect.NewLifetime(cfg.Trail.Profile.Lifetime * TrailWindowFactor),
	}
}
