// pkg/entity/cannon.go
package entity

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/opd-ai/go-gunship/pkg/effect"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

// ErrInvalidCannonConfig is returned for cannon tuning that cannot work
var ErrInvalidCannonConfig = errors.New("invalid cannon config")

// TrailConfig describes the particles a bullet sheds
type TrailConfig struct {
	EmissionRate float64
	Profile      effect.Profile
}

// AimLineConfig describes the dotted line drawn while aiming
type AimLineConfig struct {
	EmissionRate float64
	Points       int
	Length       float64
	Size         float64
	Color        color.NRGBA
}

// CannonConfig contains the tuning of a turret cannon
type CannonConfig struct {
	Turret         physics.TurretConfig
	BulletSpeed    float64
	BulletLifetime float64
	BulletRadius   float64
	Trail          TrailConfig
	AimLine        AimLineConfig
}

// Cannon is a turret mounted on a ship. It aims at a world point, gates its
// fire rate and spawns bullets with particle trails.
type Cannon struct {
	OwnerID ID
	Turret  *physics.TurretAimModel
	AimLine *AimLine

	config CannonConfig
	trail  *effect.Emitter
}

// NewCannon creates a cannon at mount pointing along heading
func NewCannon(owner ID, cfg CannonConfig, mount physics.Vector2D, heading float64) (*Cannon, error) {
	if cfg.BulletSpeed < 0 {
		return nil, fmt.Errorf("%w: bullet speed must not be negative, got %v", ErrInvalidCannonConfig, cfg.BulletSpeed)
	}
	if cfg.BulletLifetime <= 0 {
		return nil, fmt.Errorf("%w: bullet lifetime must be positive, got %v", ErrInvalidCannonConfig, cfg.BulletLifetime)
	}

	turret, err := physics.NewTurretAimModel(cfg.Turret, mount, heading)
	if err != nil {
		return nil, err
	}
	trail, err := effect.NewEmitter(cfg.Trail.EmissionRate)
	if err != nil {
		return nil, fmt.Errorf("bullet trail: %w", err)
	}
	aimLine, err := NewAimLine(cfg.AimLine)
	if err != nil {
		return nil, err
	}

	return &Cannon{
		OwnerID: owner,
		Turret:  turret,
		AimLine: aimLine,
		config:  cfg,
		trail:   trail,
	}, nil
}

// Aim moves the mount to mount and turns it toward target
func (c *Cannon) Aim(mount, target physics.Vector2D, deltaTime float64) float64 {
	c.Turret.Position = mount
	return c.Turret.Aim(target, deltaTime)
}

// Fire spawns a bullet along the current heading if the cooldown allows it.
// It returns nil while the cannon is cooling down.
func (c *Cannon) Fire(now float64) *Projectile {
	if !c.Turret.TryFire(now) {
		return nil
	}
	return newProjectile(c.OwnerID, c.Turret.Position, c.Turret.Heading(), c.config, c.trail.Clone())
}

// UpdateAimLine returns the aim-line particles due this tick
func (c *Cannon) UpdateAimLine(held bool, deltaTime float64) []effect.SpawnRequest {
	return c.AimLine.Update(held, c.Turret.Position, c.Turret.Heading(), deltaTime)
}

// Heading returns the turret heading in degrees
func (c *Cannon) Heading() float64 {
	return c.Turret.Heading()
}

// Config returns the tuning the cannon was built with
func (c *Cannon) Config() CannonConfig {
	return c.config
}

// AimLine draws a row of stationary particles ahead of the turret while the
// aim button is held. The owner removes a row when the next one is emitted
// or the button is released; the two-period lifetime only bounds a row that
// is never removed.
type AimLine struct {
	config  AimLineConfig
	emitter *effect.Emitter
	active  bool
}

// NewAimLine validates cfg and creates an idle aim line
func NewAimLine(cfg AimLineConfig) (*AimLine, error) {
	if cfg.Points < 1 {
		return nil, fmt.Errorf("%w: aim line needs at least one point, got %d", ErrInvalidCannonConfig, cfg.Points)
	}
	if cfg.Length <= 0 {
		return nil, fmt.Errorf("%w: aim line length must be positive, got %v", ErrInvalidCannonConfig, cfg.Length)
	}
	emitter, err := effect.NewEmitter(cfg.EmissionRate)
	if err != nil {
		return nil, fmt.Errorf("aim line: %w", err)
	}
	return &AimLine{config: cfg, emitter: emitter}, nil
}

// Update returns the particles to spawn this tick. Pressing the button draws
// a row at once; releasing it resets the emitter.
func (a *AimLine) Update(held bool, mount physics.Vector2D, heading, deltaTime float64) []effect.SpawnRequest {
	if !held {
		if a.active {
			a.active = false
			a.emitter.Reset()
		}
		return nil
	}

	if !a.active {
		a.active = true
		a.emitter.Reset()
		return a.row(mount, heading)
	}
	if a.emitter.Tick(deltaTime) {
		return a.row(mount, heading)
	}
	return nil
}

// Active reports whether the aim line is showing
func (a *AimLine) Active() bool {
	return a.active
}

func (a *AimLine) row(mount physics.Vector2D, heading float64) []effect.SpawnRequest {
	dir := physics.Facing(heading)
	spacing := a.config.Length / float64(a.config.Points)

	requests := make([]effect.SpawnRequest, a.config.Points)
	for i := range requests {
		requests[i] = effect.SpawnRequest{
			Kind:      effect.KindAimLine,
			Position:  mount.Add(dir.Scale(spacing * float64(i+1))),
			Direction: dir,
			Color:     a.config.Color,
			Size:      a.config.Size,
			Lifetime:  2 * a.emitter.Period(),
		}
	}
	return requests
}
