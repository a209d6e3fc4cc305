// pkg/config/convert.go
package config

import (
	"github.com/opd-ai/go-gunship/pkg/effect"
	"github.com/opd-ai/go-gunship/pkg/entity"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

// Vector returns the point as a physics vector
func (p PointConfig) Vector() physics.Vector2D {
	return physics.Vector2D{X: p.X, Y: p.Y}
}

// FlightConfig returns the flight model tuning
func (c ShipConfig) FlightConfig() physics.FlightConfig {
	return physics.FlightConfig{
		MaxSpeed:        c.MaxSpeed,
		Acceleration:    c.Acceleration,
		Deceleration:    c.Deceleration,
		RotationSpeed:   c.RotationSpeed,
		BoostMultiplier: c.BoostMultiplier,
	}
}

// Profile converts the particle settings into an effect profile of kind
func (p ParticleConfig) Profile(kind effect.Kind) (effect.Profile, error) {
	c, err := ParseHexColor(p.Color)
	if err != nil {
		return effect.Profile{}, err
	}
	return effect.Profile{
		Kind:              kind,
		SpreadAngle:       p.SpreadAngle,
		Speed:             p.Speed,
		SpeedVariation:    p.SpeedVariation,
		SizeMin:           p.SizeMin,
		SizeMax:           p.SizeMax,
		Lifetime:          p.Lifetime,
		LifetimeVariation: p.LifetimeVariation,
		PositionJitter:    p.PositionJitter,
		Color:             c,
		Fade:              p.Fade,
	}, nil
}

// ShipStats builds the entity tuning of the player ship
func (c *GameConfig) ShipStats() (entity.ShipStats, error) {
	profile, err := c.Thruster.Particle.Profile(effect.KindThruster)
	if err != nil {
		return entity.ShipStats{}, err
	}

	points := make([]physics.Vector2D, len(c.Thruster.EmissionPoints))
	for i, p := range c.Thruster.EmissionPoints {
		points[i] = p.Vector()
	}

	return entity.ShipStats{
		Flight: c.Ship.FlightConfig(),
		Radius: c.Ship.Radius,
		Thruster: entity.ThrusterConfig{
			EmissionRate:   c.Thruster.EmissionRate,
			EmissionPoints: points,
			Profile:        profile,
		},
	}, nil
}

// CannonStats builds the entity tuning of the ship's cannon
func (c *GameConfig) CannonStats() (entity.CannonConfig, error) {
	trail, err := c.Trail.Particle.Profile(effect.KindTrail)
	if err != nil {
		return entity.CannonConfig{}, err
	}
	aimColor, err := ParseHexColor(c.AimLine.Color)
	if err != nil {
		return entity.CannonConfig{}, err
	}

	return entity.CannonConfig{
		Turret: physics.TurretConfig{
			RotationSpeed: c.Cannon.RotationSpeed,
			FireRate:      c.Cannon.FireRate,
			MountOffset:   c.Cannon.MountOffset,
		},
		BulletSpeed:    c.Cannon.BulletSpeed,
		BulletLifetime: c.Cannon.BulletLifetime,
		BulletRadius:   c.Cannon.BulletRadius,
		Trail: entity.TrailConfig{
			EmissionRate: c.Trail.EmissionRate,
			Profile:      trail,
		},
		AimLine: entity.AimLineConfig{
			EmissionRate: c.AimLine.EmissionRate,
			Points:       c.AimLine.Points,
			Length:       c.AimLine.Length,
			Size:         c.AimLine.Size,
			Color:        aimColor,
		},
	}, nil
}

// EnemyStats builds the entity tuning shared by every enemy
func (c *GameConfig) EnemyStats() entity.EnemyConfig {
	return entity.EnemyConfig{
		MoveSpeed:        c.Enemy.MoveSpeed,
		DetectionRadius:  c.Enemy.DetectionRadius,
		StoppingDistance: c.Enemy.StoppingDistance,
		Radius:           c.Enemy.Radius,
	}
}
