// pkg/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-gunship/pkg/effect"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

// Validate reports every problem with the configuration at once
func (c *GameConfig) Validate() error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	add(wrap("ship", c.Ship.FlightConfig().Validate()))
	add(nonNegative("ship.radius", c.Ship.Radius))

	add(positiveRate("thruster.emissionRate", c.Thruster.EmissionRate))
	add(c.Thruster.Particle.validate("thruster.particle"))

	if c.Cannon.FireRate <= 0 {
		add(fmt.Errorf("%w: cannon.fireRate: %w, got %v", ErrInvalidConfig, physics.ErrInvalidFireRate, c.Cannon.FireRate))
	}
	if c.Cannon.RotationSpeed < 0 {
		add(fmt.Errorf("%w: cannon.rotationSpeed: %w, got %v", ErrInvalidConfig, physics.ErrInvalidRotationSpeed, c.Cannon.RotationSpeed))
	}
	add(nonNegative("cannon.bulletSpeed", c.Cannon.BulletSpeed))
	add(positive("cannon.bulletLifetime", c.Cannon.BulletLifetime))
	add(nonNegative("cannon.bulletRadius", c.Cannon.BulletRadius))

	add(positiveRate("trail.emissionRate", c.Trail.EmissionRate))
	add(c.Trail.Particle.validate("trail.particle"))

	add(positiveRate("aimLine.emissionRate", c.AimLine.EmissionRate))
	if c.AimLine.Points < 1 {
		add(fmt.Errorf("%w: aimLine.points must be at least 1, got %d", ErrInvalidConfig, c.AimLine.Points))
	}
	add(positive("aimLine.length", c.AimLine.Length))
	if _, err := ParseHexColor(c.AimLine.Color); err != nil {
		add(fmt.Errorf("aimLine.color: %w", err))
	}

	add(wrap("enemy", c.EnemyStats().Validate()))

	if c.Simulation.TickRate <= 0 {
		add(fmt.Errorf("%w: simulation.tickRate must be positive, got %d", ErrInvalidConfig, c.Simulation.TickRate))
	}
	add(nonNegative("simulation.duration", c.Simulation.Duration))
	add(positive("display.pixelsPerUnit", c.Display.PixelsPerUnit))

	return errors.Join(errs...)
}

func (p ParticleConfig) validate(prefix string) error {
	var errs []error
	if p.SizeMin < 0 || p.SizeMax < p.SizeMin {
		errs = append(errs, fmt.Errorf("%w: %s size range [%v, %v]", ErrInvalidConfig, prefix, p.SizeMin, p.SizeMax))
	}
	if p.SpreadAngle < 0 {
		errs = append(errs, fmt.Errorf("%w: %s.spreadAngle must not be negative, got %v", ErrInvalidConfig, prefix, p.SpreadAngle))
	}
	if p.SpeedVariation < 0 || p.LifetimeVariation < 0 || p.PositionJitter < 0 {
		errs = append(errs, fmt.Errorf("%w: %s variations must not be negative", ErrInvalidConfig, prefix))
	}
	if p.Lifetime <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s.lifetime must be positive, got %v", ErrInvalidConfig, prefix, p.Lifetime))
	}
	if _, err := ParseHexColor(p.Color); err != nil {
		errs = append(errs, fmt.Errorf("%s.color: %w", prefix, err))
	}
	return errors.Join(errs...)
}

func wrap(prefix string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, prefix, err)
}

func positiveRate(key string, rate float64) error {
	if rate > 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %w, got %v", ErrInvalidConfig, key, effect.ErrInvalidRate, rate)
}

func positive(key string, value float64) error {
	if value > 0 {
		return nil
	}
	return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, key, value)
}

func nonNegative(key string, value float64) error {
	if value >= 0 {
		return nil
	}
	return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, key, value)
}
