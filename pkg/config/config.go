// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// GUNSHIP_SHIP_MAXSPEED or GUNSHIP_SIMULATION_SEED.
const EnvPrefix = "GUNSHIP"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains every tuning knob of a game session
type GameConfig struct {
	Ship       ShipConfig       `json:"ship" mapstructure:"ship"`
	Thruster   ThrusterConfig   `json:"thruster" mapstructure:"thruster"`
	Cannon     CannonConfig     `json:"cannon" mapstructure:"cannon"`
	Trail      TrailConfig      `json:"trail" mapstructure:"trail"`
	AimLine    AimLineConfig    `json:"aimLine" mapstructure:"aimLine"`
	Enemy      EnemyConfig      `json:"enemy" mapstructure:"enemy"`
	Enemies    []PointConfig    `json:"enemies" mapstructure:"enemies"`
	Simulation SimulationConfig `json:"simulation" mapstructure:"simulation"`
	Display    DisplayConfig    `json:"display" mapstructure:"display"`
}

// PointConfig is a position in world units
type PointConfig struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
}

// ShipConfig contains the player ship's flight tuning
type ShipConfig struct {
	MaxSpeed        float64     `json:"maxSpeed" mapstructure:"maxSpeed"`
	Acceleration    float64     `json:"acceleration" mapstructure:"acceleration"`
	Deceleration    float64     `json:"deceleration" mapstructure:"deceleration"`
	RotationSpeed   float64     `json:"rotationSpeed" mapstructure:"rotationSpeed"`
	BoostMultiplier float64     `json:"boostMultiplier" mapstructure:"boostMultiplier"`
	Radius          float64     `json:"radius" mapstructure:"radius"`
	Start           PointConfig `json:"start" mapstructure:"start"`
	StartHeading    float64     `json:"startHeading" mapstructure:"startHeading"`
}

// ParticleConfig is the sampling recipe of one particle family
type ParticleConfig struct {
	SpreadAngle       float64 `json:"spreadAngle" mapstructure:"spreadAngle"`
	Speed             float64 `json:"speed" mapstructure:"speed"`
	SpeedVariation    float64 `json:"speedVariation" mapstructure:"speedVariation"`
	SizeMin           float64 `json:"sizeMin" mapstructure:"sizeMin"`
	SizeMax           float64 `json:"sizeMax" mapstructure:"sizeMax"`
	Lifetime          float64 `json:"lifetime" mapstructure:"lifetime"`
	LifetimeVariation float64 `json:"lifetimeVariation" mapstructure:"lifetimeVariation"`
	PositionJitter    float64 `json:"positionJitter" mapstructure:"positionJitter"`
	Color             string  `json:"color" mapstructure:"color"`
	Fade              bool    `json:"fade" mapstructure:"fade"`
}

// ThrusterConfig contains the boost exhaust settings
type ThrusterConfig struct {
	EmissionRate   float64        `json:"emissionRate" mapstructure:"emissionRate"`
	EmissionPoints []PointConfig  `json:"emissionPoints" mapstructure:"emissionPoints"`
	Particle       ParticleConfig `json:"particle" mapstructure:"particle"`
}

// CannonConfig contains the turret and bullet settings
type CannonConfig struct {
	RotationSpeed  float64     `json:"rotationSpeed" mapstructure:"rotationSpeed"`
	FireRate       float64     `json:"fireRate" mapstructure:"fireRate"` // shots per second
	MountOffset    float64     `json:"mountOffset" mapstructure:"mountOffset"`
	Mount          PointConfig `json:"mount" mapstructure:"mount"` // ship-local
	BulletSpeed    float64     `json:"bulletSpeed" mapstructure:"bulletSpeed"`
	BulletLifetime float64     `json:"bulletLifetime" mapstructure:"bulletLifetime"`
	BulletRadius   float64     `json:"bulletRadius" mapstructure:"bulletRadius"`
}

// TrailConfig contains the bullet trail settings
type TrailConfig struct {
	EmissionRate float64        `json:"emissionRate" mapstructure:"emissionRate"`
	Particle     ParticleConfig `json:"particle" mapstructure:"particle"`
}

// AimLineConfig contains the aim line settings
type AimLineConfig struct {
	EmissionRate float64 `json:"emissionRate" mapstructure:"emissionRate"`
	Points       int     `json:"points" mapstructure:"points"`
	Length       float64 `json:"length" mapstructure:"length"`
	Size         float64 `json:"size" mapstructure:"size"`
	Color        string  `json:"color" mapstructure:"color"`
}

// EnemyConfig contains the chase AI settings shared by every enemy
type EnemyConfig struct {
	MoveSpeed        float64 `json:"moveSpeed" mapstructure:"moveSpeed"`
	DetectionRadius  float64 `json:"detectionRadius" mapstructure:"detectionRadius"`
	StoppingDistance float64 `json:"stoppingDistance" mapstructure:"stoppingDistance"`
	Radius           float64 `json:"radius" mapstructure:"radius"`
}

// SimulationConfig contains the fixed-step loop settings
type SimulationConfig struct {
	TickRate int     `json:"tickRate" mapstructure:"tickRate"` // steps per second
	Seed     uint64  `json:"seed" mapstructure:"seed"`
	Duration float64 `json:"duration" mapstructure:"duration"` // seconds, headless runs only
}

// DisplayConfig contains the window and camera settings of the client
type DisplayConfig struct {
	Title         string  `json:"title" mapstructure:"title"`
	Width         int     `json:"width" mapstructure:"width"`
	Height        int     `json:"height" mapstructure:"height"`
	PixelsPerUnit float64 `json:"pixelsPerUnit" mapstructure:"pixelsPerUnit"`
	VSync         bool    `json:"vsync" mapstructure:"vsync"`
}

// LoadConfig reads a configuration file on top of the defaults and applies
// GUNSHIP_* environment overrides. An empty path yields the defaults with
// overrides applied.
func LoadConfig(path string) (*GameConfig, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	var config GameConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())
	return v
}

func setDefaults(v *viper.Viper, d *GameConfig) {
	v.SetDefault("ship.maxSpeed", d.Ship.MaxSpeed)
	v.SetDefault("ship.acceleration", d.Ship.Acceleration)
	v.SetDefault("ship.deceleration", d.Ship.Deceleration)
	v.SetDefault("ship.rotationSpeed", d.Ship.RotationSpeed)
	v.SetDefault("ship.boostMultiplier", d.Ship.BoostMultiplier)
	v.SetDefault("ship.radius", d.Ship.Radius)
	v.SetDefault("ship.start.x", d.Ship.Start.X)
	v.SetDefault("ship.start.y", d.Ship.Start.Y)
	v.SetDefault("ship.startHeading", d.Ship.StartHeading)

	v.SetDefault("thruster.emissionRate", d.Thruster.EmissionRate)
	v.SetDefault("thruster.emissionPoints", d.Thruster.EmissionPoints)
	setParticleDefaults(v, "thruster.particle", d.Thruster.Particle)

	v.SetDefault("cannon.rotationSpeed", d.Cannon.RotationSpeed)
	v.SetDefault("cannon.fireRate", d.Cannon.FireRate)
	v.SetDefault("cannon.mountOffset", d.Cannon.MountOffset)
	v.SetDefault("cannon.mount.x", d.Cannon.Mount.X)
	v.SetDefault("cannon.mount.y", d.Cannon.Mount.Y)
	v.SetDefault("cannon.bulletSpeed", d.Cannon.BulletSpeed)
	v.SetDefault("cannon.bulletLifetime", d.Cannon.BulletLifetime)
	v.SetDefault("cannon.bulletRadius", d.Cannon.BulletRadius)

	v.SetDefault("trail.emissionRate", d.Trail.EmissionRate)
	setParticleDefaults(v, "trail.particle", d.Trail.Particle)

	v.SetDefault("aimLine.emissionRate", d.AimLine.EmissionRate)
	v.SetDefault("aimLine.points", d.AimLine.Points)
	v.SetDefault("aimLine.length", d.AimLine.Length)
	v.SetDefault("aimLine.size", d.AimLine.Size)
	v.SetDefault("aimLine.color", d.AimLine.Color)

	v.SetDefault("enemy.moveSpeed", d.Enemy.MoveSpeed)
	v.SetDefault("enemy.detectionRadius", d.Enemy.DetectionRadius)
	v.SetDefault("enemy.stoppingDistance", d.Enemy.StoppingDistance)
	v.SetDefault("enemy.radius", d.Enemy.Radius)
	v.SetDefault("enemies", d.Enemies)

	v.SetDefault("simulation.tickRate", d.Simulation.TickRate)
	v.SetDefault("simulation.seed", d.Simulation.Seed)
	v.SetDefault("simulation.duration", d.Simulation.Duration)

	v.SetDefault("display.title", d.Display.Title)
	v.SetDefault("display.width", d.Display.Width)
	v.SetDefault("display.height", d.Display.Height)
	v.SetDefault("display.pixelsPerUnit", d.Display.PixelsPerUnit)
	v.SetDefault("display.vsync", d.Display.VSync)
}

func setParticleDefaults(v *viper.Viper, prefix string, p ParticleConfig) {
	v.SetDefault(prefix+".spreadAngle", p.SpreadAngle)
	v.SetDefault(prefix+".speed", p.Speed)
	v.SetDefault(prefix+".speedVariation", p.SpeedVariation)
	v.SetDefault(prefix+".sizeMin", p.SizeMin)
	v.SetDefault(prefix+".sizeMax", p.SizeMax)
	v.SetDefault(prefix+".lifetime", p.Lifetime)
	v.SetDefault(prefix+".lifetimeVariation", p.LifetimeVariation)
	v.SetDefault(prefix+".positionJitter", p.PositionJitter)
	v.SetDefault(prefix+".color", p.Color)
	v.SetDefault(prefix+".fade", p.Fade)
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Ship: ShipConfig{
			MaxSpeed:        10,
			Acceleration:    5,
			Deceleration:    3,
			RotationSpeed:   200,
			BoostMultiplier: 1.5,
			Radius:          0.5,
		},
		Thruster: ThrusterConfig{
			EmissionRate:   10,
			EmissionPoints: []PointConfig{{X: 0, Y: -0.5}},
			Particle: ParticleConfig{
				SpreadAngle:       30,
				Speed:             3,
				SpeedVariation:    0.5,
				SizeMin:           0.1,
				SizeMax:           0.3,
				Lifetime:          0.5,
				LifetimeVariation: 0.2,
				PositionJitter:    0.1,
				Color:             "#FFCC4DFF",
				Fade:              true,
			},
		},
		Cannon: CannonConfig{
			RotationSpeed:  5,
			FireRate:       5,
			MountOffset:    -90,
			BulletSpeed:    20,
			BulletLifetime: 1,
			BulletRadius:   0.1,
		},
		Trail: TrailConfig{
			EmissionRate: 10,
			Particle: ParticleConfig{
				Speed:    2,
				SizeMin:  0.1,
				SizeMax:  0.2,
				Lifetime: 0.5,
				Color:    "#FFCC4DB3",
				Fade:     true,
			},
		},
		AimLine: AimLineConfig{
			EmissionRate: 20,
			Points:       20,
			Length:       5,
			Size:         0.05,
			Color:        "#FFFFFF80",
		},
		Enemy: EnemyConfig{
			MoveSpeed:        3,
			DetectionRadius:  5,
			StoppingDistance: 1,
			Radius:           0.5,
		},
		Enemies: []PointConfig{
			{X: 8, Y: 6},
			{X: -7, Y: 5},
			{X: 0, Y: -9},
		},
		Simulation: SimulationConfig{
			TickRate: 60,
			Seed:     1,
			Duration: 10,
		},
		Display: DisplayConfig{
			Title:         "Gunship",
			Width:         1280,
			Height:        720,
			PixelsPerUnit: 32,
			VSync:         true,
		},
	}
}
