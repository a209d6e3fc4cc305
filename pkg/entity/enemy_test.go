// pkg/entity/enemy_test.go
package entity

import (
	"errors"
	"testing"

	"github.com/opd-ai/go-gunship/pkg/physics"
)

type stubTarget struct {
	pos    physics.Vector2D
	active bool
}

func (s *stubTarget) GetPosition() physics.Vector2D { return s.pos }
func (s *stubTarget) IsActive() bool                { return s.active }

func defaultEnemyConfig() EnemyConfig {
	return EnemyConfig{
		MoveSpeed:        2,
		DetectionRadius:  5,
		StoppingDistance: 1,
		Radius:           0.5,
	}
}

func TestEnemyConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  EnemyConfig
		wantErr bool
	}{
		{"default", defaultEnemyConfig(), false},
		{"zero everything", EnemyConfig{}, false},
		{"negative speed", EnemyConfig{MoveSpeed: -1, DetectionRadius: 5}, true},
		{"negative detection", EnemyConfig{DetectionRadius: -1}, true},
		{"negative stopping", EnemyConfig{DetectionRadius: 5, StoppingDistance: -1}, true},
		{"stopping beyond detection", EnemyConfig{DetectionRadius: 2, StoppingDistance: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidEnemyConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidEnemyConfig", err)
			}
		})
	}
}

func TestEnemy_Think(t *testing.T) {
	tests := []struct {
		name         string
		target       *stubTarget
		wantVelocity physics.Vector2D
		wantInRange  bool
		wantFlipX    bool
	}{
		{"chase right", &stubTarget{pos: physics.Vector2D{X: 3}, active: true}, physics.Vector2D{X: 2}, true, false},
		{"chase left", &stubTarget{pos: physics.Vector2D{X: -3}, active: true}, physics.Vector2D{X: -2}, true, true},
		{"at stopping distance", &stubTarget{pos: physics.Vector2D{X: 1}, active: true}, physics.Vector2D{}, true, false},
		{"inside stopping distance", &stubTarget{pos: physics.Vector2D{Y: 0.5}, active: true}, physics.Vector2D{}, true, false},
		{"on detection edge", &stubTarget{pos: physics.Vector2D{Y: -5}, active: true}, physics.Vector2D{Y: -2}, true, false},
		{"out of range", &stubTarget{pos: physics.Vector2D{X: 10}, active: true}, physics.Vector2D{}, false, false},
		{"inactive target", &stubTarget{pos: physics.Vector2D{X: 3}, active: false}, physics.Vector2D{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enemy, err := NewEnemy(7, defaultEnemyConfig(), physics.Vector2D{}, tt.target)
			if err != nil {
				t.Fatalf("NewEnemy() error = %v", err)
			}

			enemy.Think()

			if !near(enemy.Velocity.X, tt.wantVelocity.X) || !near(enemy.Velocity.Y, tt.wantVelocity.Y) {
				t.Errorf("Velocity = %v, want %v", enemy.Velocity, tt.wantVelocity)
			}
			if enemy.InRange != tt.wantInRange {
				t.Errorf("InRange = %v, want %v", enemy.InRange, tt.wantInRange)
			}
			if enemy.FlipX != tt.wantFlipX {
				t.Errorf("FlipX = %v, want %v", enemy.FlipX, tt.wantFlipX)
			}
		})
	}
}

func TestEnemy_NilTargetIdles(t *testing.T) {
	enemy, err := NewEnemy(7, defaultEnemyConfig(), physics.Vector2D{X: 4, Y: 4}, nil)
	if err != nil {
		t.Fatalf("NewEnemy() error = %v", err)
	}

	enemy.Update(1)

	if enemy.Position != enemy.Home {
		t.Errorf("Position = %v, want to stay at %v", enemy.Position, enemy.Home)
	}
	if enemy.InRange {
		t.Error("InRange = true without a target")
	}
}

func TestEnemy_UpdateClosesInAndStops(t *testing.T) {
	target := &stubTarget{pos: physics.Vector2D{X: 4}, active: true}
	enemy, err := NewEnemy(7, defaultEnemyConfig(), physics.Vector2D{}, target)
	if err != nil {
		t.Fatalf("NewEnemy() error = %v", err)
	}

	enemy.Update(0.5)
	if !near(enemy.Position.X, 1) {
		t.Fatalf("Position.X = %v, want 1", enemy.Position.X)
	}
	if enemy.GetCollider().Center != enemy.Position {
		t.Error("collider did not follow the enemy")
	}

	for i := 0; i < 10; i++ {
		enemy.Update(0.5)
	}
	if !near(enemy.Position.X, 3) {
		t.Errorf("Position.X = %v, want to halt at the stopping distance", enemy.Position.X)
	}
}

func TestEnemy_FlipXHeldWhenMovingVertically(t *testing.T) {
	target := &stubTarget{pos: physics.Vector2D{X: -3}, active: true}
	enemy, err := NewEnemy(7, defaultEnemyConfig(), physics.Vector2D{}, target)
	if err != nil {
		t.Fatalf("NewEnemy() error = %v", err)
	}
	enemy.Think()

	target.pos = physics.Vector2D{Y: 3}
	enemy.Think()

	if !enemy.FlipX {
		t.Error("FlipX reset by purely vertical movement")
	}
}

func TestEnemy_DetectionArea(t *testing.T) {
	enemy, err := NewEnemy(7, defaultEnemyConfig(), physics.Vector2D{X: 1, Y: 2}, nil)
	if err != nil {
		t.Fatalf("NewEnemy() error = %v", err)
	}

	area := enemy.DetectionArea()
	if area.Center != enemy.Position || area.Radius != 5 {
		t.Errorf("DetectionArea() = %+v, want radius 5 at %v", area, enemy.Position)
	}
	if !area.Contains(physics.Vector2D{X: 1, Y: 7}) {
		t.Error("detection edge not contained")
	}
}
