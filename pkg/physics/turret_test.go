// pkg/physics/turret_test.go
package physics

import (
	"errors"
	"testing"
)

func TestNewTurretAimModel_Validation(t *testing.T) {
	tests := []struct {
		name    string
		config  TurretConfig
		wantErr error
	}{
		{name: "zero_fire_rate", config: TurretConfig{RotationSpeed: 5, FireRate: 0}, wantErr: ErrInvalidFireRate},
		{name: "negative_fire_rate", config: TurretConfig{RotationSpeed: 5, FireRate: -2}, wantErr: ErrInvalidFireRate},
		{name: "negative_rotation", config: TurretConfig{RotationSpeed: -1, FireRate: 5}, wantErr: ErrInvalidRotationSpeed},
		{name: "valid", config: TurretConfig{RotationSpeed: 0, FireRate: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTurretAimModel(tt.config, Vector2D{}, 0)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("NewTurretAimModel() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("NewTurretAimModel() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAimHeading(t *testing.T) {
	mount := Vector2D{X: 1, Y: 1}

	tests := []struct {
		name          string
		target        Vector2D
		current       float64
		rotationSpeed float64
		dt            float64
		want          float64
	}{
		{name: "snap_to_right", target: Vector2D{X: 5, Y: 1}, current: 0, rotationSpeed: 10, dt: 1, want: 270},
		{name: "snap_to_up", target: Vector2D{X: 1, Y: 9}, current: 45, rotationSpeed: 100, dt: 1, want: 0},
		{name: "half_way_left", target: Vector2D{X: -3, Y: 1}, current: 0, rotationSpeed: 5, dt: 0.1, want: 45},
		{name: "shortest_path_across_zero", target: Vector2D{X: 1, Y: 9}, current: 300, rotationSpeed: 5, dt: 0.1, want: 330},
		{name: "zero_rotation_speed", target: Vector2D{X: 1, Y: 9}, current: 120, rotationSpeed: 0, dt: 0.1, want: 120},
		{name: "zero_dt", target: Vector2D{X: 5, Y: 1}, current: 120, rotationSpeed: 5, dt: 0, want: 120},
		{name: "target_on_mount", target: mount, current: 77, rotationSpeed: 5, dt: 1, want: 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AimHeading(mount, tt.target, tt.current, DefaultMountOffset, tt.rotationSpeed, tt.dt)
			if !approxEqual(got, tt.want) {
				t.Errorf("AimHeading() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTurretAimModel_AimStraightAheadWithoutRotation(t *testing.T) {
	turret, err := NewTurretAimModel(TurretConfig{RotationSpeed: 0, FireRate: 1, MountOffset: DefaultMountOffset}, Vector2D{}, 0)
	if err != nil {
		t.Fatalf("NewTurretAimModel() error = %v", err)
	}

	if got := turret.Aim(Vector2D{X: 0, Y: 10}, 0.016); got != 0 {
		t.Errorf("Aim() = %v, want 0", got)
	}
	if got := turret.Aim(Vector2D{X: 10, Y: 0}, 0.016); got != 0 {
		t.Errorf("Aim() without rotation speed moved to %v", got)
	}
}

func TestTurretAimModel_ConvergesWithoutOvershoot(t *testing.T) {
	turret, err := NewTurretAimModel(TurretConfig{RotationSpeed: 5, FireRate: 1, MountOffset: DefaultMountOffset}, Vector2D{}, 0)
	if err != nil {
		t.Fatalf("NewTurretAimModel() error = %v", err)
	}

	target := Vector2D{X: -10, Y: 0} // heading 90
	previous := DeltaAngle(turret.Heading(), 90)
	for i := 0; i < 200; i++ {
		turret.Aim(target, 0.05)
		remaining := DeltaAngle(turret.Heading(), 90)
		if remaining < 0 || remaining > previous {
			t.Fatalf("step %d: remaining arc %v after %v", i, remaining, previous)
		}
		previous = remaining
	}
	if previous > 1e-6 {
		t.Errorf("turret did not converge, %v degrees left", previous)
	}
}

func TestTurretAimModel_FireGating(t *testing.T) {
	turret, err := NewTurretAimModel(TurretConfig{RotationSpeed: 5, FireRate: 4}, Vector2D{}, 0)
	if err != nil {
		t.Fatalf("NewTurretAimModel() error = %v", err)
	}

	if !turret.CanFire(0) {
		t.Fatal("CanFire(0) = false on a fresh turret")
	}
	if !turret.TryFire(1.0) {
		t.Fatal("TryFire(1.0) = false")
	}
	if got := turret.NextFireTime(); got != 1.25 {
		t.Errorf("NextFireTime() = %v, want 1.25", got)
	}
	if turret.TryFire(1.2) {
		t.Error("TryFire(1.2) = true during cooldown")
	}
	if turret.NextFireTime() != 1.25 {
		t.Error("failed TryFire moved the watermark")
	}
	if !turret.TryFire(1.25) {
		t.Error("TryFire(1.25) = false at the watermark")
	}
}
