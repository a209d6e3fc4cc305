// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func vectorsEqual(a, b Vector2D) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y)
}

func TestVector2D_Arithmetic(t *testing.T) {
	a := Vector2D{X: 3, Y: 4}
	b := Vector2D{X: 1, Y: -2}

	if got := a.Add(b); got != (Vector2D{X: 4, Y: 2}) {
		t.Errorf("Add() = %v, want {4 2}", got)
	}
	if got := a.Sub(b); got != (Vector2D{X: 2, Y: 6}) {
		t.Errorf("Sub() = %v, want {2 6}", got)
	}
	if got := a.Scale(-2); got != (Vector2D{X: -6, Y: -8}) {
		t.Errorf("Scale() = %v, want {-6 -8}", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot() = %v, want -5", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
	if got := a.LengthSquared(); got != 25 {
		t.Errorf("LengthSquared() = %v, want 25", got)
	}
	if got := a.Distance(Vector2D{}); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestVector2D_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector2D
		expected Vector2D
	}{
		{name: "axis", v: Vector2D{X: 0, Y: 7}, expected: Vector2D{X: 0, Y: 1}},
		{name: "diagonal", v: Vector2D{X: 3, Y: 4}, expected: Vector2D{X: 0.6, Y: 0.8}},
		{name: "zero_vector", v: Vector2D{}, expected: Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Normalize(); !vectorsEqual(got, tt.expected) {
				t.Errorf("Normalize() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestVector2D_Rotate(t *testing.T) {
	v := Vector2D{X: 1, Y: 0}

	if got := v.Rotate(math.Pi / 2); !vectorsEqual(got, Vector2D{X: 0, Y: 1}) {
		t.Errorf("Rotate(pi/2) = %v, want {0 1}", got)
	}
	if got := v.RotateDegrees(180); !vectorsEqual(got, Vector2D{X: -1, Y: 0}) {
		t.Errorf("RotateDegrees(180) = %v, want {-1 0}", got)
	}
	if got := v.RotateDegrees(-90); !vectorsEqual(got, Vector2D{X: 0, Y: -1}) {
		t.Errorf("RotateDegrees(-90) = %v, want {0 -1}", got)
	}
}

func TestFacing(t *testing.T) {
	tests := []struct {
		heading  float64
		expected Vector2D
	}{
		{heading: 0, expected: Vector2D{X: 0, Y: 1}},
		{heading: 90, expected: Vector2D{X: -1, Y: 0}},
		{heading: 180, expected: Vector2D{X: 0, Y: -1}},
		{heading: 270, expected: Vector2D{X: 1, Y: 0}},
		{heading: -90, expected: Vector2D{X: 1, Y: 0}},
	}

	for _, tt := range tests {
		if got := Facing(tt.heading); !vectorsEqual(got, tt.expected) {
			t.Errorf("Facing(%v) = %v, want %v", tt.heading, got, tt.expected)
		}
	}
}

func TestFromAngle(t *testing.T) {
	got := FromAngle(math.Pi/2, 3)
	if !vectorsEqual(got, Vector2D{X: 0, Y: 3}) {
		t.Errorf("FromAngle(pi/2, 3) = %v, want {0 3}", got)
	}
	if angle := got.Angle(); !approxEqual(angle, math.Pi/2) {
		t.Errorf("Angle() = %v, want pi/2", angle)
	}
}
