// pkg/engine/input.go
package engine

import (
	"github.com/opd-ai/go-gunship/pkg/effect"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

// Input is the control state sampled once per step. Pointer is in world
// coordinates.
type Input struct {
	Forward   bool
	Back      bool
	Boost     bool
	TurnLeft  bool
	TurnRight bool
	Fire      bool
	Aim       bool
	Pointer   physics.Vector2D
}

// Flight returns the subset of the input the flight model reads
func (in Input) Flight() physics.FlightInput {
	return physics.FlightInput{
		Forward:   in.Forward,
		Back:      in.Back,
		Boost:     in.Boost,
		TurnLeft:  in.TurnLeft,
		TurnRight: in.TurnRight,
	}
}

// EffectSink receives the visual effects the world spawns. Tick advances the
// sink's own effects and returns the handles that expired. Remove drops an
// effect early and reports whether it was still live.
type EffectSink interface {
	Spawn(req effect.SpawnRequest) effect.Handle
	Tick(dt float64) []effect.Handle
	Remove(h effect.Handle) bool
}

// ArenaSink is an EffectSink that only tracks effect lifetimes
type ArenaSink struct {
	*effect.Arena
}

// NewArenaSink creates a sink backed by a fresh arena
func NewArenaSink() *ArenaSink {
	return &ArenaSink{Arena: effect.NewArena()}
}
