// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-gunship/pkg/effect"
	"github.com/opd-ai/go-gunship/pkg/entity"
	"github.com/opd-ai/go-gunship/pkg/logging"
)

// NullRenderer draws nothing. It logs every call at debug level and tracks
// spawned effects so it can stand in for a real front-end.
type NullRenderer struct {
	logger *logging.Logger
	arena  *effect.Arena
}

// NewNullRenderer creates a NullRenderer logging to logger
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger,
		arena:  effect.NewArena(),
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(context.Background(), "Present called", "effects", d.arena.Len())
}

// RenderShip implements entity.Renderer.
func (d *NullRenderer) RenderShip(ship *entity.Ship) {
	ctx := context.Background()
	if ship == nil {
		d.logger.Debug(ctx, "RenderShip called with nil ship")
		return
	}
	d.logger.Debug(ctx, "RenderShip called",
		"ship_id", ship.ID,
		"x", ship.Position.X,
		"y", ship.Position.Y,
		"heading", ship.Rotation,
		"boosting", ship.IsBoosting(),
	)
}

// RenderEnemy implements entity.Renderer.
func (d *NullRenderer) RenderEnemy(enemy *entity.Enemy) {
	ctx := context.Background()
	if enemy == nil {
		d.logger.Debug(ctx, "RenderEnemy called with nil enemy")
		return
	}
	d.logger.Debug(ctx, "RenderEnemy called",
		"enemy_id", enemy.ID,
		"x", enemy.Position.X,
		"y", enemy.Position.Y,
		"in_range", enemy.InRange,
		"flip_x", enemy.FlipX,
	)
}

// RenderProjectile implements entity.Renderer.
func (d *NullRenderer) RenderProjectile(projectile *entity.Projectile) {
	ctx := context.Background()
	if projectile == nil {
		d.logger.Debug(ctx, "RenderProjectile called with nil projectile")
		return
	}
	d.logger.Debug(ctx, "RenderProjectile called",
		"projectile_id", projectile.ID,
		"owner_id", projectile.OwnerID,
		"heading", projectile.Heading(),
	)
}

// Spawn starts tracking an effect.
func (d *NullRenderer) Spawn(req effect.SpawnRequest) effect.Handle {
	h := d.arena.Spawn(req)
	d.logger.Debug(context.Background(), "Spawn called",
		"handle", h,
		"kind", req.Kind.String(),
		"lifetime", req.Lifetime,
	)
	return h
}

// Tick advances the tracked effects and returns the expired handles.
func (d *NullRenderer) Tick(dt float64) []effect.Handle {
	expired := d.arena.Tick(dt)
	if len(expired) > 0 {
		d.logger.Debug(context.Background(), "effects expired", "count", len(expired))
	}
	return expired
}

// Remove drops an effect before it expires.
func (d *NullRenderer) Remove(h effect.Handle) bool {
	removed := d.arena.Remove(h)
	if removed {
		d.logger.Debug(context.Background(), "effect removed", "handle", h)
	}
	return removed
}

// Effects returns the number of live effects
func (d *NullRenderer) Effects() int {
	return d.arena.Len()
}
