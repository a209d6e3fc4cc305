// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gunship/pkg/effect"
	"github.com/opd-ai/go-gunship/pkg/entity"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

// sprite is one drawn entity or effect
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	seen bool
}

// Z layers, drawn lowest first
const (
	layerEffects     = 1
	layerEnemies     = 2
	layerProjectiles = 3
	layerShip        = 4
)

// EngoRenderer implements entity.Renderer using the Engo game engine. It is
// also the world's effect sink: every spawned effect becomes a sprite that
// drifts and fades until the arena expires it.
type EngoRenderer struct {
	renderSystem *common.RenderSystem
	camera       *CameraSystem
	assets       *AssetManager

	sprites map[entity.ID]*sprite
	effects map[effect.Handle]*sprite
	arena   *effect.Arena
}

// NewEngoRenderer creates a renderer drawing through renderSystem. A nil
// renderSystem keeps the sprites without drawing them.
func NewEngoRenderer(renderSystem *common.RenderSystem, camera *CameraSystem, assets *AssetManager) *EngoRenderer {
	if assets == nil {
		assets = NewAssetManager()
	}
	return &EngoRenderer{
		renderSystem: renderSystem,
		camera:       camera,
		assets:       assets,
		sprites:      make(map[entity.ID]*sprite),
		effects:      make(map[effect.Handle]*sprite),
		arena:        effect.NewArena(),
	}
}

// Clear implements entity.Renderer. Sprites not rendered again before
// Present are dropped.
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Present implements entity.Renderer
func (r *EngoRenderer) Present() {
	for id, s := range r.sprites {
		if !s.seen {
			r.remove(s)
			delete(r.sprites, id)
		}
	}
	r.arena.Each(func(l *effect.Live) {
		if s, ok := r.effects[l.Handle]; ok {
			r.place(s, l.Position, l.Request.Size, 0)
			s.Color = EffectColor(l.Request, l.Alpha)
		}
	})
}

// RenderShip implements entity.Renderer
func (r *EngoRenderer) RenderShip(ship *entity.Ship) {
	s := r.getOrCreate(ship.GetID(), SpriteShip, layerShip)
	s.Color = r.assets.ShipColor()
	r.place(s, ship.Position, ship.Collider.Radius*2, ship.Rotation)
}

// RenderEnemy implements entity.Renderer
func (r *EngoRenderer) RenderEnemy(enemy *entity.Enemy) {
	s := r.getOrCreate(enemy.GetID(), SpriteEnemy, layerEnemies)
	s.Color = r.assets.EnemyColor(enemy.InRange)
	r.place(s, enemy.Position, enemy.Collider.Radius*2, 0)
	if enemy.FlipX {
		// a negative scale mirrors around the left edge
		s.Scale.X = -s.Scale.X
		s.Position.X += s.Width
	}
}

// RenderProjectile implements entity.Renderer
func (r *EngoRenderer) RenderProjectile(projectile *entity.Projectile) {
	s := r.getOrCreate(projectile.GetID(), SpriteProjectile, layerProjectiles)
	s.Color = r.assets.ProjectileColor()
	r.place(s, projectile.Position, projectile.Collider.Radius*2, projectile.Heading())
}

// Spawn implements engine.EffectSink
func (r *EngoRenderer) Spawn(req effect.SpawnRequest) effect.Handle {
	h := r.arena.Spawn(req)
	s := r.newSprite(SpriteParticle, layerEffects, EffectColor(req, 1))
	r.place(s, req.Position, req.Size, 0)
	r.effects[h] = s
	return h
}

// Tick implements engine.EffectSink
func (r *EngoRenderer) Tick(dt float64) []effect.Handle {
	expired := r.arena.Tick(dt)
	for _, h := range expired {
		if s, ok := r.effects[h]; ok {
			r.remove(s)
			delete(r.effects, h)
		}
	}
	return expired
}

// Remove implements engine.EffectSink
func (r *EngoRenderer) Remove(h effect.Handle) bool {
	if s, ok := r.effects[h]; ok {
		r.remove(s)
		delete(r.effects, h)
	}
	return r.arena.Remove(h)
}

// Sprites returns the number of entity sprites being drawn
func (r *EngoRenderer) Sprites() int {
	return len(r.sprites)
}

// Effects returns the number of effect sprites being drawn
func (r *EngoRenderer) Effects() int {
	return len(r.effects)
}

// getOrCreate returns the sprite for id, creating it on first sight
func (r *EngoRenderer) getOrCreate(id entity.ID, kind SpriteKind, layer float32) *sprite {
	s, exists := r.sprites[id]
	if !exists {
		s = r.newSprite(kind, layer, color.White)
		r.sprites[id] = s
	}
	s.seen = true
	return s
}

func (r *EngoRenderer) newSprite(kind SpriteKind, layer float32, tint color.Color) *sprite {
	s := &sprite{
		BasicEntity: ecs.NewBasic(),
		RenderComponent: common.RenderComponent{
			Drawable: r.assets.Sprite(kind),
			Color:    tint,
			Scale:    engo.Point{X: 1, Y: 1},
		},
	}
	s.SetZIndex(layer)
	if r.renderSystem != nil {
		r.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	return s
}

// place centers s on pos with a side of size world units. Textures are
// scaled to that side; shapes fill the space component.
func (r *EngoRenderer) place(s *sprite, pos physics.Vector2D, size, heading float64) {
	screen := r.camera.WorldToScreen(pos)
	side := float32(size * r.camera.Scale())
	s.Width = side
	s.Height = side
	s.Scale = engo.Point{X: 1, Y: 1}
	if w := s.Drawable.Width(); w > 0 {
		s.Scale = engo.Point{X: side / w, Y: side / w}
	}
	s.Rotation = ScreenRotation(heading)
	s.SetCenter(engo.Point{X: float32(screen.X), Y: float32(screen.Y)})
}

func (r *EngoRenderer) remove(s *sprite) {
	if r.renderSystem != nil {
		r.renderSystem.Remove(s.BasicEntity)
	}
}
