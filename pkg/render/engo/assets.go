// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gunship/pkg/effect"
)

// SpriteKind names the drawables the renderer uses
type SpriteKind int

const (
	SpriteShip SpriteKind = iota
	SpriteEnemy
	SpriteProjectile
	SpriteParticle
)

// shipPattern is the hull, nose up
var shipPattern = [][]int{
	{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
	{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1},
	{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
}

// enemyPattern is a round drone
var enemyPattern = [][]int{
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
	{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 1},
	{1, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 0, 1, 1, 1, 1, 1, 1, 0, 1, 1},
	{1, 1, 1, 0, 0, 0, 0, 0, 0, 1, 1, 1},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0},
}

// AssetManager hands out drawables per sprite kind. Until LoadAssets runs
// every kind is drawn as a plain shape, which needs no GL context.
type AssetManager struct {
	sprites map[SpriteKind]common.Drawable

	shipColor       color.Color
	enemyIdleColor  color.Color
	enemyAlertColor color.Color
	projectileColor color.Color
}

// NewAssetManager creates an asset manager with shape drawables
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites: map[SpriteKind]common.Drawable{
			SpriteShip:       common.Triangle{},
			SpriteEnemy:      common.Circle{},
			SpriteProjectile: common.Circle{},
			SpriteParticle:   common.Rectangle{},
		},
		shipColor:       color.RGBA{200, 220, 255, 255},
		enemyIdleColor:  color.RGBA{160, 160, 160, 255},
		enemyAlertColor: color.RGBA{255, 64, 64, 255},
		projectileColor: color.RGBA{255, 255, 128, 255},
	}
}

// LoadAssets replaces the ship and enemy shapes with textures. It must run
// on the render thread.
func (am *AssetManager) LoadAssets() error {
	am.sprites[SpriteShip] = am.createSprite(shipPattern)
	am.sprites[SpriteEnemy] = am.createSprite(enemyPattern)
	return nil
}

// createSprite uploads a pattern as a texture
func (am *AssetManager) createSprite(pattern [][]int) common.Drawable {
	texture := common.NewImageObject(patternImage(pattern))
	return common.NewTextureSingle(texture)
}

// patternImage turns a 0/1 grid into a white-on-transparent image
func patternImage(pattern [][]int) *image.NRGBA {
	height := len(pattern)
	width := 0
	for _, row := range pattern {
		width = max(width, len(row))
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y, row := range pattern {
		for x, pixel := range row {
			if pixel == 1 {
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

// Sprite returns the drawable for kind
func (am *AssetManager) Sprite(kind SpriteKind) common.Drawable {
	if sprite, exists := am.sprites[kind]; exists {
		return sprite
	}
	return am.sprites[SpriteParticle]
}

// ShipColor returns the tint of the player ship
func (am *AssetManager) ShipColor() color.Color {
	return am.shipColor
}

// EnemyColor returns the enemy tint for the given alert state
func (am *AssetManager) EnemyColor(inRange bool) color.Color {
	if inRange {
		return am.enemyAlertColor
	}
	return am.enemyIdleColor
}

// ProjectileColor returns the bullet tint
func (am *AssetManager) ProjectileColor() color.Color {
	return am.projectileColor
}

// EffectColor returns the request's color with its alpha scaled by alpha
func EffectColor(req effect.SpawnRequest, alpha float64) color.NRGBA {
	c := req.Color
	c.A = uint8(float64(c.A)*alpha + 0.5)
	return c
}
