package entity

// Renderer handles rendering game entities
type Renderer interface {
	RenderShip(ship *Ship)
	RenderEnemy(enemy *Enemy)
	RenderProjectile(projectile *Projectile)
	Clear()
	Present()
}
