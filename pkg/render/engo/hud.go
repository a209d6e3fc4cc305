// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gunship/pkg/engine"
)

// HUDSystem draws the ship status and a feed of recent gameplay messages
type HUDSystem struct {
	renderSystem *common.RenderSystem
	font         *common.Font
	text         *sprite

	snapshot    engine.Snapshot
	hasSnapshot bool

	messages    []string
	maxMessages int
}

// NewHUDSystem creates a HUD drawing through renderSystem. Without a font
// the HUD keeps its text but draws nothing.
func NewHUDSystem(renderSystem *common.RenderSystem, font *common.Font) *HUDSystem {
	return &HUDSystem{
		renderSystem: renderSystem,
		font:         font,
		maxMessages:  6,
	}
}

// Priority draws the HUD after the camera has settled
func (hud *HUDSystem) Priority() int { return hudPriority }

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the HUD text entity
func (hud *HUDSystem) Update(dt float32) {
	if hud.font == nil || hud.renderSystem == nil {
		return
	}
	if hud.text == nil {
		hud.text = &sprite{BasicEntity: ecs.NewBasic()}
		hud.text.Scale = engo.Point{X: 1, Y: 1}
		hud.text.Color = color.White
		hud.text.SetShader(common.TextHUDShader)
		hud.text.SetZIndex(1000)
		hud.text.Position = engo.Point{X: 10, Y: 10}
		hud.renderSystem.Add(&hud.text.BasicEntity, &hud.text.RenderComponent, &hud.text.SpaceComponent)
	}
	hud.text.Drawable = common.Text{
		Font:        hud.font,
		Text:        strings.Join(hud.Lines(), "\n"),
		LineSpacing: 0.2,
	}
}

// UpdateSnapshot sets the world state shown in the status panel
func (hud *HUDSystem) UpdateSnapshot(s engine.Snapshot) {
	hud.snapshot = s
	hud.hasSnapshot = true
}

// AddMessage appends a line to the message feed
func (hud *HUDSystem) AddMessage(message string) {
	hud.messages = append(hud.messages, message)
	if len(hud.messages) > hud.maxMessages {
		hud.messages = hud.messages[len(hud.messages)-hud.maxMessages:]
	}
}

// Messages returns the current message feed, oldest first
func (hud *HUDSystem) Messages() []string {
	return hud.messages
}

// Lines returns the HUD text, status panel first
func (hud *HUDSystem) Lines() []string {
	var lines []string
	if hud.hasSnapshot {
		s := hud.snapshot
		boost := ""
		if s.Boosting {
			boost = " BOOST"
		}
		lines = append(lines,
			fmt.Sprintf("Speed: %.1f%s", s.ShipSpeed, boost),
			fmt.Sprintf("Heading: %.0f  Turret: %.0f", s.ShipHeading, s.CannonHeading),
			fmt.Sprintf("Enemies: %d (%d alerted)", s.Enemies, s.EnemiesAlert),
			fmt.Sprintf("Bullets: %d", s.Projectiles),
			fmt.Sprintf("Time: %.1fs  %s", s.Now, s.Status),
		)
	}
	if len(hud.messages) > 0 {
		lines = append(lines, "")
		lines = append(lines, hud.messages...)
	}
	return lines
}
