// pkg/render/terminal.go
package render

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/opd-ai/go-gunship/pkg/effect"
	"github.com/opd-ai/go-gunship/pkg/entity"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

// effectGlyphs maps effect kinds to the characters drawn for them
var effectGlyphs = map[effect.Kind]rune{
	effect.KindThruster: '+',
	effect.KindTrail:    '.',
	effect.KindAimLine:  ':',
}

// TerminalRenderer provides a simple ASCII-based rendering for terminals.
// World +Y is drawn toward the top of the screen.
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	scale     float64 // world units per character cell
	centerPos physics.Vector2D
	out       io.Writer
	status    string
	arena     *effect.Arena
	clearTTY  bool
}

// NewTerminalRenderer creates a new terminal renderer with the specified dimensions
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		width:    width,
		height:   height,
		buffer:   buffer,
		scale:    scale,
		out:      os.Stdout,
		arena:    effect.NewArena(),
		clearTTY: true,
	}
}

// SetOutput redirects frames to w without terminal control sequences
func (r *TerminalRenderer) SetOutput(w io.Writer) {
	r.out = w
	r.clearTTY = false
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// SetStatus sets the line printed under the frame
func (r *TerminalRenderer) SetStatus(status string) {
	r.status = status
}

// worldToScreen converts world coordinates to screen coordinates
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2)
	screenY := int(float64(r.height)/2 - (pos.Y-r.centerPos.Y)/r.scale)
	return screenX, screenY
}

func (r *TerminalRenderer) plot(pos physics.Vector2D, symbol rune) {
	x, y := r.worldToScreen(pos)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = symbol
	}
}

// Clear implements entity.Renderer. Live effects are painted right away so
// entities drawn afterwards end up on top.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
	r.arena.Each(func(l *effect.Live) {
		if glyph, ok := effectGlyphs[l.Request.Kind]; ok && l.Alpha > 0 {
			r.plot(l.Position, glyph)
		}
	})
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	w := bufio.NewWriter(r.out)
	defer w.Flush()

	if r.clearTTY {
		w.WriteString("\033[H\033[2J")
	}

	border := "+" + strings.Repeat("-", r.width) + "+\n"
	w.WriteString(border)
	for y := range r.buffer {
		w.WriteRune('|')
		w.WriteString(string(r.buffer[y]))
		w.WriteString("|\n")
	}
	w.WriteString(border)

	if r.status != "" {
		w.WriteString(r.status)
		w.WriteRune('\n')
	}
}

// RenderShip implements entity.Renderer. The glyph points along the heading.
func (r *TerminalRenderer) RenderShip(ship *entity.Ship) {
	r.plot(ship.Position, headingGlyph(ship.Rotation))
}

// RenderEnemy implements entity.Renderer
func (r *TerminalRenderer) RenderEnemy(enemy *entity.Enemy) {
	symbol := 'e'
	if enemy.InRange {
		symbol = 'E'
	}
	r.plot(enemy.Position, symbol)
}

// RenderProjectile implements entity.Renderer
func (r *TerminalRenderer) RenderProjectile(projectile *entity.Projectile) {
	r.plot(projectile.Position, '*')
}

// Spawn implements the effect sink of the world
func (r *TerminalRenderer) Spawn(req effect.SpawnRequest) effect.Handle {
	return r.arena.Spawn(req)
}

// Tick implements the effect sink of the world
func (r *TerminalRenderer) Tick(dt float64) []effect.Handle {
	return r.arena.Tick(dt)
}

// Remove implements the effect sink of the world
func (r *TerminalRenderer) Remove(h effect.Handle) bool {
	return r.arena.Remove(h)
}

// headingGlyph picks the arrow closest to heading (0 is up, CCW positive)
func headingGlyph(heading float64) rune {
	glyphs := []rune{'^', '<', 'v', '>'}
	index := int(physics.WrapDegrees(heading+45) / 90)
	return glyphs[index%len(glyphs)]
}
