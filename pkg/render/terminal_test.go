package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opd-ai/go-gunship/pkg/effect"
	"github.com/opd-ai/go-gunship/pkg/entity"
	"github.com/opd-ai/go-gunship/pkg/physics"
)

// TestNewTerminalRenderer tests the creation of a new terminal renderer
func TestNewTerminalRenderer_CreatesValidRenderer_WithCorrectDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		scale  float64
	}{
		{"small renderer", 10, 5, 1.0},
		{"medium renderer", 80, 24, 0.5},
		{"large renderer", 120, 40, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewTerminalRenderer(tt.width, tt.height, tt.scale)

			if renderer == nil {
				t.Fatal("NewTerminalRenderer returned nil")
			}
			if renderer.width != tt.width || renderer.height != tt.height {
				t.Errorf("expected %dx%d, got %dx%d", tt.width, tt.height, renderer.width, renderer.height)
			}
			if renderer.scale != tt.scale {
				t.Errorf("expected scale %f, got %f", tt.scale, renderer.scale)
			}
			if len(renderer.buffer) != tt.height {
				t.Errorf("expected buffer height %d, got %d", tt.height, len(renderer.buffer))
			}
			for i, row := range renderer.buffer {
				if len(row) != tt.width {
					t.Errorf("row %d: expected width %d, got %d", i, tt.width, len(row))
				}
			}
			if renderer.centerPos != (physics.Vector2D{}) {
				t.Errorf("expected center at origin, got %v", renderer.centerPos)
			}
		})
	}
}

func TestWorldToScreen_ConvertsCoordinates_Correctly(t *testing.T) {
	renderer := NewTerminalRenderer(80, 24, 0.5) // two cells per world unit

	tests := []struct {
		name      string
		centerPos physics.Vector2D
		worldPos  physics.Vector2D
		expectedX int
		expectedY int
	}{
		{"origin", physics.Vector2D{}, physics.Vector2D{}, 40, 12},
		{"up and right", physics.Vector2D{}, physics.Vector2D{X: 5, Y: 3}, 50, 6},
		{"down and left", physics.Vector2D{}, physics.Vector2D{X: -5, Y: -3}, 30, 18},
		{"center offset", physics.Vector2D{X: 10, Y: 2}, physics.Vector2D{X: 10, Y: 2}, 40, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer.SetCenter(tt.centerPos)
			x, y := renderer.worldToScreen(tt.worldPos)

			if x != tt.expectedX || y != tt.expectedY {
				t.Errorf("worldToScreen(%v) = (%d, %d), want (%d, %d)", tt.worldPos, x, y, tt.expectedX, tt.expectedY)
			}
		})
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '^'},
		{44, '^'},
		{46, '<'},
		{90, '<'},
		{180, 'v'},
		{270, '>'},
		{350, '^'},
		{-90, '>'},
	}

	for _, tt := range tests {
		if got := headingGlyph(tt.heading); got != tt.want {
			t.Errorf("headingGlyph(%v) = %c, want %c", tt.heading, got, tt.want)
		}
	}
}

func TestTerminalRenderer_DrawsFrame(t *testing.T) {
	renderer := NewTerminalRenderer(20, 10, 1.0)
	var out bytes.Buffer
	renderer.SetOutput(&out)
	renderer.SetStatus("speed 0.0")

	ship := &entity.Ship{BaseEntity: entity.BaseEntity{Position: physics.Vector2D{}, Rotation: 0}}
	chasing := &entity.Enemy{BaseEntity: entity.BaseEntity{Position: physics.Vector2D{X: 3}}, InRange: true}
	idle := &entity.Enemy{BaseEntity: entity.BaseEntity{Position: physics.Vector2D{X: -3}}}
	bullet := &entity.Projectile{BaseEntity: entity.BaseEntity{Position: physics.Vector2D{Y: 2}}}

	renderer.Spawn(effect.SpawnRequest{Kind: effect.KindThruster, Position: physics.Vector2D{Y: -2}, Lifetime: 1})
	renderer.Spawn(effect.SpawnRequest{Kind: effect.KindAimLine, Position: physics.Vector2D{X: 3}, Lifetime: 1})

	renderer.Clear()
	renderer.RenderEnemy(chasing)
	renderer.RenderEnemy(idle)
	renderer.RenderProjectile(bullet)
	renderer.RenderShip(ship)
	renderer.Present()

	cells := map[[2]int]rune{
		{10, 5}: '^',
		{13, 5}: 'E', // drawn over the aim line point
		{7, 5}:  'e',
		{10, 3}: '*',
		{10, 7}: '+',
	}
	for pos, want := range cells {
		if got := renderer.buffer[pos[1]][pos[0]]; got != want {
			t.Errorf("cell (%d, %d) = %q, want %q", pos[0], pos[1], got, want)
		}
	}

	frame := out.String()
	if strings.Contains(frame, "\033[") {
		t.Error("frame written to a custom output contains terminal control codes")
	}
	lines := strings.Split(strings.TrimRight(frame, "\n"), "\n")
	if len(lines) != 13 {
		t.Fatalf("frame has %d lines, want 13", len(lines))
	}
	if lines[0] != "+"+strings.Repeat("-", 20)+"+" {
		t.Errorf("top border = %q", lines[0])
	}
	if lines[12] != "speed 0.0" {
		t.Errorf("status line = %q", lines[12])
	}
}

func TestTerminalRenderer_EffectsExpire(t *testing.T) {
	renderer := NewTerminalRenderer(10, 5, 1.0)
	renderer.Spawn(effect.SpawnRequest{Kind: effect.KindTrail, Lifetime: 0.5})

	if expired := renderer.Tick(0.5); len(expired) != 1 {
		t.Fatalf("Tick() expired %d effects, want 1", len(expired))
	}

	renderer.Clear()
	for y := range renderer.buffer {
		for x, c := range renderer.buffer[y] {
			if c != ' ' {
				t.Errorf("cell (%d, %d) = %q after expiry", x, y, c)
			}
		}
	}
}

func TestTerminalRenderer_OffscreenIgnored(t *testing.T) {
	renderer := NewTerminalRenderer(10, 5, 1.0)
	renderer.Clear()
	renderer.RenderProjectile(&entity.Projectile{BaseEntity: entity.BaseEntity{Position: physics.Vector2D{X: 100, Y: -100}}})

	for y := range renderer.buffer {
		for x, c := range renderer.buffer[y] {
			if c != ' ' {
				t.Errorf("cell (%d, %d) = %q for an offscreen projectile", x, y, c)
			}
		}
	}
}
