// pkg/render/engo/scene.go
package engo

import (
	"bytes"
	"context"
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-gunship/pkg/config"
	"github.com/opd-ai/go-gunship/pkg/engine"
	"github.com/opd-ai/go-gunship/pkg/event"
	"github.com/opd-ai/go-gunship/pkg/logging"
)

// GameScene runs the gunship world inside engo. The world is stepped once
// per frame with the frame's delta time.
type GameScene struct {
	cfg    *config.GameConfig
	logger *logging.Logger
	ctx    context.Context

	eventBus      *event.Bus
	subscriptions []*event.Subscription

	// Set up in Setup
	world    *engine.World
	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem
	font     *common.Font
}

// NewGameScene creates a new game scene
func NewGameScene(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{
		cfg:      cfg,
		logger:   logger,
		ctx:      ctx,
		eventBus: event.NewEventBus(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// hudFontURL is the name the HUD font is registered under
const hudFontURL = "goregular.ttf"

// Preload registers the HUD font (required by Engo)
func (scene *GameScene) Preload() {
	if err := engo.Files.LoadReaderData(hudFontURL, bytes.NewReader(goregular.TTF)); err != nil {
		scene.logger.Error(scene.ctx, "Failed to load HUD font", err)
	}
}

// Setup builds the systems and the world (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	w, ok := u.(*ecs.World)
	if !ok {
		panic(fmt.Sprintf("GameScene: unexpected updater %T", u))
	}
	common.SetBackground(color.Black)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	w.AddSystem(renderSystem)

	assets := NewAssetManager()
	if err := assets.LoadAssets(); err != nil {
		panic("Failed to load assets: " + err.Error())
	}

	display := scene.cfg.Display
	scene.camera = NewCameraSystem(display.PixelsPerUnit, engo.GameWidth(), engo.GameHeight())
	scene.input = NewInputSystem(scene.camera)
	scene.renderer = NewEngoRenderer(renderSystem, scene.camera, assets)
	if scene.font == nil {
		scene.font = scene.loadFont()
	}
	scene.hud = NewHUDSystem(renderSystem, scene.font)

	if err := scene.setupWorld(); err != nil {
		panic("Failed to create world: " + err.Error())
	}

	w.AddSystem(scene.input)
	w.AddSystem(&simulationSystem{scene: scene})
	w.AddSystem(scene.camera)
	w.AddSystem(scene.hud)

	scene.world.Start()
}

// setupWorld creates the world drawing into the scene's renderer
func (scene *GameScene) setupWorld() error {
	world, err := engine.NewWorld(scene.cfg, scene.renderer,
		engine.WithRenderer(scene.renderer),
		engine.WithEventBus(scene.eventBus),
		engine.WithLogger(scene.logger),
		engine.WithContext(scene.ctx),
	)
	if err != nil {
		return err
	}
	scene.world = world
	scene.camera.SetTarget(world.Ship.Position)
	scene.subscribeToEvents()
	return nil
}

// subscribeToEvents feeds notable gameplay events into the HUD
func (scene *GameScene) subscribeToEvents() {
	messages := map[event.Type]func(event.Event) string{
		event.EnemyAlerted:    enemyMessage("Enemy %d spotted you"),
		event.EnemyLostTarget: enemyMessage("Enemy %d lost track"),
		event.EnemyContact:    enemyMessage("Enemy %d made contact"),
		event.GameEnded:       func(event.Event) string { return "Game over" },
	}

	for eventType, format := range messages {
		sub := scene.eventBus.Subscribe(eventType, func(e event.Event) {
			if msg := format(e); msg != "" {
				scene.hud.AddMessage(msg)
			}
		})
		scene.subscriptions = append(scene.subscriptions, sub)
	}
}

func enemyMessage(format string) func(event.Event) string {
	return func(e event.Event) string {
		if ee, ok := e.(*event.EnemyEvent); ok {
			return fmt.Sprintf(format, ee.EnemyID)
		}
		return ""
	}
}

// loadFont builds the HUD font from the preloaded data. Without it the HUD
// draws nothing.
func (scene *GameScene) loadFont() *common.Font {
	font := &common.Font{URL: hudFontURL, FG: color.White, Size: 16}
	if err := font.CreatePreloaded(); err != nil {
		scene.logger.Warn(scene.ctx, "HUD font unavailable", "error", err.Error())
		return nil
	}
	return font
}

// SetFont overrides the font of the HUD. It must be called before Setup.
func (scene *GameScene) SetFont(font *common.Font) {
	scene.font = font
}

// World returns the simulated world, nil before Setup
func (scene *GameScene) World() *engine.World {
	return scene.world
}

// Exit stops the world and drops the event subscriptions (required by Engo)
func (scene *GameScene) Exit() {
	if scene.world != nil {
		scene.world.Stop()
	}
	for _, sub := range scene.subscriptions {
		sub.Cancel()
	}
	scene.subscriptions = nil
}

// simulationSystem steps the world with the sampled input
type simulationSystem struct {
	scene *GameScene
}

func (s *simulationSystem) Priority() int { return simulationPriority }

func (s *simulationSystem) Remove(basic ecs.BasicEntity) {}

func (s *simulationSystem) Update(dt float32) {
	scene := s.scene
	scene.world.Step(scene.input.Input(), float64(dt))

	snapshot := scene.world.Snapshot()
	scene.camera.SetTarget(snapshot.ShipPosition)
	scene.hud.UpdateSnapshot(snapshot)
}
