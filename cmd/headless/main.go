// cmd/headless/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-gunship/pkg/config"
	"github.com/opd-ai/go-gunship/pkg/engine"
	"github.com/opd-ai/go-gunship/pkg/entity"
	"github.com/opd-ai/go-gunship/pkg/event"
	"github.com/opd-ai/go-gunship/pkg/logging"
	"github.com/opd-ai/go-gunship/pkg/pilot"
	"github.com/opd-ai/go-gunship/pkg/render"
)

// renderer is what the world draws into and spawns effects through
type renderer interface {
	entity.Renderer
	engine.EffectSink
}

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithRunID(context.Background(), logging.GenerateRunID())

	configPath := flag.String("config", "", "Path to configuration file (defaults when empty)")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	rendererName := flag.String("renderer", "null", "Renderer type: 'null' or 'terminal'")
	behaviorName := flag.String("behavior", "aggressor", "Pilot behavior: idle, explorer or aggressor")
	duration := flag.Float64("duration", 0, "Simulated seconds (overrides config)")
	realtime := flag.Bool("realtime", false, "Step at the configured tick rate instead of as fast as possible")
	width := flag.Int("width", 80, "Terminal width in cells")
	height := flag.Int("height", 24, "Terminal height in cells")
	scale := flag.Float64("scale", 0.5, "World units per terminal cell")
	flag.Parse()

	if *createDefault {
		if *configPath == "" {
			logger.Error(ctx, "No configuration path given", nil)
			os.Exit(2)
		}
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	gameConfig, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *duration > 0 {
		gameConfig.Simulation.Duration = *duration
	}

	behavior, err := pilot.ParseBehavior(*behaviorName)
	if err != nil {
		logger.Error(ctx, "Invalid pilot behavior", err)
		os.Exit(2)
	}

	var r renderer
	var terminal *render.TerminalRenderer
	switch *rendererName {
	case "terminal":
		terminal = render.NewTerminalRenderer(*width, *height, *scale)
		r = terminal
	case "null":
		r = render.NewNullRenderer(logger)
	default:
		logger.Error(ctx, "Unknown renderer", nil, "renderer", *rendererName)
		os.Exit(2)
	}

	world, err := engine.NewWorld(gameConfig, r,
		engine.WithRenderer(r),
		engine.WithLogger(logger),
		engine.WithContext(ctx),
	)
	if err != nil {
		logger.Error(ctx, "Failed to create world", err)
		os.Exit(1)
	}

	stats := newRunStats(world.EventBus)
	p := pilot.New(behavior, gameConfig.Simulation.Seed)
	logger.Info(ctx, "Starting headless run",
		"behavior", behavior.String(),
		"description", behavior.Description(),
		"renderer", *rendererName,
		"duration", gameConfig.Simulation.Duration,
		"realtime", *realtime,
	)

	input := func() engine.Input {
		s := world.Snapshot()
		if terminal != nil {
			terminal.SetCenter(s.ShipPosition)
			terminal.SetStatus(statusLine(s))
		}
		return p.Decide(s)
	}

	if *realtime {
		err = runRealtime(ctx, world, input)
	} else {
		runFast(world, input)
	}
	if err != nil {
		logger.Error(ctx, "Run failed", err)
		os.Exit(1)
	}

	s := world.Snapshot()
	logger.Info(ctx, "Headless run finished",
		"ticks", s.Tick,
		"sim_time", s.Now,
		"shots", stats.shots,
		"alerts", stats.alerts,
		"contacts", stats.contacts,
		"effects", stats.effects,
	)
}

// runFast steps the world back to back for the configured duration
func runFast(world *engine.World, input func() engine.Input) {
	sim := world.Config.Simulation
	dt := 1.0 / float64(sim.TickRate)
	steps := int(sim.Duration * float64(sim.TickRate))

	world.Start()
	for i := 0; i < steps; i++ {
		world.Step(input(), dt)
	}
	world.Stop()
}

// runRealtime runs the world's ticker loop until the duration elapses or the
// process is interrupted
func runRealtime(ctx context.Context, world *engine.World, input func() engine.Input) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limit := time.Duration(world.Config.Simulation.Duration * float64(time.Second))
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	err := world.Run(ctx, input)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func statusLine(s engine.Snapshot) string {
	boost := ""
	if s.Boosting {
		boost = " BOOST"
	}
	return fmt.Sprintf("t=%.1fs speed=%.1f%s enemies=%d alerted=%d bullets=%d",
		s.Now, s.ShipSpeed, boost, s.Enemies, s.EnemiesAlert, s.Projectiles)
}

// runStats counts the gameplay events of a run
type runStats struct {
	shots, alerts, contacts, effects int
}

func newRunStats(bus *event.Bus) *runStats {
	stats := &runStats{}
	bus.Subscribe(event.ProjectileFired, func(event.Event) { stats.shots++ })
	bus.Subscribe(event.EnemyAlerted, func(event.Event) { stats.alerts++ })
	bus.Subscribe(event.EnemyContact, func(event.Event) { stats.contacts++ })
	bus.Subscribe(event.EffectSpawned, func(event.Event) { stats.effects++ })
	return stats
}
