// cmd/gunship/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-gunship/pkg/config"
	"github.com/opd-ai/go-gunship/pkg/logging"
	engorender "github.com/opd-ai/go-gunship/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithRunID(context.Background(), logging.GenerateRunID())

	configPath := flag.String("config", "", "Path to configuration file (defaults when empty)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	flag.Parse()

	gameConfig, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	display := gameConfig.Display
	if *width > 0 {
		display.Width = *width
	}
	if *height > 0 {
		display.Height = *height
	}

	logger.Info(ctx, "Starting client",
		"width", display.Width,
		"height", display.Height,
		"fullscreen", *fullscreen,
	)

	scene := engorender.NewGameScene(ctx, gameConfig, logger)

	engo.Run(engo.RunOptions{
		Title:      display.Title,
		Width:      display.Width,
		Height:     display.Height,
		Fullscreen: *fullscreen,
		VSync:      display.VSync,
	}, scene)
}
