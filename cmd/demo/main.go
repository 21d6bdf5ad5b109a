package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/kestrelgames/overworld/scene"
)

func main() {
	scenePath := flag.String("scene", "cmd/demo/scenes/arena.yaml", "scene file to load")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger, err := buildLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	game, err := NewGame(logger, *scenePath)
	if err != nil {
		log.Fatal(err)
	}

	watcher, err := scene.NewWatcher(filepath.Dir(*scenePath))
	if err != nil {
		logger.Warn("scene watcher unavailable", zap.Error(err))
	} else {
		defer func() { _ = watcher.Close() }()
		game.watcher = watcher
	}

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("overworld demo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
