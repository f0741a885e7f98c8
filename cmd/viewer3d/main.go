//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/VoidMesh/terrain/internal/config"
	"github.com/VoidMesh/terrain/internal/heightmap"
	"github.com/VoidMesh/terrain/internal/isoview"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/scene"
	"github.com/VoidMesh/terrain/internal/terrain"
)

func main() {
	cfg := config.Load()

	logLevel := flag.String("log", cfg.Logging.Level, "Log level (debug, info, warn, error)")
	noiseKind := flag.String("noise", cfg.Terrain.Noise, "Noise backend (simplex, perlin)")
	seed := flag.Int64("seed", cfg.Terrain.Seed, "Initial seed")
	width := flag.Int("w", 960, "Window width")
	height := flag.Int("h", 720, "Window height")
	flag.Parse()

	logging.Configure(*logLevel, cfg.Logging.EffectiveFormat(), "[voidmesh-viewer3d] ")
	log := logging.GetLogger()

	cfg.Terrain.Noise = *noiseKind
	factory, err := cfg.Terrain.NoiseFactory()
	if err != nil {
		log.Fatal("Invalid noise backend", "error", err, "noise", *noiseKind)
	}

	params := cfg.Terrain.Params()
	params.Seed = *seed

	game := isoview.New(scene.Default(), *width, *height)
	session := terrain.NewSession(params, heightmap.NewGenerator(factory), cfg.Terrain.Layout(), game)
	if err := game.Attach(context.Background(), session); err != nil {
		log.Fatal("Failed to generate initial terrain", "error", err)
	}

	ebiten.SetWindowTitle("VoidMesh Terrain")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info("Starting VoidMesh isometric viewer", "noise", *noiseKind, "seed", *seed)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal("Viewer exited with error", "error", err)
	}
}
