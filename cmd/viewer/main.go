package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/VoidMesh/terrain/cmd/viewer/models"
	"github.com/VoidMesh/terrain/internal/config"
	"github.com/VoidMesh/terrain/internal/heightmap"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/scene"
)

func main() {
	cfg := config.Load()

	startView := flag.String("view", "map", "Starting view (map, section)")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	noiseKind := flag.String("noise", cfg.Terrain.Noise, "Noise backend (simplex, perlin)")
	seed := flag.Int64("seed", cfg.Terrain.Seed, "Initial seed")
	flag.Parse()

	// The alt screen owns stdout; logs go to a file when DEBUG is set and are
	// discarded otherwise.
	logging.Configure(*logLevel, cfg.Logging.EffectiveFormat(), "[voidmesh-viewer] ")
	logging.GetLogger().SetOutput(io.Discard)
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
		logging.GetLogger().SetOutput(f)
	}
	log := logging.GetLogger()

	cfg.Terrain.Noise = *noiseKind
	factory, err := cfg.Terrain.NoiseFactory()
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}

	params := cfg.Terrain.Params()
	params.Seed = *seed

	app := models.NewApp(params, heightmap.NewGenerator(factory), cfg.Terrain.Layout(), scene.Default(), *startView)

	program := tea.NewProgram(app, tea.WithAltScreen())

	log.Info("Starting VoidMesh terrain viewer", "noise", *noiseKind, "seed", *seed, "start_view", *startView)

	if _, err := program.Run(); err != nil {
		fmt.Println("Error running viewer:", err)
		os.Exit(1)
	}
}
