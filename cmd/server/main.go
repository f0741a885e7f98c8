package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VoidMesh/terrain/internal/api"
	"github.com/VoidMesh/terrain/internal/config"
	"github.com/VoidMesh/terrain/internal/heightmap"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/scene"
	"github.com/VoidMesh/terrain/internal/terrain"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Logging must be configured before components derive their loggers
	logging.Configure(cfg.Logging.Level, cfg.Logging.EffectiveFormat(), "[voidmesh-terrain] ")
	log := logging.GetLogger()
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "log_level", cfg.Logging.Level, "log_format", cfg.Logging.EffectiveFormat(), "noise", cfg.Terrain.Noise)

	// Resolve noise backend
	factory, err := cfg.Terrain.NoiseFactory()
	if err != nil {
		log.Fatal("Invalid noise backend", "error", err, "noise", cfg.Terrain.Noise)
	}

	params := cfg.Terrain.Params()
	if err := params.Validate(cfg.Terrain.Limits()); err != nil {
		log.Fatal("Invalid initial terrain parameters", "error", err)
	}

	// Initialize terrain session
	log.Debug("Initializing terrain session", "terrain_width", params.TerrainWidth, "seed", params.Seed)
	generator := heightmap.NewGenerator(factory)
	store := api.NewFrameStore()
	session := terrain.NewSession(params, generator, cfg.Terrain.Layout(), store)

	frame, err := session.Regenerate(context.Background())
	if err != nil {
		log.Fatal("Failed to generate initial terrain", "error", err)
	}
	log.Info("Initial terrain generated", "frame_id", frame.ID, "voxels", frame.Stats.Voxels.Total, "duration", frame.Duration)

	// Initialize API handlers
	handler := api.NewHandler(api.Options{
		Session:   session,
		Store:     store,
		Generator: generator,
		Layout:    cfg.Terrain.Layout(),
		Scene:     scene.Default(),
		Limits:    cfg.Terrain.Limits(),
	})
	var router http.Handler = api.SetupRoutes(handler)
	if cfg.Server.RateLimit > 0 {
		router = api.RateLimitMiddleware(cfg.Server.RateLimit)(router)
		log.Debug("Rate limiting enabled", "requests_per_minute", cfg.Server.RateLimit)
	}
	log.Debug("API routes configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Starting VoidMesh terrain server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
		log.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down server...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	} else {
		log.Debug("Server shutdown completed gracefully")
	}

	log.Info("Server exited", "frames_drawn", store.Draws())
}
