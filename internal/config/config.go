package config

import (
	"os"
	"strconv"
	"time"

	"github.com/VoidMesh/terrain/internal/heightmap"
	"github.com/VoidMesh/terrain/internal/noise"
	"github.com/VoidMesh/terrain/internal/terrain"
	"github.com/VoidMesh/terrain/internal/voxel"
)

type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Terrain TerrainConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RateLimit       int
}

type LoggingConfig struct {
	Level      string
	Format     string
	Structured bool
}

type TerrainConfig struct {
	Width        int
	ElevationGap int
	BaseHeight   int
	Seed         int64
	MaxWidth     int
	MaxGap       int
	MaxBase      int
	MaxVoxels    int
	Noise        string
	VoxelUnit    float64
	VoxelGap     float64
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnvStr("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
			RateLimit:       getEnvInt("RATE_LIMIT", 0),
		},
		Logging: LoggingConfig{
			Level:      getEnvStr("LOG_LEVEL", "info"),
			Format:     getEnvStr("LOG_FORMAT", "text"),
			Structured: getEnvBool("LOG_STRUCTURED", false),
		},
		Terrain: TerrainConfig{
			Width:        getEnvInt("TERRAIN_WIDTH", 10),
			ElevationGap: getEnvInt("TERRAIN_ELEVATION_GAP", 2),
			BaseHeight:   getEnvInt("TERRAIN_BASE_HEIGHT", 5),
			Seed:         getEnvInt64("TERRAIN_SEED", terrain.RandomSeed()),
			MaxWidth:     getEnvInt("TERRAIN_MAX_WIDTH", 256),
			MaxGap:       getEnvInt("TERRAIN_MAX_ELEVATION_GAP", 256),
			MaxBase:      getEnvInt("TERRAIN_MAX_BASE_HEIGHT", 256),
			MaxVoxels:    getEnvInt("TERRAIN_MAX_VOXELS", 4_000_000),
			Noise:        getEnvStr("TERRAIN_NOISE", string(noise.Simplex)),
			VoxelUnit:    getEnvFloat("VOXEL_UNIT", 1),
			VoxelGap:     getEnvFloat("VOXEL_GAP", 0),
		},
	}
}

// EffectiveFormat returns the log format to use. Structured logging forces
// JSON regardless of Format.
func (c LoggingConfig) EffectiveFormat() string {
	if c.Structured {
		return "json"
	}
	return c.Format
}

// Params returns the initial generation parameters.
func (c TerrainConfig) Params() heightmap.Params {
	return heightmap.Params{
		TerrainWidth: c.Width,
		ElevationGap: c.ElevationGap,
		BaseHeight:   c.BaseHeight,
		Seed:         c.Seed,
	}
}

// Limits returns the bounds applied to externally supplied parameters.
func (c TerrainConfig) Limits() heightmap.Limits {
	return heightmap.Limits{
		MaxTerrainWidth: c.MaxWidth,
		MaxElevationGap: c.MaxGap,
		MaxBaseHeight:   c.MaxBase,
		MaxVoxels:       c.MaxVoxels,
	}
}

// Layout returns the voxel placement settings.
func (c TerrainConfig) Layout() voxel.Layout {
	return voxel.Layout{Unit: c.VoxelUnit, Gap: c.VoxelGap}
}

// NoiseFactory resolves the configured noise backend.
func (c TerrainConfig) NoiseFactory() (noise.Factory, error) {
	kind, err := noise.ParseKind(c.Noise)
	if err != nil {
		return nil, err
	}
	return noise.FactoryFor(kind)
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
