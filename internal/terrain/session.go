// Package terrain wires height map generation and voxel expansion to a
// renderer. Every parameter change rebuilds the whole terrain and asks the
// renderer to redraw it.
package terrain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/VoidMesh/terrain/internal/heightmap"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/voxel"
)

// ErrUnknownParameter is returned for parameter keys without a control.
var ErrUnknownParameter = errors.New("unknown parameter")

//go:generate go tool mockgen -destination=../testmocks/terrain/mock_renderer.go -package=mockterrain . Renderer

// Renderer receives a complete frame after every regeneration.
type Renderer interface {
	Redraw(ctx context.Context, frame *Frame) error
}

// Frame is one fully generated terrain.
type Frame struct {
	ID          uuid.UUID        `json:"id"`
	Params      heightmap.Params `json:"params"`
	Grid        heightmap.Grid   `json:"grid"`
	Voxels      []voxel.Instance `json:"voxels"`
	Stats       FrameStats       `json:"stats"`
	GeneratedAt time.Time        `json:"generated_at"`
	Duration    time.Duration    `json:"duration_ns"`
}

// FrameStats combines grid and voxel statistics.
type FrameStats struct {
	Heights heightmap.Stats `json:"heights"`
	Voxels  voxel.Tally     `json:"voxels"`
}

// Build generates a frame for p without touching any session.
func Build(generator *heightmap.Generator, layout voxel.Layout, p heightmap.Params) *Frame {
	start := time.Now()

	grid := generator.Generate(p)
	instances := voxel.Voxelize(grid, layout)

	return &Frame{
		ID:     uuid.New(),
		Params: p,
		Grid:   grid,
		Voxels: instances,
		Stats: FrameStats{
			Heights: grid.Stats(),
			Voxels:  voxel.CountMaterials(instances),
		},
		GeneratedAt: start,
		Duration:    time.Since(start),
	}
}

// Session owns the current parameters and the renderer they feed.
type Session struct {
	mu        sync.Mutex
	params    heightmap.Params
	generator *heightmap.Generator
	layout    voxel.Layout
	renderer  Renderer
	current   *Frame
	logger    *log.Logger
}

// NewSession creates a session. Nothing is generated until Regenerate or Set
// is called.
func NewSession(params heightmap.Params, generator *heightmap.Generator, layout voxel.Layout, renderer Renderer) *Session {
	if generator == nil {
		generator = heightmap.NewGenerator(nil)
	}
	return &Session{
		params:    params,
		generator: generator,
		layout:    layout,
		renderer:  renderer,
		logger:    logging.WithFields("component", "terrain-session"),
	}
}

// Params returns the current parameters.
func (s *Session) Params() heightmap.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Current returns the last generated frame, or nil before the first one.
func (s *Session) Current() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Regenerate rebuilds the terrain from the current parameters and redraws.
func (s *Session) Regenerate(ctx context.Context) (*Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regenerate(ctx)
}

// Set changes one parameter, clamped to its control range, then rebuilds and
// redraws. Unknown keys leave the session untouched.
func (s *Session) Set(ctx context.Context, key string, value int64) (*Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := With(s.params, key, value)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Parameter changed", "key", key, "requested", value)
	s.params = next
	return s.regenerate(ctx)
}

// Step moves one parameter by delta control steps.
func (s *Session) Step(ctx context.Context, key string, delta int64) (*Frame, error) {
	s.mu.Lock()
	current, err := Value(s.params, key)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	c, err := ControlFor(key)
	if err != nil {
		return nil, err
	}
	return s.Set(ctx, key, current+delta*c.Step)
}

// Update replaces all parameters at once, then rebuilds and redraws.
func (s *Session) Update(ctx context.Context, params heightmap.Params) (*Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = params
	return s.regenerate(ctx)
}

func (s *Session) regenerate(ctx context.Context) (*Frame, error) {
	frame := Build(s.generator, s.layout, s.params)
	s.current = frame

	logging.WithParams(s.params.TerrainWidth, s.params.ElevationGap, s.params.BaseHeight, s.params.Seed).
		Debug("Terrain regenerated", "frame_id", frame.ID, "voxels", frame.Stats.Voxels.Total, "duration", frame.Duration)

	if s.renderer == nil {
		return frame, nil
	}
	if err := s.renderer.Redraw(ctx, frame); err != nil {
		s.logger.Error("Redraw failed", "frame_id", frame.ID, "error", err)
		return frame, fmt.Errorf("failed to redraw terrain: %w", err)
	}
	return frame, nil
}
