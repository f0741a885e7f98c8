package heightmap

import (
	"fmt"
	"math"
	"strings"
)

// Params are the shape parameters of a single generation call.
type Params struct {
	TerrainWidth int   `json:"terrain_width"`
	ElevationGap int   `json:"elevation_gap"`
	BaseHeight   int   `json:"base_height"`
	Seed         int64 `json:"seed"`
}

// DefaultParams mirrors the viewer's initial settings with a fixed seed.
func DefaultParams() Params {
	return Params{
		TerrainWidth: 10,
		ElevationGap: 2,
		BaseHeight:   5,
		Seed:         0,
	}
}

// Limits bound the parameters accepted from untrusted callers. Zero fields
// are not checked.
type Limits struct {
	MaxTerrainWidth int
	MaxElevationGap int
	MaxBaseHeight   int
	// MaxVoxels caps width² · (gap + base - 1), the most cubes the grid can
	// hold whatever the seed.
	MaxVoxels int
}

// VoxelBound returns the largest voxel count any seed can produce for p. It
// is computed in floating point so extreme inputs cannot overflow.
func (p Params) VoxelBound() float64 {
	w := math.Max(float64(p.TerrainWidth), 0)
	column := math.Max(float64(p.ElevationGap)+float64(p.BaseHeight)-1, 0)
	return w * w * column
}

// ConfigurationError reports parameters rejected by Validate.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid terrain parameters: %s", strings.Join(e.Problems, "; "))
}

// Validate checks params against limits. Generate never calls this; it is
// meant for outer surfaces that must refuse oversized or negative input.
func (p Params) Validate(limits Limits) error {
	var problems []string

	if p.TerrainWidth < 1 {
		problems = append(problems, fmt.Sprintf("terrain_width must be positive, got %d", p.TerrainWidth))
	}
	if limits.MaxTerrainWidth > 0 && p.TerrainWidth > limits.MaxTerrainWidth {
		problems = append(problems, fmt.Sprintf("terrain_width must be at most %d, got %d", limits.MaxTerrainWidth, p.TerrainWidth))
	}
	if p.ElevationGap < 0 {
		problems = append(problems, fmt.Sprintf("elevation_gap must be non-negative, got %d", p.ElevationGap))
	}
	if limits.MaxElevationGap > 0 && p.ElevationGap > limits.MaxElevationGap {
		problems = append(problems, fmt.Sprintf("elevation_gap must be at most %d, got %d", limits.MaxElevationGap, p.ElevationGap))
	}
	if p.BaseHeight < 0 {
		problems = append(problems, fmt.Sprintf("base_height must be non-negative, got %d", p.BaseHeight))
	}
	if limits.MaxBaseHeight > 0 && p.BaseHeight > limits.MaxBaseHeight {
		problems = append(problems, fmt.Sprintf("base_height must be at most %d, got %d", limits.MaxBaseHeight, p.BaseHeight))
	}
	if limits.MaxVoxels > 0 && p.VoxelBound() > float64(limits.MaxVoxels) {
		problems = append(problems, fmt.Sprintf("terrain may hold up to %.0f voxels, at most %d allowed", p.VoxelBound(), limits.MaxVoxels))
	}

	if len(problems) > 0 {
		return &ConfigurationError{Problems: problems}
	}
	return nil
}
