// Package heightmap turns a seed and a few shape parameters into a square grid
// of integer column heights.
package heightmap

import (
	"math"
	"time"

	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/noise"
)

// Grid holds one row per z index, each with one height per x index.
type Grid [][]int

// Width returns the side length of the grid.
func (g Grid) Width() int {
	return len(g)
}

// Stats summarises a grid.
type Stats struct {
	MinHeight    int `json:"min_height"`
	MaxHeight    int `json:"max_height"`
	EmptyColumns int `json:"empty_columns"`
}

// Stats returns min/max height and the number of columns with no voxels.
// An empty grid reports zeroes.
func (g Grid) Stats() Stats {
	var s Stats
	first := true
	for _, row := range g {
		for _, h := range row {
			if first {
				s.MinHeight, s.MaxHeight = h, h
				first = false
			}
			if h < s.MinHeight {
				s.MinHeight = h
			}
			if h > s.MaxHeight {
				s.MaxHeight = h
			}
			if h <= 0 {
				s.EmptyColumns++
			}
		}
	}
	return s
}

// Generator produces height grids from a noise field factory.
type Generator struct {
	newField noise.Factory
}

// NewGenerator creates a generator. A nil factory selects simplex noise.
func NewGenerator(factory noise.Factory) *Generator {
	if factory == nil {
		factory = noise.New
	}
	return &Generator{newField: factory}
}

// Generate builds the grid for p with a field freshly created from p.Seed.
func (g *Generator) Generate(p Params) Grid {
	start := time.Now()
	grid := build(g.newField(p.Seed), p)

	logging.WithDuration("generate_heightmap", time.Since(start)).Debug("Height map generated",
		"component", "heightmap",
		"terrain_width", p.TerrainWidth,
		"elevation_gap", p.ElevationGap,
		"base_height", p.BaseHeight,
		"seed", p.Seed)

	return grid
}

// Generate builds a height grid from simplex noise seeded with seed.
func Generate(terrainWidth, elevationGap, baseHeight int, seed int64) Grid {
	return build(noise.New(seed), Params{
		TerrainWidth: terrainWidth,
		ElevationGap: elevationGap,
		BaseHeight:   baseHeight,
		Seed:         seed,
	})
}

// build samples field at (x/width, z/width) so terrain frequency does not
// depend on grid size. Negative widths yield an empty grid; gap and base are
// used as given.
func build(field noise.Field, p Params) Grid {
	width := p.TerrainWidth
	if width < 0 {
		width = 0
	}

	gap := float64(p.ElevationGap)
	offset := p.BaseHeight - 1
	w := float64(width)

	grid := make(Grid, width)
	for z := 0; z < width; z++ {
		row := make([]int, width)
		for x := 0; x < width; x++ {
			sample := field.Sample(float64(x)/w, float64(z)/w)
			// math.Floor, not int(): negative samples must round toward -inf.
			row[x] = int(math.Floor(sample*gap)) + offset
		}
		grid[z] = row
	}
	return grid
}
