// Package voxel expands a height grid into stacked unit cubes.
package voxel

import (
	"fmt"

	"github.com/VoidMesh/terrain/internal/heightmap"
)

// Material classifies a voxel by its position in its column.
type Material uint8

const (
	// Fill is any buried layer.
	Fill Material = iota
	// Surface is the topmost layer of a column.
	Surface
)

func (m Material) String() string {
	switch m {
	case Surface:
		return "surface"
	case Fill:
		return "fill"
	default:
		return fmt.Sprintf("material(%d)", uint8(m))
	}
}

// MarshalText encodes the material by name.
func (m Material) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Vec3 is a world-space position.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Instance is one placed unit cube.
type Instance struct {
	GridX    int      `json:"grid_x"`
	GridZ    int      `json:"grid_z"`
	Layer    int      `json:"layer"`
	Material Material `json:"material"`
	Position Vec3     `json:"position"`
}

// Layout controls world placement: Unit is the cube edge length and Gap the
// extra spacing added per index step.
type Layout struct {
	Unit float64 `json:"unit"`
	Gap  float64 `json:"gap"`
}

// DefaultLayout places touching unit cubes.
func DefaultLayout() Layout {
	return Layout{Unit: 1, Gap: 0}
}

// Position returns the world position of a voxel. The grid is centered on the
// origin horizontally. The vertical offset also uses the terrain width, so
// layer 0 of a wide grid sits well below the origin.
func (l Layout) Position(width, gridX, gridZ, layer int) Vec3 {
	half := float64(width) / 2
	return Vec3{
		X: (float64(gridX)-half)*l.Unit + float64(gridX)*l.Gap,
		Y: (float64(layer)-half)*l.Unit + float64(layer)*l.Gap,
		Z: (float64(gridZ)-half)*l.Unit + float64(gridZ)*l.Gap,
	}
}

// Count returns how many voxels Voxelize would place for grid.
func Count(grid heightmap.Grid) int {
	n := 0
	for _, row := range grid {
		for _, h := range row {
			if h > 0 {
				n += h
			}
		}
	}
	return n
}

// Voxelize places max(h, 0) cubes on every cell. Layer h-1 is Surface and all
// layers below are Fill.
func Voxelize(grid heightmap.Grid, layout Layout) []Instance {
	width := grid.Width()
	instances := make([]Instance, 0, Count(grid))

	for r, row := range grid {
		for c, h := range row {
			for layer := 0; layer < h; layer++ {
				material := Fill
				if layer == h-1 {
					material = Surface
				}
				instances = append(instances, Instance{
					GridX:    c,
					GridZ:    r,
					Layer:    layer,
					Material: material,
					Position: layout.Position(width, c, r, layer),
				})
			}
		}
	}

	return instances
}

// Tally counts instances per material.
type Tally struct {
	Total   int `json:"total"`
	Surface int `json:"surface"`
	Fill    int `json:"fill"`
}

// CountMaterials tallies a voxel set.
func CountMaterials(instances []Instance) Tally {
	t := Tally{Total: len(instances)}
	for _, inst := range instances {
		switch inst.Material {
		case Surface:
			t.Surface++
		case Fill:
			t.Fill++
		}
	}
	return t
}

// Row returns the voxels of one grid row, ordered by column then layer.
func Row(instances []Instance, gridZ int) []Instance {
	var out []Instance
	for _, inst := range instances {
		if inst.GridZ == gridZ {
			out = append(out, inst)
		}
	}
	return out
}
