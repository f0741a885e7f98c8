package models

import (
	"fmt"
	"strings"

	"github.com/VoidMesh/terrain/cmd/viewer/components"
	"github.com/VoidMesh/terrain/internal/scene"
	"github.com/VoidMesh/terrain/internal/terrain"
	"github.com/VoidMesh/terrain/internal/voxel"
)

// SectionModel draws the voxels of one grid row side-on, highest layer first.
type SectionModel struct {
	scene *scene.Scene
	row   int
}

func NewSectionModel(sc *scene.Scene) SectionModel {
	return SectionModel{scene: sc}
}

// Row returns the grid row being shown.
func (m SectionModel) Row() int {
	return m.row
}

func (m *SectionModel) Prev() {
	if m.row > 0 {
		m.row--
	}
}

func (m *SectionModel) Next(terrainWidth int) {
	if m.row < terrainWidth-1 {
		m.row++
	}
}

// Clamp keeps the row inside a grid of the given width.
func (m *SectionModel) Clamp(terrainWidth int) {
	if m.row > terrainWidth-1 {
		m.row = terrainWidth - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m SectionModel) View(frame *terrain.Frame) string {
	if frame == nil || frame.Grid.Width() == 0 {
		return components.BorderStyle.Render("Empty terrain")
	}

	width := frame.Grid.Width()
	cells := make(map[[2]int]voxel.Material)
	top := 0
	for _, inst := range voxel.Row(frame.Voxels, m.row) {
		cells[[2]int{inst.GridX, inst.Layer}] = inst.Material
		if inst.Layer+1 > top {
			top = inst.Layer + 1
		}
	}

	if top == 0 {
		return components.BorderStyle.Render(fmt.Sprintf("Row %d has no voxels", m.row))
	}

	surface := components.GridCellStyle.Foreground(components.MaterialColor(m.scene.Material(voxel.Surface)))
	fill := components.GridCellStyle.Foreground(components.MaterialColor(m.scene.Material(voxel.Fill)))

	lines := make([]string, 0, top)
	for layer := top - 1; layer >= 0; layer-- {
		var line strings.Builder
		for x := range width {
			material, ok := cells[[2]int{x, layer}]
			switch {
			case !ok:
				line.WriteString(components.GridCellStyle.Render(components.EmptySymbol))
			case material == voxel.Surface:
				line.WriteString(surface.Render(components.SurfaceSymbol))
			default:
				line.WriteString(fill.Render(components.FillSymbol))
			}
		}
		lines = append(lines, fmt.Sprintf("%3d ", layer)+line.String())
	}

	return components.BorderStyle.Render(strings.Join(lines, "\n"))
}
