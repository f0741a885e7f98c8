package models

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/terrain/cmd/viewer/components"
	"github.com/VoidMesh/terrain/internal/scene"
	"github.com/VoidMesh/terrain/internal/terrain"
)

// MapModel draws the grid top-down, one two-character cell per column,
// colored by height.
type MapModel struct {
	scene *scene.Scene
}

func NewMapModel(sc *scene.Scene) MapModel {
	return MapModel{scene: sc}
}

func (m MapModel) View(frame *terrain.Frame) string {
	if frame == nil || frame.Grid.Width() == 0 {
		return components.BorderStyle.Render("Empty terrain")
	}

	stats := frame.Stats.Heights
	rows := make([]string, 0, len(frame.Grid))
	for _, row := range frame.Grid {
		var line strings.Builder
		for _, h := range row {
			style := components.GridCellStyle.
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(components.HeightColor(m.scene, h, stats.MinHeight, stats.MaxHeight))
			line.WriteString(style.Render(components.HeightLabel(h)))
		}
		rows = append(rows, line.String())
	}

	return components.BorderStyle.Render(strings.Join(rows, "\n"))
}
