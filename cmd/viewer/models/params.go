package models

import (
	"fmt"
	"strings"

	"github.com/VoidMesh/terrain/cmd/viewer/components"
	"github.com/VoidMesh/terrain/internal/heightmap"
	"github.com/VoidMesh/terrain/internal/terrain"
)

// ParamsModel is the parameter panel: one row per control, one selected.
type ParamsModel struct {
	controls []terrain.Control
	selected int
}

func NewParamsModel() ParamsModel {
	return ParamsModel{controls: terrain.Controls()}
}

// Selected returns the highlighted control.
func (m ParamsModel) Selected() terrain.Control {
	return m.controls[m.selected]
}

func (m *ParamsModel) Next() {
	m.selected = (m.selected + 1) % len(m.controls)
}

func (m *ParamsModel) Prev() {
	m.selected = (m.selected + len(m.controls) - 1) % len(m.controls)
}

// View renders the panel for the given parameter values.
func (m ParamsModel) View(p heightmap.Params) string {
	var info strings.Builder

	info.WriteString(components.SubtitleStyle.Render("Parameters") + "\n")
	for i, c := range m.controls {
		value, err := terrain.Value(p, c.Key)
		if err != nil {
			continue
		}

		line := fmt.Sprintf("%-14s %5d", c.Label, value)
		if i == m.selected {
			info.WriteString(components.SelectedControlStyle.Render(line) + "\n")
		} else {
			info.WriteString(components.ControlStyle.Render(line) + "\n")
		}
	}

	selected := m.Selected()
	info.WriteString(fmt.Sprintf("\nrange %d..%d\n", selected.Min, selected.Max))

	return components.InfoPanelStyle.Render(info.String())
}
