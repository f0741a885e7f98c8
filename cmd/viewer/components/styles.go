package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/terrain/internal/scene"
)

// Color definitions
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	AccentColor    = lipgloss.Color("#FFD700")
	DangerColor    = lipgloss.Color("#F25D94")

	// Grayscale
	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 2)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray).
			Padding(0, 1)

	InfoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1).
			Width(32)

	ControlStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	SelectedControlStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(DarkGray).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(DangerColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true).
			Padding(1)

	// Grid styles (for height map cells and voxel columns)
	GridCellStyle = lipgloss.NewStyle().
			Width(2).
			Height(1).
			Align(lipgloss.Center)
)

// Cell symbols
const (
	EmptySymbol   = "  "
	SurfaceSymbol = "██"
	FillSymbol    = "▓▓"
	CursorSymbol  = "><"
	RowMarker     = "▶"
)

// HeightColor shades the surface color by where height sits between lo and
// hi. Columns without voxels are drawn gray.
func HeightColor(s *scene.Scene, height, lo, hi int) lipgloss.Color {
	if height <= 0 {
		return DarkGray
	}
	t := 1.0
	if hi > lo {
		t = float64(height-lo) / float64(hi-lo)
	}
	return lipgloss.Color(s.Materials.Surface.Color.Shade(0.35 + 0.65*t).Hex())
}

// MaterialColor returns the lipgloss color of a scene material.
func MaterialColor(m scene.Material) lipgloss.Color {
	return lipgloss.Color(m.Color.Hex())
}

// HeightLabel renders a height as a two character cell label.
func HeightLabel(height int) string {
	switch {
	case height <= 0:
		return EmptySymbol
	case height > 99:
		return "++"
	default:
		return fmt.Sprintf("%2d", height)
	}
}

// Layout helpers
func CenterText(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}
