// Package scene holds the presentation configuration handed to renderers:
// materials for each voxel tag, lights and camera framing. A Scene is built
// once at startup and passed to every renderer that needs it.
package scene

import (
	"fmt"
	"image/color"

	"github.com/VoidMesh/terrain/internal/voxel"
)

// Color is a 0xRRGGBB value.
type Color uint32

// RGBA converts to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// Shade scales each channel by f, clamped to [0, 1].
func (c Color) Shade(f float64) Color {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	r := uint32(float64((c>>16)&0xff) * f)
	g := uint32(float64((c>>8)&0xff) * f)
	b := uint32(float64(c&0xff) * f)
	return Color(r<<16 | g<<8 | b)
}

// MarshalText encodes the color as a hex string.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Material describes how one voxel tag is drawn.
type Material struct {
	Name           string  `json:"name"`
	Color          Color   `json:"color"`
	NormalScale    float64 `json:"normal_scale"`
	AOIntensity    float64 `json:"ao_intensity"`
	Texture        string  `json:"texture"`
	NearestTexture bool    `json:"nearest_texture"`
}

// Materials maps voxel tags to their materials.
type Materials struct {
	Surface Material `json:"surface"`
	Fill    Material `json:"fill"`
}

// Light is a positioned light source.
type Light struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Intensity float64 `json:"intensity"`
}

// Lights lists the scene lighting.
type Lights struct {
	Ambient     float64 `json:"ambient"`
	Point       Light   `json:"point"`
	Directional Light   `json:"directional"`
}

// Camera describes the perspective projection.
type Camera struct {
	FOV  float64 `json:"fov"`
	Near float64 `json:"near"`
	Far  float64 `json:"far"`
	// DistanceFactor multiplied by the terrain width gives the camera distance.
	DistanceFactor float64 `json:"distance_factor"`
}

// Distance returns the camera distance for a terrain width.
func (c Camera) Distance(terrainWidth int) float64 {
	return c.DistanceFactor * float64(terrainWidth)
}

// Scene is the full presentation configuration.
type Scene struct {
	Materials Materials `json:"materials"`
	Lights    Lights    `json:"lights"`
	Camera    Camera    `json:"camera"`
}

// Directional light X is adjustable within these bounds.
const (
	MinLightX = -5.0
	MaxLightX = 5.0
)

// Default returns the grass-over-dirt scene.
func Default() *Scene {
	return &Scene{
		Materials: Materials{
			Surface: Material{
				Name:        "grass",
				Color:       0x3dbf32,
				NormalScale: 2,
				AOIntensity: 0.2,
				Texture:     "stylized_grass",
			},
			Fill: Material{
				Name:           "dirt",
				Color:          0xc5b340,
				NormalScale:    2,
				AOIntensity:    0.2,
				Texture:        "dirt",
				NearestTexture: true,
			},
		},
		Lights: Lights{
			Ambient:     1,
			Point:       Light{X: 2, Y: 5, Z: 4, Intensity: 1},
			Directional: Light{X: 1, Y: 1, Z: 1, Intensity: 0.5},
		},
		Camera: Camera{
			FOV:            75,
			Near:           0.1,
			Far:            1000,
			DistanceFactor: 2,
		},
	}
}

// Material returns the material for a voxel tag.
func (s *Scene) Material(m voxel.Material) Material {
	if m == voxel.Surface {
		return s.Materials.Surface
	}
	return s.Materials.Fill
}

// SetLightX moves the directional light along X, clamped to its bounds.
func (s *Scene) SetLightX(x float64) {
	if x < MinLightX {
		x = MinLightX
	}
	if x > MaxLightX {
		x = MaxLightX
	}
	s.Lights.Directional.X = x
}
