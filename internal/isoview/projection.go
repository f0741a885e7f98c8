// Package isoview turns voxel instances into shaded isometric polygons. The
// projection and face ordering are plain math; the ebiten window that draws
// them is only built with the ebiten tag.
package isoview

import (
	"cmp"
	"math"
	"slices"

	"github.com/VoidMesh/terrain/internal/scene"
	"github.com/VoidMesh/terrain/internal/voxel"
)

// FaceKind names the three cube faces visible from the camera.
type FaceKind uint8

const (
	// Left faces +Z, toward the lower left of the screen.
	Left FaceKind = iota
	// Right faces +X, toward the lower right.
	Right
	Top
)

// faceBase darkens side faces so cubes keep their shape under any light.
var faceBase = [...]float64{
	Left:  0.65,
	Right: 0.8,
	Top:   1,
}

var faceNormal = [...][3]float64{
	Left:  {0, 0, 1},
	Right: {1, 0, 0},
	Top:   {0, 1, 0},
}

type Point struct {
	X, Y float64
}

// Face is one projected quad, ready to fill.
type Face struct {
	Kind   FaceKind
	Quad   [4]Point
	Color  scene.Color
	Depth  int
	Layer  int
	Source voxel.Instance
}

// Projector maps grid space to screen space. A cube at (x, layer, z) has its
// top-back corner at Origin shifted by half a tile per step in x and z and by
// CubeHeight per layer.
type Projector struct {
	TileWidth  float64
	TileHeight float64
	CubeHeight float64
	Origin     Point
}

// Fit sizes a projector so a terrain of the given width and tallest column
// fills a screen, leaving a small margin.
func Fit(terrainWidth, maxLayer, screenW, screenH int) Projector {
	if terrainWidth < 1 {
		terrainWidth = 1
	}
	if maxLayer < 1 {
		maxLayer = 1
	}

	const margin = 0.9
	// The diamond spans width tiles across and width/2 tiles down, plus the
	// stack of cubes. Tile height is half the tile width and cubes are as
	// tall as a tile is high.
	byWidth := float64(screenW) * margin / float64(terrainWidth)
	byHeight := float64(screenH) * margin / (float64(terrainWidth)/2 + float64(maxLayer)/2)
	tile := math.Min(byWidth, byHeight)

	return Projector{
		TileWidth:  tile,
		TileHeight: tile / 2,
		CubeHeight: tile / 2,
		Origin: Point{
			X: float64(screenW) / 2,
			Y: (float64(screenH)-float64(terrainWidth+maxLayer)*tile/2)/2 + float64(maxLayer)*tile/2,
		},
	}
}

// Project returns the screen position of grid corner (x, y, z), where y is
// measured in layers.
func (p Projector) Project(x, y, z float64) Point {
	return Point{
		X: p.Origin.X + (x-z)*p.TileWidth/2,
		Y: p.Origin.Y + (x+z)*p.TileHeight/2 - y*p.CubeHeight,
	}
}

// Quad returns the corners of one face of the cube at grid cell (x, layer, z).
func (p Projector) Quad(kind FaceKind, x, layer, z int) [4]Point {
	fx, fy, fz := float64(x), float64(layer), float64(z)
	switch kind {
	case Top:
		return [4]Point{
			p.Project(fx, fy+1, fz),
			p.Project(fx+1, fy+1, fz),
			p.Project(fx+1, fy+1, fz+1),
			p.Project(fx, fy+1, fz+1),
		}
	case Right:
		return [4]Point{
			p.Project(fx+1, fy+1, fz),
			p.Project(fx+1, fy+1, fz+1),
			p.Project(fx+1, fy, fz+1),
			p.Project(fx+1, fy, fz),
		}
	default:
		return [4]Point{
			p.Project(fx, fy+1, fz+1),
			p.Project(fx+1, fy+1, fz+1),
			p.Project(fx+1, fy, fz+1),
			p.Project(fx, fy, fz+1),
		}
	}
}

// Shade returns the brightness factor of a face under the scene's
// directional light.
func Shade(kind FaceKind, light scene.Light) float64 {
	n := faceNormal[kind]
	length := math.Sqrt(light.X*light.X + light.Y*light.Y + light.Z*light.Z)
	lambert := 0.0
	if length > 0 {
		lambert = math.Max(0, (n[0]*light.X+n[1]*light.Y+n[2]*light.Z)/length)
	}
	return math.Min(1, faceBase[kind]*(0.6+0.8*light.Intensity*lambert))
}

// Faces projects every visible face of a voxel set and returns them in
// painter's order: draw them first to last and nearer faces cover farther
// ones. Faces hidden by a neighbouring cube are dropped.
func Faces(instances []voxel.Instance, sc *scene.Scene, p Projector) []Face {
	type cell struct{ x, layer, z int }
	occupied := make(map[cell]struct{}, len(instances))
	for _, inst := range instances {
		occupied[cell{inst.GridX, inst.Layer, inst.GridZ}] = struct{}{}
	}

	neighbour := map[FaceKind]cell{
		Left:  {0, 0, 1},
		Right: {1, 0, 0},
		Top:   {0, 1, 0},
	}

	faces := make([]Face, 0, len(instances)*3)
	for _, inst := range instances {
		base := sc.Material(inst.Material).Color
		for _, kind := range []FaceKind{Left, Right, Top} {
			d := neighbour[kind]
			if _, hidden := occupied[cell{inst.GridX + d.x, inst.Layer + d.layer, inst.GridZ + d.z}]; hidden {
				continue
			}
			faces = append(faces, Face{
				Kind:   kind,
				Quad:   p.Quad(kind, inst.GridX, inst.Layer, inst.GridZ),
				Color:  base.Shade(Shade(kind, sc.Lights.Directional)),
				Depth:  inst.GridX + inst.GridZ + inst.Layer,
				Layer:  inst.Layer,
				Source: inst,
			})
		}
	}

	slices.SortStableFunc(faces, func(a, b Face) int {
		if c := cmp.Compare(a.Depth, b.Depth); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Layer, b.Layer); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})

	return faces
}

// MaxLayer returns one past the highest layer in a voxel set.
func MaxLayer(instances []voxel.Instance) int {
	top := 0
	for _, inst := range instances {
		top = max(top, inst.Layer+1)
	}
	return top
}
