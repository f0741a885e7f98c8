package terrain

import (
	"fmt"
	"math/rand/v2"

	"github.com/VoidMesh/terrain/internal/heightmap"
)

// Parameter keys accepted by Session.Set.
const (
	KeyTerrainWidth = "terrainWidth"
	KeyElevationGap = "elevationGap"
	KeyBaseHeight   = "baseHeight"
	KeySeed         = "seed"
)

// Control describes one adjustable parameter and its bounds.
type Control struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
	Step  int64  `json:"step"`
}

// Clamp limits v to the control's range.
func (c Control) Clamp(v int64) int64 {
	if v < c.Min {
		return c.Min
	}
	if v > c.Max {
		return c.Max
	}
	return v
}

var controls = []Control{
	{Key: KeyTerrainWidth, Label: "Terrain width", Min: 1, Max: 40, Step: 1},
	{Key: KeyElevationGap, Label: "Elevation gap", Min: 0, Max: 40, Step: 1},
	{Key: KeyBaseHeight, Label: "Base height", Min: 0, Max: 40, Step: 1},
	{Key: KeySeed, Label: "Seed", Min: -100, Max: 100, Step: 1},
}

// Controls returns the adjustable parameters in display order.
func Controls() []Control {
	out := make([]Control, len(controls))
	copy(out, controls)
	return out
}

// ControlFor looks up a control by key.
func ControlFor(key string) (Control, error) {
	for _, c := range controls {
		if c.Key == key {
			return c, nil
		}
	}
	return Control{}, fmt.Errorf("%w: %q", ErrUnknownParameter, key)
}

// Value reads the parameter named key from p.
func Value(p heightmap.Params, key string) (int64, error) {
	switch key {
	case KeyTerrainWidth:
		return int64(p.TerrainWidth), nil
	case KeyElevationGap:
		return int64(p.ElevationGap), nil
	case KeyBaseHeight:
		return int64(p.BaseHeight), nil
	case KeySeed:
		return p.Seed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}
}

// With returns a copy of p with key set to value, clamped to the control range.
func With(p heightmap.Params, key string, value int64) (heightmap.Params, error) {
	c, err := ControlFor(key)
	if err != nil {
		return p, err
	}
	value = c.Clamp(value)

	switch key {
	case KeyTerrainWidth:
		p.TerrainWidth = int(value)
	case KeyElevationGap:
		p.ElevationGap = int(value)
	case KeyBaseHeight:
		p.BaseHeight = int(value)
	case KeySeed:
		p.Seed = value
	}
	return p, nil
}

// RandomSeed picks a seed in the seed control's range, centred on zero.
func RandomSeed() int64 {
	c, _ := ControlFor(KeySeed)
	return c.Min + rand.Int64N(c.Max-c.Min+1)
}
