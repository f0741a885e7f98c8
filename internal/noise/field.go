// Package noise provides seeded coherent 2D noise fields for terrain generation.
package noise

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// ErrUnknownKind is returned when a noise backend name is not recognised.
var ErrUnknownKind = errors.New("unknown noise kind")

// Kind names a noise backend.
type Kind string

const (
	Simplex Kind = "simplex"
	Perlin  Kind = "perlin"
)

// Perlin parameters shared with the world noise service: alpha=2, beta=2, n=3.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
)

// Field is a deterministic coherent noise function derived from a seed.
// Sample returns values in the closed range [-1, 1].
type Field interface {
	Sample(x, z float64) float64
	Seed() int64
}

// Factory builds a fresh Field for a seed.
type Factory func(seed int64) Field

// simplexField samples OpenSimplex noise. The seed drives the permutation
// table shuffle, which acts as the field's PRNG.
type simplexField struct {
	noise opensimplex.Noise
	seed  int64
}

// New creates a simplex noise field for the given seed.
func New(seed int64) Field {
	return &simplexField{
		noise: opensimplex.New(seed),
		seed:  seed,
	}
}

func (f *simplexField) Sample(x, z float64) float64 {
	return clamp(f.noise.Eval2(x, z))
}

func (f *simplexField) Seed() int64 {
	return f.seed
}

// perlinField samples fractal Perlin noise.
type perlinField struct {
	noise *perlin.Perlin
	seed  int64
}

// NewPerlin creates a Perlin noise field for the given seed.
func NewPerlin(seed int64) Field {
	return &perlinField{
		noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
		seed:  seed,
	}
}

// Sample clamps the octave sum, which can exceed unit amplitude.
func (f *perlinField) Sample(x, z float64) float64 {
	return clamp(f.noise.Noise2D(x, z))
}

func (f *perlinField) Seed() int64 {
	return f.seed
}

// ParseKind resolves a backend name. Empty input selects Simplex.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case "", Simplex:
		return Simplex, nil
	case Perlin:
		return Perlin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// FactoryFor returns the constructor for a backend.
func FactoryFor(kind Kind) (Factory, error) {
	switch kind {
	case Simplex:
		return New, nil
	case Perlin:
		return NewPerlin, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// NewOfKind creates a field of the given backend.
func NewOfKind(kind Kind, seed int64) (Field, error) {
	factory, err := FactoryFor(kind)
	if err != nil {
		return nil, err
	}
	return factory(seed), nil
}

func clamp(v float64) float64 {
	switch {
	case v < -1:
		return -1
	case v > 1:
		return 1
	default:
		return v
	}
}
