//go:build !ebiten

package isoview

import (
	"context"
	"errors"

	"github.com/VoidMesh/terrain/internal/scene"
	"github.com/VoidMesh/terrain/internal/terrain"
)

// ErrNoGUI is returned by the headless build.
var ErrNoGUI = errors.New("isoview: the window requires building with the 'ebiten' tag")

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New returns a placeholder game.
func New(*scene.Scene, int, int) *Game {
	return &Game{}
}

// Attach always reports that the GUI build tag is missing.
func (g *Game) Attach(context.Context, *terrain.Session) error {
	return ErrNoGUI
}

// Redraw always reports that the GUI build tag is missing.
func (g *Game) Redraw(context.Context, *terrain.Frame) error {
	return ErrNoGUI
}
