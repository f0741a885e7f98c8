//go:build ebiten

package isoview

import (
	"context"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/scene"
	"github.com/VoidMesh/terrain/internal/terrain"
)

var background = color.RGBA{0x1e, 0x1e, 0x24, 0xff}

// Game is an ebiten window drawing the session's latest frame. It is the
// session's renderer: Redraw reprojects the frame for the next Draw.
type Game struct {
	session *terrain.Session
	scene   *scene.Scene
	logger  *log.Logger

	frame    *terrain.Frame
	faces    []Face
	selected int
	showHUD  bool
	errorMsg string

	screenW, screenH int

	white *ebiten.Image
	vs    []ebiten.Vertex
	is    []uint16
}

// New builds a game. Call Attach with the session it renders before RunGame.
func New(sc *scene.Scene, screenW, screenH int) *Game {
	if sc == nil {
		sc = scene.Default()
	}
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	return &Game{
		scene:   sc,
		logger:  logging.WithFields("component", "isoview"),
		showHUD: true,
		screenW: screenW,
		screenH: screenH,
		white:   white,
	}
}

// Attach sets the session driven by keyboard input and generates the first
// frame.
func (g *Game) Attach(ctx context.Context, session *terrain.Session) error {
	g.session = session
	_, err := session.Regenerate(ctx)
	return err
}

// Redraw projects a new frame.
func (g *Game) Redraw(_ context.Context, frame *terrain.Frame) error {
	g.frame = frame
	g.reproject()
	return nil
}

func (g *Game) reproject() {
	if g.frame == nil {
		return
	}
	p := Fit(g.frame.Params.TerrainWidth, MaxLayer(g.frame.Voxels), g.screenW, g.screenH)
	g.faces = Faces(g.frame.Voxels, g.scene, p)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if g.session == nil {
		return nil
	}

	controls := terrain.Controls()
	ctx := context.Background()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.selected = (g.selected + len(controls) - 1) % len(controls)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.selected = (g.selected + 1) % len(controls)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.report(g.session.Step(ctx, controls[g.selected].Key, -1))
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.report(g.session.Step(ctx, controls[g.selected].Key, 1))
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.report(g.session.Set(ctx, terrain.KeySeed, terrain.RandomSeed()))
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.scene.SetLightX(g.scene.Lights.Directional.X - 1)
		g.reproject()
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.scene.SetLightX(g.scene.Lights.Directional.X + 1)
		g.reproject()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHUD = !g.showHUD
	}

	return nil
}

func (g *Game) report(_ *terrain.Frame, err error) {
	if err != nil {
		g.logger.Error("Failed to regenerate terrain", "error", err)
		g.errorMsg = err.Error()
		return
	}
	g.errorMsg = ""
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	g.vs = g.vs[:0]
	g.is = g.is[:0]
	for _, f := range g.faces {
		// uint16 indices: flush before the vertex count overflows.
		if len(g.vs)+4 > 1<<16-1 {
			g.flush(screen)
		}
		g.appendQuad(f)
	}
	g.flush(screen)

	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) appendQuad(f Face) {
	c := f.Color.RGBA()
	r, gr, b := float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff

	base := uint16(len(g.vs))
	for _, pt := range f.Quad {
		g.vs = append(g.vs, ebiten.Vertex{
			DstX:   float32(pt.X),
			DstY:   float32(pt.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: gr,
			ColorB: b,
			ColorA: 1,
		})
	}
	g.is = append(g.is, base, base+1, base+2, base, base+2, base+3)
}

func (g *Game) flush(screen *ebiten.Image) {
	if len(g.is) == 0 {
		return
	}
	screen.DrawTriangles(g.vs, g.is, g.white, &ebiten.DrawTrianglesOptions{})
	g.vs = g.vs[:0]
	g.is = g.is[:0]
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	if g.session == nil {
		return
	}
	params := g.session.Params()

	y := 8
	for i, c := range terrain.Controls() {
		value, err := terrain.Value(params, c.Key)
		if err != nil {
			continue
		}
		marker := "  "
		if i == g.selected {
			marker = "> "
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s%-14s %d", marker, c.Label, value), 8, y)
		y += 16
	}

	if g.frame != nil {
		stats := g.frame.Stats.Voxels
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("voxels %d  surface %d  fill %d  faces %d", stats.Total, stats.Surface, stats.Fill, len(g.faces)), 8, y+8)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("light x %.0f   [ ] move light  R seed  H hud  Q quit", g.scene.Lights.Directional.X), 8, y+24)

	if g.errorMsg != "" {
		ebitenutil.DebugPrintAt(screen, "error: "+g.errorMsg, 8, y+40)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenW || outsideHeight != g.screenH {
		g.screenW, g.screenH = outsideWidth, outsideHeight
		g.reproject()
	}
	return g.screenW, g.screenH
}
