package models

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/terrain/cmd/viewer/components"
	"github.com/VoidMesh/terrain/internal/heightmap"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/scene"
	"github.com/VoidMesh/terrain/internal/terrain"
	"github.com/VoidMesh/terrain/internal/voxel"
)

// ViewType represents the different views in the viewer
type ViewType int

const (
	HeightMapView ViewType = iota
	CrossSectionView
)

const viewCount = 2

// App is the main application model. It is also the session's renderer:
// every regenerated frame lands in Redraw.
type App struct {
	session *terrain.Session
	scene   *scene.Scene
	logger  *log.Logger

	// Current state
	frame       *terrain.Frame
	currentView ViewType
	width       int
	height      int
	draws       int

	// View models
	params  ParamsModel
	mapView MapModel
	section SectionModel

	// UI state
	showHelp bool
	errorMsg string
}

// NewApp creates the application and its session.
func NewApp(params heightmap.Params, generator *heightmap.Generator, layout voxel.Layout, sc *scene.Scene, startView string) *App {
	if sc == nil {
		sc = scene.Default()
	}
	app := &App{
		scene:   sc,
		logger:  logging.WithFields("component", "viewer"),
		params:  NewParamsModel(),
		mapView: NewMapModel(sc),
		section: NewSectionModel(sc),
	}
	app.session = terrain.NewSession(params, generator, layout, app)

	switch startView {
	case "section":
		app.currentView = CrossSectionView
	default:
		app.currentView = HeightMapView
	}

	return app
}

// Redraw stores the frame for the next View call.
func (m *App) Redraw(_ context.Context, frame *terrain.Frame) error {
	m.frame = frame
	m.draws++
	m.section.Clamp(frame.Params.TerrainWidth)
	return nil
}

// Session exposes the underlying terrain session.
func (m *App) Session() *terrain.Session {
	return m.session
}

// Frame returns the frame currently on screen.
func (m *App) Frame() *terrain.Frame {
	return m.frame
}

// Init generates the first frame
func (m *App) Init() tea.Cmd {
	m.logger.Debug("Initializing terrain viewer")
	m.report(m.session.Regenerate(context.Background()))
	return nil
}

// Update handles messages and updates the application state
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}

	return m, nil
}

// handleKey applies one key press and returns the follow-up command.
func (m *App) handleKey(key string) tea.Cmd {
	if m.showHelp {
		switch key {
		case "?", "esc":
			m.showHelp = false
		case "ctrl+c", "q":
			return tea.Quit
		}
		return nil
	}

	ctx := context.Background()

	switch key {
	case "ctrl+c", "q":
		return tea.Quit

	case "?":
		m.showHelp = true

	case "tab":
		m.currentView = ViewType((int(m.currentView) + 1) % viewCount)

	case "up", "k":
		m.params.Prev()
	case "down", "j":
		m.params.Next()

	case "left", "h":
		m.report(m.session.Step(ctx, m.params.Selected().Key, -1))
	case "right", "l":
		m.report(m.session.Step(ctx, m.params.Selected().Key, 1))
	case "shift+left", "H":
		m.report(m.session.Step(ctx, m.params.Selected().Key, -5))
	case "shift+right", "L":
		m.report(m.session.Step(ctx, m.params.Selected().Key, 5))

	case "r", "R":
		m.report(m.session.Set(ctx, terrain.KeySeed, terrain.RandomSeed()))

	case "[":
		m.section.Prev()
	case "]":
		if m.frame != nil {
			m.section.Next(m.frame.Params.TerrainWidth)
		}
	}

	return nil
}

func (m *App) report(_ *terrain.Frame, err error) {
	if err != nil {
		m.logger.Error("Failed to regenerate terrain", "error", err)
		m.errorMsg = err.Error()
		return
	}
	m.errorMsg = ""
}

// View renders the application
func (m *App) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.frame == nil {
		return "Generating terrain..."
	}

	var s strings.Builder

	title := "Height Map"
	body := m.mapView.View(m.frame)
	if m.currentView == CrossSectionView {
		title = fmt.Sprintf("Cross Section - row %d", m.section.Row())
		body = m.section.View(m.frame)
	}
	s.WriteString(components.TitleStyle.Render("VoidMesh Terrain - "+title) + "\n")

	s.WriteString(lipgloss.JoinHorizontal(
		lipgloss.Top,
		body,
		m.params.View(m.session.Params()),
	) + "\n")

	if m.errorMsg != "" {
		s.WriteString(components.ErrorStyle.Render("Error: "+m.errorMsg) + "\n")
	}

	s.WriteString(m.renderStatusBar())
	return s.String()
}

// renderStatusBar renders the status bar
func (m *App) renderStatusBar() string {
	stats := m.frame.Stats
	status := []string{
		fmt.Sprintf("Voxels: %d (%d surface, %d fill)", stats.Voxels.Total, stats.Voxels.Surface, stats.Voxels.Fill),
		fmt.Sprintf("Heights: %d..%d", stats.Heights.MinHeight, stats.Heights.MaxHeight),
		fmt.Sprintf("Frame %d in %s", m.draws, m.frame.Duration),
		"? help",
	}

	statusBar := components.StatusBarStyle
	if m.width > 0 {
		statusBar = statusBar.Width(m.width)
	}
	return statusBar.Render(strings.Join(status, " • "))
}

// renderHelp renders the help screen
func (m *App) renderHelp() string {
	help := `VoidMesh Terrain Viewer - Help

Parameters:
  Up/Down, k/j         Select parameter
  Left/Right, h/l      Adjust by one step
  Shift+Left/Right     Adjust by five steps
  r                    Random seed

Views:
  Tab                  Toggle height map / cross section
  [ ]                  Previous / next cross section row

General:
  ?                    Toggle this help
  q, Ctrl+C            Quit`

	return components.HelpStyle.Render(help)
}
