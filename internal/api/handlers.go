package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/terrain/internal/heightmap"
	"github.com/VoidMesh/terrain/internal/logging"
	"github.com/VoidMesh/terrain/internal/scene"
	"github.com/VoidMesh/terrain/internal/terrain"
	"github.com/VoidMesh/terrain/internal/voxel"
)

// Query parameter names for stateless generation.
const (
	queryTerrainWidth = "terrain_width"
	queryElevationGap = "elevation_gap"
	queryBaseHeight   = "base_height"
	querySeed         = "seed"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HeightMapResponse carries a height map generated from query parameters.
type HeightMapResponse struct {
	Params heightmap.Params `json:"params"`
	Grid   heightmap.Grid   `json:"grid"`
	Stats  heightmap.Stats  `json:"stats"`
}

// VoxelsResponse carries the voxel instances of a height map, bottom layer
// first within each column.
type VoxelsResponse struct {
	Params heightmap.Params `json:"params"`
	Layout voxel.Layout     `json:"layout"`
	Voxels []voxel.Instance `json:"voxels"`
	Tally  voxel.Tally      `json:"tally"`
}

// SetParamRequest is the body of a session parameter update. Value is a
// pointer so a missing field is rejected rather than read as zero.
type SetParamRequest struct {
	Value *int64 `json:"value"`
}

// Handler serves the terrain API. Stateless endpoints generate from query
// parameters; session endpoints read and mutate the shared session.
type Handler struct {
	session   *terrain.Session
	store     *FrameStore
	generator *heightmap.Generator
	layout    voxel.Layout
	scene     *scene.Scene
	limits    heightmap.Limits
	logger    *log.Logger
}

// Options collects the dependencies of a Handler.
type Options struct {
	Session   *terrain.Session
	Store     *FrameStore
	Generator *heightmap.Generator
	Layout    voxel.Layout
	Scene     *scene.Scene
	Limits    heightmap.Limits
}

func NewHandler(opts Options) *Handler {
	if opts.Generator == nil {
		opts.Generator = heightmap.NewGenerator(nil)
	}
	if opts.Scene == nil {
		opts.Scene = scene.Default()
	}
	return &Handler{
		session:   opts.Session,
		store:     opts.Store,
		generator: opts.Generator,
		layout:    opts.Layout,
		scene:     opts.Scene,
		limits:    opts.Limits,
		logger:    logging.WithFields("component", "api"),
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "voidmesh-terrain",
		"version":   "1.0.0",
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) GetControls(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"controls": terrain.Controls(),
	})
}

func (h *Handler) GetScene(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.scene)
}

func (h *Handler) GetHeightMap(w http.ResponseWriter, r *http.Request) {
	params, ok := h.requestParams(w, r)
	if !ok {
		return
	}

	grid := h.generator.Generate(params)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, HeightMapResponse{
		Params: params,
		Grid:   grid,
		Stats:  grid.Stats(),
	})
}

func (h *Handler) GetVoxels(w http.ResponseWriter, r *http.Request) {
	params, ok := h.requestParams(w, r)
	if !ok {
		return
	}

	instances := voxel.Voxelize(h.generator.Generate(params), h.layout)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, VoxelsResponse{
		Params: params,
		Layout: h.layout,
		Voxels: instances,
		Tally:  voxel.CountMaterials(instances),
	})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	frame := h.store.Latest()
	if frame == nil {
		var err error
		frame, err = h.session.Regenerate(r.Context())
		if err != nil {
			h.renderError(w, r, http.StatusInternalServerError, "failed to generate terrain", err)
			return
		}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, frame)
}

func (h *Handler) SetSessionParam(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req SetParamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Value == nil {
		h.renderError(w, r, http.StatusBadRequest, "value is required", nil)
		return
	}

	frame, err := h.session.Set(r.Context(), key, *req.Value)
	if err != nil {
		if errors.Is(err, terrain.ErrUnknownParameter) {
			h.renderError(w, r, http.StatusBadRequest, err.Error(), err)
			return
		}
		h.logger.Error("failed to set parameter", "error", err, "key", key, "value", *req.Value)
		h.renderError(w, r, http.StatusInternalServerError, "failed to regenerate terrain", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, frame)
}

// requestParams reads generation parameters from the query string, falling
// back to the session's current values. It renders the error response itself
// and reports whether the handler should continue.
func (h *Handler) requestParams(w http.ResponseWriter, r *http.Request) (heightmap.Params, bool) {
	params, err := parseParams(r, h.session.Params())
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error(), err)
		return heightmap.Params{}, false
	}

	if err := params.Validate(h.limits); err != nil {
		var cfgErr *heightmap.ConfigurationError
		if errors.As(err, &cfgErr) {
			h.renderError(w, r, http.StatusBadRequest, cfgErr.Error(), err)
			return heightmap.Params{}, false
		}
		h.renderError(w, r, http.StatusInternalServerError, "failed to validate parameters", err)
		return heightmap.Params{}, false
	}

	return params, true
}

func parseParams(r *http.Request, defaults heightmap.Params) (heightmap.Params, error) {
	params := defaults
	query := r.URL.Query()

	ints := []struct {
		name string
		dst  *int
	}{
		{queryTerrainWidth, &params.TerrainWidth},
		{queryElevationGap, &params.ElevationGap},
		{queryBaseHeight, &params.BaseHeight},
	}
	for _, field := range ints {
		raw := query.Get(field.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return defaults, fmt.Errorf("invalid %s %q: %w", field.name, raw, err)
		}
		*field.dst = v
	}

	if raw := query.Get(querySeed); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return defaults, fmt.Errorf("invalid %s %q: %w", querySeed, raw, err)
		}
		params.Seed = seed
	}

	return params, nil
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		h.logger.Error("API error", "error", err, "message", message, "status", status)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
