package terrain_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/VoidMesh/terrain/internal/heightmap"
	"github.com/VoidMesh/terrain/internal/terrain"
	mockterrain "github.com/VoidMesh/terrain/internal/testmocks/terrain"
	"github.com/VoidMesh/terrain/internal/testutil"
	"github.com/VoidMesh/terrain/internal/voxel"
)

func newSession(t *testing.T, renderer terrain.Renderer, params heightmap.Params) *terrain.Session {
	t.Helper()
	return terrain.NewSession(params, heightmap.NewGenerator(nil), voxel.DefaultLayout(), renderer)
}

func TestSession_RegenerateRedrawsFullFrame(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctrl := gomock.NewController(t)
	renderer := mockterrain.NewMockRenderer(ctrl)

	params := heightmap.Params{TerrainWidth: 1, ElevationGap: 0, BaseHeight: 4, Seed: 0}
	session := newSession(t, renderer, params)
	assert.Nil(t, session.Current())

	ctx := context.Background()
	renderer.EXPECT().
		Redraw(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, frame *terrain.Frame) error {
			assert.Equal(t, heightmap.Grid{{3}}, frame.Grid)
			require.Len(t, frame.Voxels, 3)
			assert.Equal(t, voxel.Surface, frame.Voxels[2].Material)
			return nil
		})

	frame, err := session.Regenerate(ctx)
	require.NoError(t, err)
	require.NotNil(t, frame)

	assert.Equal(t, params, frame.Params)
	assert.Equal(t, voxel.Tally{Total: 3, Surface: 1, Fill: 2}, frame.Stats.Voxels)
	assert.Equal(t, heightmap.Stats{MinHeight: 3, MaxHeight: 3}, frame.Stats.Heights)
	assert.Same(t, frame, session.Current())
}

func TestSession_SetTriggersRegeneration(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name     string
		key      string
		value    int64
		expected heightmap.Params
	}{
		{
			name:     "terrain width",
			key:      terrain.KeyTerrainWidth,
			value:    4,
			expected: heightmap.Params{TerrainWidth: 4, ElevationGap: 2, BaseHeight: 5, Seed: 3},
		},
		{
			name:     "elevation gap",
			key:      terrain.KeyElevationGap,
			value:    9,
			expected: heightmap.Params{TerrainWidth: 10, ElevationGap: 9, BaseHeight: 5, Seed: 3},
		},
		{
			name:     "base height",
			key:      terrain.KeyBaseHeight,
			value:    0,
			expected: heightmap.Params{TerrainWidth: 10, ElevationGap: 2, BaseHeight: 0, Seed: 3},
		},
		{
			name:     "seed",
			key:      terrain.KeySeed,
			value:    -50,
			expected: heightmap.Params{TerrainWidth: 10, ElevationGap: 2, BaseHeight: 5, Seed: -50},
		},
		{
			name:     "width clamps to minimum",
			key:      terrain.KeyTerrainWidth,
			value:    -8,
			expected: heightmap.Params{TerrainWidth: 1, ElevationGap: 2, BaseHeight: 5, Seed: 3},
		},
		{
			name:     "seed clamps to maximum",
			key:      terrain.KeySeed,
			value:    5000,
			expected: heightmap.Params{TerrainWidth: 10, ElevationGap: 2, BaseHeight: 5, Seed: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			renderer := mockterrain.NewMockRenderer(ctrl)
			renderer.EXPECT().Redraw(gomock.Any(), gomock.Any()).Return(nil).Times(1)

			session := newSession(t, renderer, heightmap.Params{TerrainWidth: 10, ElevationGap: 2, BaseHeight: 5, Seed: 3})

			frame, err := session.Set(context.Background(), tt.key, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, session.Params())
			assert.Equal(t, tt.expected, frame.Params)
			assert.Equal(t, heightmap.Generate(tt.expected.TerrainWidth, tt.expected.ElevationGap, tt.expected.BaseHeight, tt.expected.Seed), frame.Grid)
		})
	}
}

func TestSession_SetUnknownParameter(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctrl := gomock.NewController(t)
	renderer := mockterrain.NewMockRenderer(ctrl)
	renderer.EXPECT().Redraw(gomock.Any(), gomock.Any()).Times(0)

	params := heightmap.DefaultParams()
	session := newSession(t, renderer, params)

	frame, err := session.Set(context.Background(), "roughness", 3)
	assert.Nil(t, frame)
	assert.ErrorIs(t, err, terrain.ErrUnknownParameter)
	assert.Equal(t, params, session.Params())
}

func TestSession_RedrawErrorIsWrapped(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctrl := gomock.NewController(t)
	renderer := mockterrain.NewMockRenderer(ctrl)

	redrawErr := errors.New("surface lost")
	renderer.EXPECT().Redraw(gomock.Any(), gomock.Any()).Return(redrawErr)

	session := newSession(t, renderer, heightmap.DefaultParams())
	frame, err := session.Regenerate(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, redrawErr)
	assert.Contains(t, err.Error(), "failed to redraw terrain")
	require.NotNil(t, frame, "the generated frame is still returned")
	assert.Same(t, frame, session.Current())
}

func TestSession_EachChangeReplacesFrame(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctrl := gomock.NewController(t)
	renderer := mockterrain.NewMockRenderer(ctrl)

	var received []*terrain.Frame
	renderer.EXPECT().
		Redraw(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, frame *terrain.Frame) error {
			received = append(received, frame)
			return nil
		}).
		Times(3)

	session := newSession(t, renderer, heightmap.DefaultParams())
	ctx := context.Background()

	_, err := session.Regenerate(ctx)
	require.NoError(t, err)
	_, err = session.Step(ctx, terrain.KeySeed, 1)
	require.NoError(t, err)
	_, err = session.Step(ctx, terrain.KeySeed, -1)
	require.NoError(t, err)

	require.Len(t, received, 3)
	assert.NotEqual(t, received[0].ID, received[1].ID)
	assert.NotEqual(t, received[1].ID, received[2].ID)
	assert.Equal(t, int64(1), received[1].Params.Seed)
	assert.Equal(t, received[0].Grid, received[2].Grid, "returning to the same params reproduces the grid")
}

// serialRenderer fails the test if two redraws overlap.
type serialRenderer struct {
	t        *testing.T
	inFlight atomic.Int32
	draws    atomic.Int32
}

func (r *serialRenderer) Redraw(_ context.Context, frame *terrain.Frame) error {
	if n := r.inFlight.Add(1); n != 1 {
		r.t.Errorf("redraw of frame %s overlapped %d others", frame.ID, n-1)
	}
	defer r.inFlight.Add(-1)
	r.draws.Add(1)
	return nil
}

func TestSession_ConcurrentChanges(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	renderer := &serialRenderer{t: t}
	session := newSession(t, renderer, heightmap.Params{TerrainWidth: 12, ElevationGap: 6, BaseHeight: 3, Seed: 0})
	ctx := context.Background()

	const workers = 8
	frames := make([]*terrain.Frame, 2*workers)
	errs := make([]error, 2*workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			frames[i], errs[i] = session.Set(ctx, terrain.KeySeed, int64(i))
		}(i)
		go func(i int) {
			defer wg.Done()
			frames[workers+i], errs[workers+i] = session.Regenerate(ctx)
		}(i)
	}
	wg.Wait()

	for i, frame := range frames {
		require.NoError(t, errs[i])
		require.NotNil(t, frame)
		p := frame.Params
		assert.Equal(t, heightmap.Generate(p.TerrainWidth, p.ElevationGap, p.BaseHeight, p.Seed), frame.Grid,
			"frame %d grid does not match its parameters", i)
		assert.Equal(t, voxel.CountMaterials(frame.Voxels), frame.Stats.Voxels)
	}

	assert.Equal(t, int32(2*workers), renderer.draws.Load())
	current := session.Current()
	require.NotNil(t, current)
	assert.Equal(t, session.Params(), current.Params)
}

func TestSession_Update(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctrl := gomock.NewController(t)
	renderer := mockterrain.NewMockRenderer(ctrl)
	renderer.EXPECT().Redraw(gomock.Any(), gomock.Any()).Return(nil)

	session := newSession(t, renderer, heightmap.DefaultParams())
	next := heightmap.Params{TerrainWidth: 2, ElevationGap: 0, BaseHeight: 1, Seed: 42}

	frame, err := session.Update(context.Background(), next)
	require.NoError(t, err)
	assert.Equal(t, heightmap.Grid{{0, 0}, {0, 0}}, frame.Grid)
	assert.Empty(t, frame.Voxels)
	assert.Equal(t, 4, frame.Stats.Heights.EmptyColumns)
}

func TestSession_NilRenderer(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	session := terrain.NewSession(heightmap.DefaultParams(), nil, voxel.DefaultLayout(), nil)
	frame, err := session.Regenerate(context.Background())
	require.NoError(t, err)
	assert.Len(t, frame.Grid, 10)
}

func TestControls(t *testing.T) {
	controls := terrain.Controls()
	require.Len(t, controls, 4)

	keys := make([]string, 0, len(controls))
	for _, c := range controls {
		keys = append(keys, c.Key)
		assert.Equal(t, int64(1), c.Step)
	}
	assert.Equal(t, []string{terrain.KeyTerrainWidth, terrain.KeyElevationGap, terrain.KeyBaseHeight, terrain.KeySeed}, keys)

	controls[0].Max = 999
	again := terrain.Controls()
	assert.Equal(t, int64(40), again[0].Max, "Controls returns a copy")

	_, err := terrain.ControlFor("nope")
	assert.ErrorIs(t, err, terrain.ErrUnknownParameter)
}

func TestValueAndWith(t *testing.T) {
	p := heightmap.Params{TerrainWidth: 10, ElevationGap: 2, BaseHeight: 5, Seed: -7}

	v, err := terrain.Value(p, terrain.KeySeed)
	require.NoError(t, err)
	assert.Equal(t, int64(-7), v)

	_, err = terrain.Value(p, "missing")
	assert.ErrorIs(t, err, terrain.ErrUnknownParameter)

	next, err := terrain.With(p, terrain.KeyElevationGap, 41)
	require.NoError(t, err)
	assert.Equal(t, 40, next.ElevationGap)
	assert.Equal(t, 2, p.ElevationGap, "With does not modify its input")
}

func TestRandomSeed(t *testing.T) {
	for i := 0; i < 500; i++ {
		seed := terrain.RandomSeed()
		require.GreaterOrEqual(t, seed, int64(-100))
		require.LessOrEqual(t, seed, int64(100))
	}
}
