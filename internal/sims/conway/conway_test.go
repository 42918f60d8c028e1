package conway

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridsim/internal/config"
	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/model"
	"github.com/vovakirdan/gridsim/internal/registry"
)

func testConfig(seed string, sparse bool) config.ConwayConfig {
	c := config.DefaultConwayConfig()
	c.Grid.Width, c.Grid.Height = 16, 16
	c.Grid.Storage = config.StorageDense
	if sparse {
		c.Grid.Storage = config.StorageSparse
	}
	c.Seed = seed
	c.StopWhenEmpty = true
	return c
}

func newSim(t *testing.T, c config.ConwayConfig, seed int64) *Sim {
	t.Helper()
	s := New()
	require.NoError(t, s.ResetWith(c, seed))
	return s
}

func step(t *testing.T, s *Sim, n int) {
	t.Helper()
	for range n {
		_, err := s.Step(core.NewInputFrame())
		require.NoError(t, err)
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		in   string
		want Rule
	}{
		{"B3/S23", Life},
		{"b3/s23", Life},
		{"23/3", Life},
		{"S23/B3", Life},
		{"B36/S23", Rule{Birth: 1<<3 | 1<<6, Survive: 1<<2 | 1<<3}},
		{"B2/S", Rule{Birth: 1 << 2}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRule(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"B3S23", "B3/Sx", ""} {
		_, err := ParseRule(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "B3/S23", Life.String())
}

func TestRuleNext(t *testing.T) {
	assert.True(t, Life.Next(false, 3))
	assert.False(t, Life.Next(false, 2))
	assert.True(t, Life.Next(true, 2))
	assert.False(t, Life.Next(true, 4))
	assert.False(t, Life.Next(true, 99))
}

func TestBlinkerOscillates(t *testing.T) {
	for _, sparse := range []bool{false, true} {
		s := newSim(t, testConfig("blinker", sparse), 1)
		start := model.ToMap(s.Current())
		require.Len(t, start, 3)

		step(t, s, 1)
		mid := model.ToMap(s.Current())
		assert.Len(t, mid, 3)
		assert.NotEqual(t, start, mid)

		step(t, s, 1)
		assert.Equal(t, start, model.ToMap(s.Current()))
	}
}

func TestBlockIsStill(t *testing.T) {
	s := newSim(t, testConfig("block", true), 1)
	before := model.ToMap(s.Current())
	res, err := s.Step(core.NewInputFrame())
	require.NoError(t, err)
	assert.Zero(t, res.Changed)
	assert.Equal(t, before, model.ToMap(s.Current()))
}

func TestGliderTravelsAcrossWrap(t *testing.T) {
	s := newSim(t, testConfig("glider", false), 1)
	before := s.Snapshot()

	// A glider returns to its shape shifted by (1, 1) every 4 generations,
	// so 64 generations carry it once around a 16x16 torus.
	step(t, s, 64)
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, 5, s.State().Population)
}

func TestDenseAndSparseAgree(t *testing.T) {
	dense := newSim(t, testConfig("random", false), 42)
	sparse := newSim(t, testConfig("random", true), 42)
	require.Equal(t, dense.Snapshot(), sparse.Snapshot())

	for i := range 30 {
		step(t, dense, 1)
		step(t, sparse, 1)
		require.Equal(t, dense.Snapshot(), sparse.Snapshot(), "generation %d", i+1)
	}
}

func TestOtherShapes(t *testing.T) {
	for _, shape := range []grid.CellShape{grid.Triangle, grid.Hexagon} {
		t.Run(shape.String(), func(t *testing.T) {
			c := testConfig("random", true)
			c.Grid.Shape = shape
			c.Grid.Boundary = grid.ReflectXY
			c.Rule = "B2/S34"
			s := newSim(t, c, 7)
			step(t, s, 10)
			assert.Equal(t, 10, s.State().Step)
		})
	}
}

func TestStopsWhenEmpty(t *testing.T) {
	c := testConfig("random", true)
	c.Density = 0
	s := newSim(t, c, 1)
	assert.True(t, s.State().Finished)

	res, err := s.Step(core.NewInputFrame())
	require.NoError(t, err)
	assert.Equal(t, 0, res.State.Step)
}

func TestPauseAndSingleStep(t *testing.T) {
	s := newSim(t, testConfig("blinker", false), 1)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	res, err := s.Step(pause)
	require.NoError(t, err)
	assert.True(t, res.State.Paused)
	assert.Equal(t, 0, res.State.Step)

	single := core.NewInputFrame()
	single.Set(core.ActionStep)
	res, err = s.Step(single)
	require.NoError(t, err)
	assert.Equal(t, 1, res.State.Step)
	assert.True(t, res.State.Paused)
}

func TestRunHonorsMaxSteps(t *testing.T) {
	c := testConfig("gosper", true)
	c.Grid.Width, c.Grid.Height = 64, 32
	c.MaxSteps = 25
	s := newSim(t, c, 1)

	var seen []int
	res, err := s.Run(context.Background(), 100, func(step int) { seen = append(seen, step) })
	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.Equal(t, 25, res.StepCount)
	assert.Len(t, seen, 25)
	assert.True(t, s.State().Finished)
}

func TestUnknownPattern(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	s := New()
	assert.Error(t, s.ResetWith(testConfig("spaceship", false), 1))
	assert.Contains(t, PatternNames(), "glider")
}

func TestPatternFileSeeds(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	line := "rows:\n  - \"###\"\n"
	path := filepath.Join(t.TempDir(), "line.yaml")
	require.NoError(t, os.WriteFile(path, []byte(line), 0o644))

	s := newSim(t, testConfig("file:"+path, false), 1)
	assert.Equal(t, 3, s.State().Population)

	lib := filepath.Join(home, ".gridsim", "patterns")
	require.NoError(t, os.MkdirAll(lib, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "pair.yaml"), []byte("id: pair\ncells:\n  - {x: 0, y: 0}\n  - {x: 3, y: 0}\n"), 0o644))

	s = newSim(t, testConfig("pair", true), 1)
	assert.Equal(t, 2, s.State().Population)

	assert.Error(t, New().ResetWith(testConfig("file:"+filepath.Join(home, "missing.yaml"), false), 1))
}

func TestRenderAndRegistry(t *testing.T) {
	s := newSim(t, testConfig("block", false), 1)
	screen := core.NewScreen(20, 18)
	s.Render(screen)
	assert.Equal(t, '█', screen.Get(7, 7))
	assert.Contains(t, screen.Row(17), "Game of Life")

	assert.True(t, registry.Exists("conway"))
}
