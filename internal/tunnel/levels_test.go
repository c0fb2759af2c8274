package tunnel

import (
	"context"
	"testing"

	"github.com/lukaszgryglicki/orbittunnel/internal/orbit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallParams() orbit.Params {
	return orbit.Params{
		SubsetCount:        3,
		PointsPerSubset:    50,
		Scale:              100,
		Tunnel:             true,
		InnerRadiusPercent: 10,
		OuterRadiusPercent: 90,
		A:                  RangeA,
		B:                  RangeB,
		C:                  RangeC,
		D:                  RangeD,
		E:                  RangeE,
	}
}

func TestBuildLevelsMatchesSingleBuilder(t *testing.T) {
	p := smallParams()
	levels, err := BuildLevels(context.Background(), p, 5, 42)
	require.NoError(t, err)
	require.Len(t, levels, 5)

	for id, l := range levels {
		assert.Equal(t, id, l.ID)
		b := orbit.NewBuilder(levelRand(42, id))
		want := b.Build(id, p)
		assert.Equal(t, want, l.Buffers, "level %d", id)
		assert.Equal(t, b.Stats().Coefficients, l.Stats.Coefficients)
	}
}

func TestBuildLevelsOwnCopies(t *testing.T) {
	levels, err := BuildLevels(context.Background(), smallParams(), 2, 7)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	before := levels[1].Buffers[0][0]
	levels[0].Buffers[0][0] = 12345
	assert.Equal(t, before, levels[1].Buffers[0][0])
}

func TestBuildLevelsEmpty(t *testing.T) {
	levels, err := BuildLevels(context.Background(), smallParams(), 0, 1)
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestBuildLevelsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildLevels(ctx, smallParams(), 50, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLevelStats(t *testing.T) {
	cache.mu.Lock()
	saved := cache.levels
	cache.levels = make(map[orbit.Branch][]LevelLog)
	cache.mu.Unlock()
	t.Cleanup(func() {
		cache.mu.Lock()
		cache.levels = saved
		cache.mu.Unlock()
	})

	logLevel(0, orbit.Stats{Coefficients: orbit.Coefficients{Branch: orbit.BranchLog}}, 10)
	logLevel(1, orbit.Stats{Coefficients: orbit.Coefficients{Branch: orbit.BranchSqrt}, NonFinite: 4}, 10)
	logLevel(2, orbit.Stats{Coefficients: orbit.Coefficients{Branch: orbit.BranchSqrt}}, 10)

	assert.Equal(t, []string{
		"Branch sqrt: 2 levels, 1 with non-finite points",
		"Branch log: 1 levels, 0 with non-finite points",
	}, levelStats())
}
