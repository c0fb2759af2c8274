package tunnel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lukaszgryglicki/orbittunnel/internal/orbit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigFormats(t *testing.T) {
	cases := map[string]string{
		"level.json": `{"levels": 3, "seed": 9, "width": 64, "height": 32, "gifOut": "x/out.gif",
			"level": {"subsets": 2, "points": 100, "scale": 10, "tunnel": true, "innerRadius": 20, "outerRadius": 60,
			"a": {"min": -1, "max": 1}}}`,
		"level.yaml": `
levels: 3
seed: 9
width: 64
height: 32
gifOut: x/out.gif
level:
  subsets: 2
  points: 100
  scale: 10
  tunnel: true
  innerRadius: 20
  outerRadius: 60
  a: {min: -1, max: 1}
`,
		"level.toml": `
levels = 3
seed = 9
width = 64
height = 32
gifOut = "x/out.gif"

[level]
subsets = 2
points = 100
scale = 10.0
tunnel = true
innerRadius = 20.0
outerRadius = 60.0

[level.a]
min = -1.0
max = 1.0
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := loadConfig(writeFile(t, name, body))
			require.NoError(t, err)
			assert.Equal(t, 3, cfg.Levels)
			assert.Equal(t, int64(9), cfg.Seed)
			assert.Equal(t, 64, cfg.Width)
			assert.Equal(t, 32, cfg.Height)
			assert.Equal(t, "x/out.gif", cfg.GIFOut)
			assert.Equal(t, "x/out", cfg.PNGPrefix)

			p := cfg.Params()
			assert.Equal(t, 2, p.SubsetCount)
			assert.Equal(t, 100, p.PointsPerSubset)
			assert.Equal(t, float32(10), p.Scale)
			assert.True(t, p.Tunnel)
			assert.Equal(t, float32(20), p.InnerRadiusPercent)
			assert.Equal(t, float32(60), p.OuterRadiusPercent)
			assert.Equal(t, orbit.Range{Min: -1, Max: 1}, p.A)
			assert.Equal(t, RangeB, p.B)
			assert.Equal(t, RangeE, p.E)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, Levels, cfg.Levels)
	assert.Equal(t, Width, cfg.Width)
	assert.Equal(t, Supersample, cfg.Supersample)
	assert.Equal(t, GIFOut, cfg.GIFOut)
	assert.Equal(t, "tunnel", cfg.PNGPrefix)
	assert.Equal(t, int64(0), cfg.Seed)

	p := cfg.Params()
	assert.Equal(t, Subsets, p.SubsetCount)
	assert.Equal(t, Points, p.PointsPerSubset)
	assert.Equal(t, float32(Scale), p.Scale)
	assert.False(t, p.Tunnel)
	assert.Equal(t, float32(OuterRadius), p.OuterRadiusPercent)
	assert.Equal(t, RangeA, p.A)
	assert.Equal(t, RangeC, p.C)
}

func TestLoadEmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = loadConfig(writeFile(t, "level.ini", "levels=1"))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = loadConfig(writeFile(t, "bad.json", "{"))
	assert.ErrorContains(t, err, "parse")

	_, err = loadConfig(writeFile(t, "neg.json", `{"level": {"points": -5}}`))
	assert.ErrorContains(t, err, "must not be negative")

	_, err = loadConfig(writeFile(t, "radius.yaml", "level:\n  outerRadius: 150\n"))
	assert.ErrorContains(t, err, "radii")
}

func TestZeroRangeIsDefaulted(t *testing.T) {
	cfg, err := loadConfig(writeFile(t, "r.json", `{"level": {"d": {"min": 0, "max": 0}, "e": {"min": 3, "max": 3}}}`))
	require.NoError(t, err)
	assert.Equal(t, RangeD, cfg.Level.D)
	assert.Equal(t, orbit.Range{Min: 3, Max: 3}, cfg.Level.E)
}
