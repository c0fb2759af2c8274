package orbit

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchOf(t *testing.T) {
	cases := []struct {
		choice float32
		want   Branch
	}{
		{0, BranchSqrt},
		{0.4999, BranchSqrt},
		{0.5, BranchQuartic},
		{0.7499, BranchQuartic},
		{0.75, BranchLog},
		{0.9999, BranchLog},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BranchOf(c.choice), "choice %v", c.choice)
	}
	assert.Equal(t, "quartic", BranchQuartic.String())
}

func TestDrawOrder(t *testing.T) {
	p := Params{
		A: Range{0, 10}, B: Range{0, 20}, C: Range{0, 30}, D: Range{0, 40}, E: Range{0, 50},
	}
	k := DrawCoefficients(p, script(0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.8))
	assert.InDelta(t, 1, k.A, 1e-6)
	assert.InDelta(t, 4, k.B, 1e-6)
	assert.InDelta(t, 9, k.C, 1e-6)
	assert.InDelta(t, 16, k.D, 1e-6)
	assert.InDelta(t, 25, k.E, 1e-6)
	assert.Equal(t, BranchLog, k.Branch)
}

// With b = 0 and c = -16 the inner root is sqrt(16) = 4, so each formula gives a
// different z: d+4, d+2 and d+ln(6).
func TestGenerateBranchFormulas(t *testing.T) {
	const d = 0.25
	cases := []struct {
		choice float32
		z      float32
	}{
		{0.1, d + 4},
		{0.6, d + 2},
		{0.9, d + math32.Log(6)},
	}
	for _, c := range cases {
		p := pinned(1, 2, 1, 0, -16, d, 0.5)
		bufs := [][]float32{make([]float32, 4)}
		rng := script(0.5, 0, 0, 0, 0, 0, c.choice)
		k, ext := Generate(p, bufs, rng)
		require.Equal(t, BranchOf(c.choice), k.Branch)
		// first step starts from the origin: x == 0 keeps x1 = y
		assert.Equal(t, float32(0.5), bufs[0][0])
		assert.Equal(t, float32(1), bufs[0][1])
		// second step: x = 0.5 > 0, so x1 = y - z
		assert.InDelta(t, 1.5-c.z, bufs[0][2], 1e-6, "choice %v", c.choice)
		assert.Equal(t, float32(0.5), bufs[0][3])
		assert.Equal(t, 8, rng.n, "one choice draw per call, two seed draws per subset")
		// extents see the origin and (0.5, 1), never the last written point
		assert.Equal(t, Extents{XMin: 0, XMax: 0.5, YMin: 0, YMax: 1}, ext)
	}
}

func TestGenerateCollapsedBranches(t *testing.T) {
	want := []float32{0, 0, float32(math32.Log(2))}
	for i, choice := range []float32{0.2, 0.7, 0.8} {
		p := pinned(1, 2, 0, 0, 0, 0, 1)
		bufs := [][]float32{make([]float32, 4)}
		Generate(p, bufs, script(0.5, 0, 0, 0, 0, 0, choice))
		// (0,0) -> (1,0) -> (1-z, -1)
		assert.InDelta(t, 1-want[i], bufs[0][2], 1e-6)
		assert.Equal(t, float32(-1), bufs[0][3])
	}
}

func TestGenerateNegativeXBranch(t *testing.T) {
	p := pinned(1, 2, 0, 0, -4, 1, -1)
	bufs := [][]float32{make([]float32, 4)}
	Generate(p, bufs, script(0.5, 0, 0, 0, 0, 0, 0))
	// (0,0) -> (-1,0); x < 0 so x1 = y + z = 0 + (1+2)
	assert.Equal(t, []float32{-1, 0, 2, 1}, bufs[0])
}

func TestGenerateSubsetSeeds(t *testing.T) {
	p := pinned(3, 1, 0, 0, 0, 0, 0)
	bufs := [][]float32{make([]float32, 2), make([]float32, 2), make([]float32, 2)}
	rng := script(0.5, 0, 0, 0, 0, 0, 0, 0.1, 0.1, 0, 0.75, 0.25, 1)
	Generate(p, bufs, rng)
	// subset 0 always starts at the origin
	assert.Equal(t, []float32{0, 0}, bufs[0])
	// subset 1: x0 = 0.01*0.5, y0 = 0.01*-0.25; one rotation step gives (y0, -x0)
	assert.InDelta(t, -0.0025, bufs[1][0], 1e-9)
	assert.InDelta(t, -0.005, bufs[1][1], 1e-9)
	// subset 2: x0 = 0.02*0.25, y0 = 0.02*-0.5
	assert.InDelta(t, -0.01, bufs[2][0], 1e-9)
	assert.InDelta(t, -0.005, bufs[2][1], 1e-9)
}

// All-zero coefficients rotate (x,y) to (y,-x). Subset 1 starts at (0.005, -0.0025)
// and visits (-0.0025, -0.005) and (-0.005, 0.0025) before its last write (0.0025, 0.005).
func TestGenerateExtentsTrackStepStart(t *testing.T) {
	p := pinned(2, 3, 0, 0, 0, 0, 0)
	bufs := [][]float32{make([]float32, 6), make([]float32, 6)}
	_, ext := Generate(p, bufs, script(0.5, 0, 0, 0, 0, 0, 0.1, 0.3, 0.3, 0, 0.75))
	assert.InDelta(t, -0.005, ext.XMin, 1e-9)
	assert.InDelta(t, 0.005, ext.XMax, 1e-9)
	assert.InDelta(t, -0.005, ext.YMin, 1e-9)
	assert.InDelta(t, 0.0025, ext.YMax, 1e-9)
	assert.InDelta(t, 0.005, bufs[1][5], 1e-9, "last write lies outside the y extents")
}

func TestGenerateAllZeroIsDegenerate(t *testing.T) {
	p := pinned(1, 3, 0, 0, 0, 0, 0)
	bufs := [][]float32{make([]float32, 6)}
	_, ext := Generate(p, bufs, script(0.3, 0, 0, 0, 0, 0, 0.1))
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0}, bufs[0])
	assert.Equal(t, Extents{}, ext)
	assert.True(t, ext.Degenerate())
}

func TestExtents(t *testing.T) {
	e := EmptyExtents()
	assert.True(t, e.Degenerate())
	e.Add(1, 2)
	assert.True(t, e.Degenerate(), "single point has zero span")
	e.Add(-3, 5)
	assert.False(t, e.Degenerate())
	assert.Equal(t, Extents{XMin: -3, XMax: 1, YMin: 2, YMax: 5}, e)
}
