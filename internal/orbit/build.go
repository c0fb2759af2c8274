package orbit

import (
	"context"
	"log/slog"
)

// Stats describe the builds a Builder has run.
type Stats struct {
	Builds       int
	Allocations  int
	NonFinite    int // non-finite coordinates produced by the last build
	LastLevel    int
	Coefficients Coefficients
	Extents      Extents
}

// Builder produces level geometry. It owns the buffer pool and the random source,
// and is not safe for concurrent use: run one Builder per goroutine or go through a Worker.
type Builder struct {
	pool  Pool
	rng   Rand
	stats Stats
}

// NewBuilder returns a Builder drawing from rng.
func NewBuilder(rng Rand) *Builder {
	return &Builder{rng: rng}
}

// NewSeededBuilder returns a Builder over a math/rand source seeded with seed.
func NewSeededBuilder(seed int64) *Builder {
	return NewBuilder(NewRand(seed))
}

// Build generates one level and returns the pool buffers, one per subset.
// The slices stay owned by the Builder and are overwritten by the next call.
// levelID does not influence the geometry.
func (b *Builder) Build(levelID int, p Params) [][]float32 {
	buffers := b.pool.Acquire(p.SubsetCount, p.PointsPerSubset)
	k, ext := Generate(p, buffers, b.rng)
	Normalize(buffers, ext, p.Scale, p.InnerFraction(), p.OuterFraction())

	b.stats.Builds++
	b.stats.Allocations = b.pool.Allocations()
	b.stats.LastLevel = levelID
	b.stats.Coefficients = k
	b.stats.Extents = ext
	b.stats.NonFinite = CountNonFinite(buffers)

	l := Logger()
	// no allocations here unless debug is on
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("orbit: build",
			"level", levelID,
			"subsets", p.SubsetCount,
			"points", p.PointsPerSubset,
			"branch", k.Branch.String(),
			"a", k.A, "b", k.B, "c", k.C, "d", k.D, "e", k.E,
			"xmin", ext.XMin, "xmax", ext.XMax, "ymin", ext.YMin, "ymax", ext.YMax,
		)
		if len(buffers) > 0 {
			DumpBuffer("subset0", buffers[0], 0)
		}
	}
	if b.stats.NonFinite > 0 {
		l.Warn("orbit: non-finite coordinates",
			"level", levelID,
			"count", b.stats.NonFinite,
			"degenerate", ext.Degenerate(),
			"outer", p.OuterFraction(),
		)
	}
	return buffers
}

// BuildVector is Build over the flat configuration form.
func (b *Builder) BuildVector(levelID int, v Vector) [][]float32 {
	return b.Build(levelID, ParamsFromVector(v))
}

// SetRand swaps the random source; the pool is kept.
func (b *Builder) SetRand(rng Rand) { b.rng = rng }

// Stats returns a snapshot of the build counters.
func (b *Builder) Stats() Stats { return b.stats }

// Pool exposes the underlying pool for inspection.
func (b *Builder) Pool() *Pool { return &b.pool }
