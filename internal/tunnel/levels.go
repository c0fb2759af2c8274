package tunnel

import (
	"context"
	"runtime"

	"github.com/lukaszgryglicki/orbittunnel/internal/orbit"
	"golang.org/x/sync/errgroup"
)

// Level is one generated level. Buffers are a private copy, safe to keep.
type Level struct {
	ID      int
	Buffers [][]float32
	Stats   orbit.Stats
}

// levelRand gives every level its own stream, so output does not depend on which
// worker built it. seed == 0 falls back to the clock.
func levelRand(seed int64, id int) orbit.Rand {
	if seed == 0 {
		return orbit.NewTimeRand(id)
	}
	return orbit.NewRand(seed + int64(id))
}

// BuildLevels generates n consecutive levels on up to NumCPU workers. Each worker owns
// one Builder, so its pool is reused across the levels it builds.
func BuildLevels(ctx context.Context, p orbit.Params, n int, seed int64) ([]Level, error) {
	if n <= 0 {
		return nil, nil
	}
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	DebugLogOnce("Launching %d level workers for %d levels", workers, n)

	out := make([]Level, n)
	ids := make(chan int)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(ids)
		for id := 0; id < n; id++ {
			select {
			case ids <- id:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var b *orbit.Builder
			for id := range ids {
				if err := ctx.Err(); err != nil {
					return err
				}
				if b == nil {
					b = orbit.NewBuilder(levelRand(seed, id))
				} else {
					b.SetRand(levelRand(seed, id))
				}
				bufs := b.Build(id, p)
				st := b.Stats()
				out[id] = Level{ID: id, Buffers: orbit.CopyBuffers(bufs), Stats: st}
				if Debug {
					logLevel(id, st, p.SubsetCount*p.PointsPerSubset)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
