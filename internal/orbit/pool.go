package orbit

// Pool owns one interleaved (x,y) buffer per subset and keeps it across builds.
// Storage is replaced only when the subset count or the per-subset point count changes.
// A Pool is not safe for concurrent use.
type Pool struct {
	buffers     [][]float32
	subsets     int
	points      int
	allocations int
}

// Acquire returns buffers sized for subsets × points. Unchanged sizes return the same storage
// with stale contents; any size change drops the old set and allocates a new one filled with
// Sentinel.
func (p *Pool) Acquire(subsets, points int) [][]float32 {
	subsets, points = max(subsets, 0), max(points, 0)
	if p.buffers != nil && p.subsets == subsets && p.points == points {
		return p.buffers
	}
	bufs := make([][]float32, subsets)
	for s := range bufs {
		buf := make([]float32, 2*points)
		for i := range buf {
			buf[i] = Sentinel
		}
		bufs[s] = buf
	}
	p.buffers, p.subsets, p.points = bufs, subsets, points
	p.allocations++
	Logger().Debug("orbit: pool allocated", "subsets", subsets, "points", points, "allocations", p.allocations)
	return bufs
}

// Buffers returns the current set without resizing (nil before the first Acquire).
func (p *Pool) Buffers() [][]float32 { return p.buffers }

// Size reports the key the current storage was allocated for.
func (p *Pool) Size() (subsets, points int) { return p.subsets, p.points }

// Allocations counts how many times storage was (re)allocated.
func (p *Pool) Allocations() int { return p.allocations }
