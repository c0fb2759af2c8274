package orbit

import (
	"math/rand"
	"time"
)

// Rand is the uniform source the generator draws from. Float32 must return values in [0,1).
// *math/rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

// NewRand returns a math/rand source seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewTimeRand seeds from the wall clock, mixed with id so that workers started in the same
// nanosecond still diverge.
func NewTimeRand(id int) *rand.Rand {
	return NewRand(time.Now().UnixNano() ^ int64(uint64(id)*0x9e3779b97f4a7c15))
}
