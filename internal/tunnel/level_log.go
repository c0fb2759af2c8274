package tunnel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lukaszgryglicki/orbittunnel/internal/orbit"
)

type LevelLog struct {
	Level     int
	Branch    orbit.Branch
	Extents   orbit.Extents
	NonFinite int
	Points    int
}

type LevelLogCache struct {
	mu     sync.Mutex
	levels map[orbit.Branch][]LevelLog // levels grouped by the formula that built them
}

var cache = &LevelLogCache{
	levels: make(map[orbit.Branch][]LevelLog),
}

// resetLevelLog forgets the levels of earlier renders.
func resetLevelLog() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.levels = make(map[orbit.Branch][]LevelLog)
}

func logLevel(level int, st orbit.Stats, points int) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	b := st.Coefficients.Branch
	cache.levels[b] = append(cache.levels[b], LevelLog{
		Level:     level,
		Branch:    b,
		Extents:   st.Extents,
		NonFinite: st.NonFinite,
		Points:    points,
	})
}

func levelStats() []string {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	branches := make([]int, 0, len(cache.levels))
	for b := range cache.levels {
		branches = append(branches, int(b))
	}
	sort.Ints(branches)
	lines := make([]string, 0, len(branches))
	for _, b := range branches {
		logs := cache.levels[orbit.Branch(b)]
		bad := 0
		for _, l := range logs {
			if l.NonFinite > 0 {
				bad++
			}
		}
		lines = append(lines, fmt.Sprintf("Branch %s: %d levels, %d with non-finite points", orbit.Branch(b), len(logs), bad))
	}
	return lines
}
