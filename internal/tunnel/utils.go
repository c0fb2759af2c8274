package tunnel

import (
	"github.com/chewxy/math32"
	"github.com/lukaszgryglicki/orbittunnel/internal/orbit"
	"github.com/mitchellh/go-homedir"
)

func isFinite(x float32) bool { return !math32.IsInf(x, 0) && !math32.IsNaN(x) }

func rng(lo, hi float32) orbit.Range { return orbit.Range{Min: lo, Max: hi} }

// expandPath resolves a leading ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	return homedir.Expand(path)
}
