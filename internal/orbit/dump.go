package orbit

import (
	"context"
	"log/slog"

	"github.com/chewxy/math32"
)

// DumpScalar logs a single named value at debug level.
func DumpScalar(name string, v float32) {
	Logger().Debug("orbit: dump", "name", name, "value", v)
}

// DumpBuffer logs the first limit values of buf at debug level (limit <= 0 means dumpLimit).
func DumpBuffer(name string, buf []float32, limit int) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	if limit <= 0 {
		limit = dumpLimit
	}
	head := buf[:min(limit, len(buf))]
	l.Debug("orbit: dump", "name", name, "len", len(buf), "head", head)
}

// CountNonFinite counts NaN and ±Inf coordinates across all buffers.
func CountNonFinite(buffers [][]float32) int {
	n := 0
	for _, buf := range buffers {
		for _, v := range buf {
			if math32.IsNaN(v) || math32.IsInf(v, 0) {
				n++
			}
		}
	}
	return n
}
