package tunnel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lukaszgryglicki/orbittunnel/internal/orbit"
)

func DebugLog(format string, args ...interface{}) {
	l := orbit.Logger()
	if !Debug || !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug(fmt.Sprintf(format, args...))
}

var once sync.Once

func DebugLogOnce(format string, args ...interface{}) {
	once.Do(func() {
		DebugLog(format, args...)
	})
}
