package orbit

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards everything; Enabled is false so callers skip formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs the logger used by the kernel. nil restores the silent default.
//
// Levels:
//   - Debug: per-build diagnostics, pool allocations, dumps
//   - Warn: builds that produced non-finite coordinates
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the kernel logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
