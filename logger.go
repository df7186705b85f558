package papercut

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting altogether.
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

// SetLogger configures the logger shared by papercut and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent logger.
//
// Log levels used by papercut:
//   - [slog.LevelDebug]: degenerate shapes, buffer growth, frames per second
//   - [slog.LevelInfo]: renderer lifecycle (pipeline created, device attached)
//   - [slog.LevelWarn]: dropped frames (capacity exceeded, surface missing)
//
// Example:
//
//	papercut.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. The render package calls this so that
// one SetLogger call configures the whole stack.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
