package asyncio

import (
	"os"
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// globalLogger holds the package-wide structured logger, swappable at
// runtime, mirroring the package-level logger eventloop.SetStructuredLogger
// configures. Unlike eventloop's hand-rolled Logger interface, this wires a
// real structured-logging dependency: github.com/joeycumines/logiface, with
// stumpy as the concrete JSON-line backend. The zero value of
// *logiface.Logger[logiface.Event] is safe to call methods on and logs
// nothing, so the default below (and any nil passed to SetLogger) never
// needs a separate no-op type.
var globalLogger struct {
	sync.RWMutex
	logger *logiface.Logger[logiface.Event]
}

func init() {
	globalLogger.logger = defaultLogger().Logger()
}

// defaultLogger returns a stumpy-backed logger writing JSON lines to
// stderr at the default level, used until SetLogger overrides it.
func defaultLogger() *logiface.Logger[*stumpy.Event] {
	return stumpy.L.New(stumpy.WithStumpy(stumpy.WithWriter(os.Stderr)))
}

// SetLogger replaces the package-wide structured logger used by every
// Engine that was not given an explicit WithLogger option. A nil
// logger restores a disabled logger.
func SetLogger(l *logiface.Logger[logiface.Event]) {
	if l == nil {
		l = logiface.New[logiface.Event]()
	}
	globalLogger.Lock()
	globalLogger.logger = l
	globalLogger.Unlock()
}

// Logger returns the current package-wide structured logger.
func Logger() *logiface.Logger[logiface.Event] {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	return globalLogger.logger
}

func (e *Engine) logger() *logiface.Logger[logiface.Event] {
	if e.cfg.logger != nil {
		return e.cfg.logger
	}
	return Logger()
}

func (e *Engine) logTrace(msg string) {
	e.logger().Trace().Log(msg)
}

func (e *Engine) logDebug(msg string) {
	e.logger().Debug().Log(msg)
}

func (e *Engine) logWarn(msg string) {
	e.logger().Warning().Log(msg)
}

func (e *Engine) logError(msg string, rp *RecoveredPanic) {
	e.logger().Err().Err(rp).Log(msg)
}
