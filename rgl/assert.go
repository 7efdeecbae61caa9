package rgl

import (
	"fmt"
	"sync/atomic"
)

var debugChecks atomic.Bool

func init() {
	debugChecks.Store(debugBuild)
}

// SetDebugChecks toggles the precondition checks on the hot paths of the
// instance buffer. They default to on for builds tagged rgldebug.
func SetDebugChecks(enabled bool) {
	debugChecks.Store(enabled)
}

// DebugChecks reports whether precondition checks are active.
func DebugChecks() bool {
	return debugChecks.Load()
}

func assertf(cond bool, op string, format string, args ...any) {
	if cond || !debugChecks.Load() {
		return
	}
	err := &PreconditionError{Op: op, Reason: fmt.Sprintf(format, args...)}
	Log().Error("precondition violated", "op", op, "reason", err.Reason)
	panic(err)
}
