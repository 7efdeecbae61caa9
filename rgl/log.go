package rgl

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

var pkgLogger atomic.Pointer[log.Logger]

func init() {
	pkgLogger.Store(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "rgl",
		Level:           log.WarnLevel,
	}))
}

// Log returns the logger used by rgl and rgl/gpu.
func Log() *log.Logger {
	return pkgLogger.Load()
}

// SetLogger replaces the package logger. A nil logger is ignored.
func SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	pkgLogger.Store(l.WithPrefix("rgl"))
}
