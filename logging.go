package jyu

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jyu3d/jyu/rgl"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger is a Logger backed by charmbracelet/log.
type DefaultLogger struct {
	*log.Logger
}

func NewDefaultLogger(w io.Writer, prefix string, level log.Level) *DefaultLogger {
	return &DefaultLogger{log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
		Level:           level,
	})}
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.GetLevel() <= log.DebugLevel
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}
}

// LoggingModule installs a DefaultLogger as a resource and routes the rgl
// package log through it. Level defaults to ApplicationSpec.LogLevel, and Debug
// forces debug level.
type LoggingModule struct {
	Prefix string
	Level  string
	Output io.Writer
}

func (m LoggingModule) Install(app *App, cmd *Commands) error {
	spec := app.Spec()

	levelName := m.Level
	if levelName == "" {
		levelName = spec.LogLevel
	}
	level := log.InfoLevel
	if levelName != "" {
		parsed, err := log.ParseLevel(levelName)
		if err != nil {
			return err
		}
		level = parsed
	}
	if spec.Debug {
		level = log.DebugLevel
	}

	out := m.Output
	if out == nil {
		out = os.Stderr
	}
	prefix := m.Prefix
	if prefix == "" {
		prefix = spec.Name
	}

	logger := NewDefaultLogger(out, prefix, level)
	cmd.AddResources(logger)
	rgl.SetLogger(logger.Logger)
	return nil
}

// Nop logger and App helper accessor

type nopLogger struct{}

func NewNopLogger() Logger                             { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
