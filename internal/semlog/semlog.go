// Package semlog provides the build-stage-scoped logger shared by every
// pipeline component. Callers that don't care about diagnostics pay
// nothing: the Logger returned by Nop discards everything. A zero-value
// Logger is not usable (WarnOnce and SetVerbose panic on it); construct
// one with New or Nop.
package semlog

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.Logger with an atomic level so Builder.SetVerbose
// can flip verbosity without rebuilding the logger, mirroring how
// cmd/nerd/main.go toggles zap.NewAtomicLevelAt between production and
// debug configs.
type Logger struct {
	mu     sync.RWMutex
	zl     *zap.Logger
	level  zap.AtomicLevel
	warned map[string]bool
}

// New returns a Logger writing to stderr at InfoLevel.
func New() *Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	zl, err := cfg.Build()
	if err != nil {
		zl = zap.NewNop()
	}
	return &Logger{zl: zl, level: level, warned: make(map[string]bool)}
}

// Nop returns a Logger that discards everything, the default for a
// Builder that never calls SetLogger.
func Nop() *Logger {
	return &Logger{zl: zap.NewNop(), level: zap.NewAtomicLevelAt(zapcore.FatalLevel), warned: make(map[string]bool)}
}

// SetVerbose raises the atomic level to DebugLevel when true, InfoLevel
// otherwise.
func (l *Logger) SetVerbose(v bool) {
	if l == nil {
		return
	}
	if v {
		l.level.SetLevel(zapcore.DebugLevel)
	} else {
		l.level.SetLevel(zapcore.InfoLevel)
	}
}

// Stage returns a sub-logger named after the pipeline stage, used to
// annotate StageFailure errors and stage-scoped debug traces.
func (l *Logger) Stage(name string) *zap.Logger {
	if l == nil || l.zl == nil {
		return zap.NewNop()
	}
	return l.zl.Named(name)
}

// WarnOnce emits a Warn-level log the first time it is called for a
// given key and is silent afterward, so a long-running process isn't
// spammed with the same warning on every build().
func (l *Logger) WarnOnce(key, msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.warned[key] {
		return
	}
	l.warned[key] = true
	l.zl.Warn(msg, fields...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	if l == nil || l.zl == nil {
		return nil
	}
	return l.zl.Sync()
}
