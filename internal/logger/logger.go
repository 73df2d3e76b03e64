// Package logger wraps zap construction so mains can build a leveled
// production logger in two calls.
package logger

import (
	"go.uber.org/zap"
)

// Logger carries the application's zap logger.
type Logger struct {
	// Log is the underlying zap logger. It is a no-op until Init runs.
	Log *zap.Logger
}

// New returns a Logger with a no-op core so it is safe to use before Init.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production logger at the given level ("debug", "info",
// "warn", "error"). Level parsing is case-insensitive.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = logger
	return nil
}
