// pkg/logger/logger.go

package logger

import (
	"go.uber.org/zap"
)

var log *zap.Logger

// SetLogger installs l as the package-level logger.
func SetLogger(l *zap.Logger) {
	log = l
}

// L returns the active logger, falling back to the zap global if
// initialization has not happened yet.
func L() *zap.Logger {
	if log != nil {
		return log
	}
	return zap.L()
}

// GetLogger returns the global logger instance, initializing a console
// fallback on first use.
func GetLogger() *zap.Logger {
	if log == nil {
		InitFallback()
	}
	return log
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() error {
	if log != nil {
		return log.Sync()
	}
	return nil
}
