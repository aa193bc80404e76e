/* pkg/logger/config.go */

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// level gates every core built by this package, so verbosity changes
// apply to console and file output alike.
var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// ParseLogLevel maps a LOG_LEVEL environment value onto a zap level.
func ParseLogLevel(s string) zapcore.Level {
	switch s {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	case "DPANIC":
		return zapcore.DPanicLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLevel adjusts the active log level at runtime (used by --verbose).
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "T"
	cfg.LevelKey = "L"
	cfg.NameKey = "N"
	cfg.CallerKey = "C"
	cfg.MessageKey = "M"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}
