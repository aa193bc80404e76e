/* pkg/logger/fallback.go */

package logger

import (
	"fmt"
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFallbackLogger builds a console-only logger for environments where no
// log file path is writable.
func NewFallbackLogger() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.AddSync(os.Stdout),
		level,
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitFallback installs the console-only logger as the global.
func InitFallback() {
	replaceGlobals(NewFallbackLogger())
}

// InitializeWithFallback builds the standard tee logger: human-readable
// console output on stdout plus JSON records appended to the first
// writable platform log path. Falls back to console-only when no path
// can be opened.
func InitializeWithFallback() {
	level.SetLevel(ParseLogLevel(os.Getenv("LOG_LEVEL")))

	path, err := FindWritableLogPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "no writable log path found, logging to console only")
		InitFallback()
		return
	}

	writer, err := GetLogFileWriter(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not open log file, logging to console only:", err)
		InitFallback()
		return
	}

	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()), zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), writer, level),
	)

	l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	replaceGlobals(l)
	l.Debug("Logger initialized", zap.String("log_path", path))
}

// replaceGlobals wires the logger into both the zap and otelzap globals so
// otelzap.Ctx callers pick it up.
func replaceGlobals(l *zap.Logger) {
	SetLogger(l)
	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l))
}
