// pkg/lethe_io/context.go

package lethe_io

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/CodeMonkeyCybersecurity/lethe/pkg/lethe_err"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/lethe/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Timestamp  time.Time
	Span       trace.Span
	Command    string
	Attributes map[string]string

	stop context.CancelFunc
}

// NewContext sets up tracing, logging, and signal-aware cancellation for one
// command invocation. Interrupt and TERM cancel rc.Ctx, which the pipeline
// checks between stages and between overwrite passes.
func NewContext(ctx context.Context, cmdName string) *RuntimeContext {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	ctx, span := telemetry.Start(ctx, cmdName)
	traceID := span.SpanContext().TraceID().String()

	log := zap.L().With(
		zap.String("command", cmdName),
		zap.String("trace_id", traceID),
	).Named(cmdName)

	return &RuntimeContext{
		Ctx:        ctx,
		Log:        log,
		Timestamp:  time.Now(),
		Span:       span,
		Command:    cmdName,
		Attributes: make(map[string]string),
		stop:       stop,
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("panic recovered", zap.Any("panic", r))
	}
}

// End logs the command outcome, records the final span attributes, and
// flushes logging. Call via defer with the command's named error return.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.stop()
	defer rc.Span.End()

	duration := time.Since(rc.Timestamp)
	success := *errPtr == nil

	switch {
	case success:
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
	case lethe_err.IsExpectedUserError(*errPtr):
		rc.Log.Warn("Command ended at user request", zap.Duration("duration", duration), zap.Error(*errPtr))
	default:
		rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.Error(*errPtr))
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("args", telemetry.TruncateOrHashArgs(os.Args[1:])),
		attribute.String("version", shared.Version),
		attribute.String("error_type", classifyError(*errPtr)),
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)

	shared.SafeSync()
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if lethe_err.IsExpectedUserError(err) {
		return "user"
	}
	return "system"
}
