// pkg/telemetry/telemetry.go
package telemetry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeMonkeyCybersecurity/lethe/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var tracer trace.Tracer

// Init configures OpenTelemetry; call this early in main(). Telemetry is
// opt-in via a marker file; without it, a noop provider is installed so
// Start stays callable everywhere.
func Init(service string) error {
	if !IsEnabled() {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer(service)
		return nil
	}

	telemetryDir := "/var/log/lethe"
	if err := os.MkdirAll(telemetryDir, xdg.DirPermPrivate); err != nil {
		// Fall back to the user state dir when the system path is not writable
		telemetryDir = filepath.Dir(xdg.XDGStatePath(service, "telemetry.jsonl"))
		if err := os.MkdirAll(telemetryDir, xdg.DirPermPrivate); err != nil {
			return cerr.Wrap(err, "failed to create telemetry directory")
		}
	}

	// Spans append to a JSONL file, one span per line
	telemetryFile := filepath.Join(telemetryDir, "telemetry.jsonl")
	file, err := os.OpenFile(telemetryFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, xdg.FilePermOwnerReadWrite)
	if err != nil {
		return cerr.Wrap(err, "failed to open telemetry file")
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithoutTimestamps(), // spans already carry timestamps
	)
	if err != nil {
		file.Close()
		return cerr.Wrap(err, "failed to create file exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(
			sdkresource.NewWithAttributes(
				semconv.SchemaURL,
				attribute.String("service.name", service),
				attribute.String("host.name", hostname()),
			),
		),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(service)
	return nil
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if tracer == nil {
		tracer = otel.Tracer("lethe")
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// IsEnabled reports whether the user has opted in to telemetry.
func IsEnabled() bool {
	path := filepath.Join(os.Getenv("HOME"), ".lethe", "telemetry_on")
	_, err := os.Stat(path)
	return err == nil
}

// AnonTelemetryID returns a stable anonymous installation identifier.
func AnonTelemetryID() string {
	path := filepath.Join(os.Getenv("HOME"), ".lethe", "telemetry_id")

	if data, err := os.ReadFile(path); err == nil {
		return strings.TrimSpace(string(data))
	}

	id := "anon-" + uuid.New().String()
	_ = os.MkdirAll(filepath.Dir(path), xdg.DirPermPrivate)
	_ = os.WriteFile(path, []byte(id), xdg.FilePermOwnerReadWrite)

	return id
}

// TruncateOrHashArgs bounds the args attribute recorded on spans.
// Non-flag tokens are target paths; they are replaced by short hashes so
// spans honor the same hash-only contract as the audit trail.
func TruncateOrHashArgs(args []string) string {
	redacted := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			redacted = append(redacted, arg)
			continue
		}
		sum := sha256.Sum256([]byte(arg))
		redacted = append(redacted, "sha256:"+hex.EncodeToString(sum[:8]))
	}

	full := strings.Join(redacted, " ")
	if len(full) > 256 {
		return full[:256] + "..."
	}
	return full
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
