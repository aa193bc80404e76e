// pkg/telemetry/telemetry_test.go

package telemetry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateOrHashArgsRedactsPaths(t *testing.T) {
	out := TruncateOrHashArgs([]string{"-r", "--passes", "/home/alice/secret.txt"})
	assert.Contains(t, out, "-r")
	assert.Contains(t, out, "--passes")
	assert.Contains(t, out, "sha256:")
	assert.NotContains(t, out, "secret", "target paths must never reach a span in the clear")
}

func TestTruncateOrHashArgsStable(t *testing.T) {
	a := TruncateOrHashArgs([]string{"/data/x"})
	b := TruncateOrHashArgs([]string{"/data/x"})
	assert.Equal(t, a, b, "the same path should always redact to the same token")
}

func TestTruncateOrHashArgsBounded(t *testing.T) {
	args := make([]string, 64)
	for i := range args {
		args[i] = strings.Repeat("x", 32)
	}
	out := TruncateOrHashArgs(args)
	assert.LessOrEqual(t, len(out), 256+len("..."))
	assert.True(t, strings.HasSuffix(out, "..."))
}

func TestIsEnabledDefaultsOff(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	assert.False(t, IsEnabled())
}

func TestAnonTelemetryIDStable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	first := AnonTelemetryID()
	second := AnonTelemetryID()
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "anon-"))
}
