// pkg/pattern/pattern_test.go
package pattern

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorFill(t *testing.T) {
	gen := NewGenerator()

	buf := make([]byte, 4096)
	require.NoError(t, gen.Fill(buf))

	// A 4 KiB block of CSPRNG output is all-zero with probability 2^-32768
	assert.NotEqual(t, make([]byte, 4096), buf)
}

func TestGeneratorPattern(t *testing.T) {
	gen := NewGenerator()

	t.Run("length", func(t *testing.T) {
		for _, n := range []int{0, 1, 16, 4096} {
			p, err := gen.Pattern(n)
			require.NoError(t, err)
			assert.Len(t, p, n)
		}
	})

	t.Run("negative length rejected", func(t *testing.T) {
		_, err := gen.Pattern(-1)
		assert.Error(t, err)
	})

	t.Run("distinct across calls", func(t *testing.T) {
		a, err := gen.Pattern(1024)
		require.NoError(t, err)
		b, err := gen.Pattern(1024)
		require.NoError(t, err)
		assert.False(t, bytes.Equal(a, b), "consecutive patterns must not repeat")
	})
}
