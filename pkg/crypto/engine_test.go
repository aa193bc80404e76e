// pkg/crypto/engine_test.go
package crypto

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEncryptFile(t *testing.T) {
	engine := NewEngine(zaptest.NewLogger(t))
	ctx := context.Background()
	tempDir := t.TempDir()

	for _, alg := range []Algorithm{AlgorithmAES256CTR, AlgorithmChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			path := filepath.Join(tempDir, "plain-"+string(alg))
			plaintext := bytes.Repeat([]byte("attack at dawn "), 1000)
			require.NoError(t, os.WriteFile(path, plaintext, 0600))

			require.NoError(t, engine.EncryptFile(ctx, path, alg))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Len(t, got, len(plaintext), "encryption must preserve length")
			assert.False(t, bytes.Equal(plaintext, got), "content must no longer be plaintext")
			assert.False(t, bytes.Contains(got, []byte("attack at dawn")), "no plaintext fragment may survive")
		})
	}

	t.Run("file larger than one chunk", func(t *testing.T) {
		path := filepath.Join(tempDir, "multi-chunk")
		plaintext := bytes.Repeat([]byte("chunk boundary check "), 110000) // ~2.2 MiB
		require.NoError(t, os.WriteFile(path, plaintext, 0600))

		require.NoError(t, engine.EncryptFile(ctx, path, AlgorithmAES256CTR))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Len(t, got, len(plaintext), "length must survive the chunk loop")
		assert.False(t, bytes.Contains(got, []byte("chunk boundary check")))
	})

	t.Run("small file", func(t *testing.T) {
		path := filepath.Join(tempDir, "ten-bytes")
		require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0600))

		require.NoError(t, engine.EncryptFile(ctx, path, AlgorithmChaCha20))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Len(t, got, 10)
		assert.NotEqual(t, []byte("0123456789"), got)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(tempDir, "empty")
		require.NoError(t, os.WriteFile(path, nil, 0600))

		require.NoError(t, engine.EncryptFile(ctx, path, AlgorithmAES256CTR))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})

	t.Run("missing file", func(t *testing.T) {
		err := engine.EncryptFile(ctx, filepath.Join(tempDir, "nope"), AlgorithmAES256CTR)
		assert.Error(t, err)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		path := filepath.Join(tempDir, "algcheck")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0600))

		err := engine.EncryptFile(ctx, path, Algorithm("rot13"))
		assert.Error(t, err)
	})

	t.Run("symlink refused", func(t *testing.T) {
		targetPath := filepath.Join(tempDir, "link-target")
		require.NoError(t, os.WriteFile(targetPath, []byte("do not touch"), 0600))
		link := filepath.Join(tempDir, "link")
		require.NoError(t, os.Symlink(targetPath, link))

		err := engine.EncryptFile(ctx, link, AlgorithmAES256CTR)
		assert.Error(t, err, "O_NOFOLLOW must refuse symlinks")

		got, err := os.ReadFile(targetPath)
		require.NoError(t, err)
		assert.Equal(t, []byte("do not touch"), got, "referent must be untouched")
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := filepath.Join(tempDir, "cancelled")
		require.NoError(t, os.WriteFile(path, []byte("still plaintext"), 0600))

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		err := engine.EncryptFile(cancelled, path, AlgorithmAES256CTR)
		assert.ErrorIs(t, err, context.Canceled)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("still plaintext"), got, "cancellation before the stage leaves the file alone")
	})
}

func TestHashString(t *testing.T) {
	// Fixed SHA-256 vector
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		HashString("hello"))

	assert.Equal(t, HashString("/tmp/a"), HashString("/tmp/a"))
	assert.NotEqual(t, HashString("/tmp/a"), HashString("/tmp/b"))
	assert.Len(t, HashString(""), 64)
}

func TestSecureZero(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	SecureZero(buf)
	assert.Equal(t, []byte{0, 0, 0, 0}, buf)
}
