// pkg/crypto/engine.go

// Package crypto implements the encryption stage of the destruction
// pipeline plus the hashing helpers shared with the audit trail.
package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"io"
	"os"

	"github.com/awnumar/memguard"
	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/sys/unix"
)

// Algorithm selects the cipher used for the in-place encryption pass.
type Algorithm string

const (
	// AlgorithmAES256CTR runs AES-256 in counter mode. Counter mode is
	// length-preserving, so file-size metadata never changes here.
	AlgorithmAES256CTR Algorithm = "aes-256-ctr"

	// AlgorithmChaCha20 is the stream-cipher alternative.
	AlgorithmChaCha20 Algorithm = "chacha20"
)

const (
	keySize   = 32
	chunkSize = 1 << 20
)

// Engine encrypts file contents in place with a fresh ephemeral key per
// file. Keys live in locked guarded memory and are wiped before
// EncryptFile returns, on success and failure alike.
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger.Named("cipher")}
}

// EncryptFile encrypts path's contents in place and syncs the result to
// stable storage. The key and nonce never leave this call and are never
// logged. Symlinks are refused at open time via O_NOFOLLOW.
func (e *Engine) EncryptFile(ctx context.Context, path string, algorithm Algorithm) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|unix.O_NOFOLLOW, 0)
	if err != nil {
		return cerr.Wrapf(err, "failed to open %s for encryption", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return cerr.Wrapf(err, "failed to stat %s", path)
	}
	if info.Size() == 0 {
		e.logger.Debug("Empty file, nothing to encrypt", zap.String("path", path))
		return nil
	}

	key := memguard.NewBufferRandom(keySize)
	defer key.Destroy()

	stream, err := newStream(algorithm, key.Bytes())
	if err != nil {
		return err
	}

	buf := make([]byte, chunkSize)
	defer SecureZero(buf)

	var off int64
	for {
		n, rerr := f.ReadAt(buf, off)
		if n > 0 {
			stream.XORKeyStream(buf[:n], buf[:n])
			if _, werr := f.WriteAt(buf[:n], off); werr != nil {
				return cerr.Wrapf(werr, "failed to write ciphertext to %s at offset %d", path, off)
			}
			off += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return cerr.Wrapf(rerr, "failed to read %s at offset %d", path, off)
		}
	}

	if err := f.Sync(); err != nil {
		return cerr.Wrapf(err, "failed to sync %s after encryption", path)
	}

	e.logger.Debug("File encrypted in place",
		zap.String("path", path),
		zap.String("algorithm", string(algorithm)),
		zap.Int64("bytes", info.Size()))
	return nil
}

// newStream builds the keystream for the selected algorithm. The IV or
// nonce is random per invocation; keys are never reused across files, so
// nonce reuse cannot occur.
func newStream(algorithm Algorithm, key []byte) (cipher.Stream, error) {
	switch algorithm {
	case AlgorithmAES256CTR:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, cerr.Wrap(err, "failed to initialize AES-256")
		}
		iv, err := randomBytes(aes.BlockSize)
		if err != nil {
			return nil, err
		}
		return cipher.NewCTR(block, iv), nil

	case AlgorithmChaCha20:
		nonce, err := randomBytes(chacha20.NonceSize)
		if err != nil {
			return nil, err
		}
		c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
		if err != nil {
			return nil, cerr.Wrap(err, "failed to initialize ChaCha20")
		}
		return c, nil

	default:
		return nil, cerr.Newf("unsupported algorithm %q", algorithm)
	}
}
