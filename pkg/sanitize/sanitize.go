// pkg/sanitize/sanitize.go

// Package sanitize scrubs filesystem metadata before removal: timestamps
// are pushed to random moments in the past year and the entry is renamed
// through several rounds of meaningless names.
package sanitize

import (
	"context"
	"crypto/rand"
	"math/big"
	"os"
	"path/filepath"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

const (
	nameLength       = 16
	renameIterations = 3
	nameCharset      = "abcdefghijklmnopqrstuvwxyz0123456789"

	// timestampWindow bounds how far into the past randomized timestamps
	// land. Epoch timestamps would themselves be a forensic marker.
	timestampWindow = 365 * 24 * time.Hour
)

type Sanitizer struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Sanitizer {
	return &Sanitizer{logger: logger.Named("sanitize")}
}

// Sanitize randomizes path's timestamps and renames it to obfuscated
// extension-less names in the same parent directory. It always returns
// the most recent path that exists, so the caller can continue with
// removal even when sanitization only partially applied.
func (s *Sanitizer) Sanitize(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return path, err
	}

	var result error

	if err := s.randomizeTimestamps(path); err != nil {
		result = multierror.Append(result, err)
	}

	current := path
	for i := 0; i < renameIterations; i++ {
		name, err := randomName(nameLength)
		if err != nil {
			result = multierror.Append(result, err)
			break
		}
		next := filepath.Join(filepath.Dir(current), name)
		if err := os.Rename(current, next); err != nil {
			result = multierror.Append(result, cerr.Wrapf(err, "rename %d of %d failed", i+1, renameIterations))
			break
		}
		current = next
	}

	if result != nil {
		return current, cerr.Wrap(result, "metadata sanitization incomplete")
	}

	s.logger.Debug("Metadata sanitized",
		zap.String("path", path),
		zap.String("obfuscated", filepath.Base(current)))
	return current, nil
}

// randomizeTimestamps sets atime and mtime to one random moment within the
// past year. Symlinks are mutated directly, never their referents.
func (s *Sanitizer) randomizeTimestamps(path string) error {
	ts, err := randomPastTime(timestampWindow)
	if err != nil {
		return err
	}

	info, err := os.Lstat(path)
	if err != nil {
		return cerr.Wrapf(err, "failed to stat %s", path)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		tv := []unix.Timeval{
			unix.NsecToTimeval(ts.UnixNano()),
			unix.NsecToTimeval(ts.UnixNano()),
		}
		if err := unix.Lutimes(path, tv); err != nil {
			return cerr.Wrapf(err, "failed to set symlink timestamps on %s", path)
		}
		return nil
	}

	if err := os.Chtimes(path, ts, ts); err != nil {
		return cerr.Wrapf(err, "failed to set timestamps on %s", path)
	}
	return nil
}

func randomPastTime(window time.Duration) (time.Time, error) {
	offset, err := rand.Int(rand.Reader, big.NewInt(int64(window/time.Second)))
	if err != nil {
		return time.Time{}, cerr.Wrap(err, "failed to read from entropy source")
	}
	return time.Now().Add(-time.Duration(offset.Int64()) * time.Second), nil
}

func randomName(length int) (string, error) {
	charsetLen := big.NewInt(int64(len(nameCharset)))
	name := make([]byte, length)
	for i := range name {
		idx, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", cerr.Wrap(err, "failed to read from entropy source")
		}
		name[i] = nameCharset[idx.Int64()]
	}
	return string(name), nil
}
