// pkg/overwrite/overwrite.go

// Package overwrite scrubs file contents with repeated full-extent passes
// of fresh random data.
package overwrite

import (
	"context"
	"fmt"
	"os"

	"github.com/CodeMonkeyCybersecurity/lethe/pkg/pattern"
	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

const chunkSize = 1 << 20

// PassError reports an overwrite failure together with the number of full
// passes already on stable storage, which drives the partial-failure
// policy upstream.
type PassError struct {
	Pass      int // 1-based pass that failed
	Completed int // full passes flushed before the failure
	Err       error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("overwrite pass %d failed after %d completed passes: %v", e.Pass, e.Completed, e.Err)
}

func (e *PassError) Unwrap() error { return e.Err }

// Overwriter writes pass after pass of CSPRNG data over the full extent of
// a file, syncing between passes so buffering can never merge them.
type Overwriter struct {
	logger *zap.Logger
	gen    *pattern.Generator
}

func New(logger *zap.Logger) *Overwriter {
	return &Overwriter{
		logger: logger.Named("overwrite"),
		gen:    pattern.NewGenerator(),
	}
}

// Overwrite runs passes full-extent passes over path. It returns the
// number of passes completed and flushed; failures carry that count as a
// *PassError. Cancellation is honored between passes only, never
// mid-pass, so an interrupted run still leaves whole passes behind.
func (o *Overwriter) Overwrite(ctx context.Context, path string, passes int) (int, error) {
	if passes < 1 {
		return 0, cerr.Newf("invalid pass count %d", passes)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NOFOLLOW, 0)
	if err != nil {
		return 0, cerr.Wrapf(err, "failed to open %s for overwrite", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, cerr.Wrapf(err, "failed to stat %s", path)
	}
	size := info.Size()

	buf := make([]byte, chunkSize)
	completed := 0
	for pass := 1; pass <= passes; pass++ {
		if err := ctx.Err(); err != nil {
			return completed, err
		}
		if err := o.writePass(f, size, buf); err != nil {
			return completed, &PassError{Pass: pass, Completed: completed, Err: err}
		}
		// Flush before the next pass so passes stay independent on disk
		if err := f.Sync(); err != nil {
			return completed, &PassError{Pass: pass, Completed: completed, Err: err}
		}
		completed++
		o.logger.Debug("Overwrite pass complete",
			zap.String("path", path),
			zap.Int("pass", pass),
			zap.Int("total", passes),
			zap.Int64("bytes", size))
	}

	return completed, nil
}

func (o *Overwriter) writePass(f *os.File, size int64, buf []byte) error {
	var off int64
	for off < size {
		n := int64(len(buf))
		if size-off < n {
			n = size - off
		}
		chunk := buf[:n]
		if err := o.gen.Fill(chunk); err != nil {
			return err
		}
		if _, err := f.WriteAt(chunk, off); err != nil {
			return cerr.Wrapf(err, "write failed at offset %d", off)
		}
		off += n
	}
	return nil
}
