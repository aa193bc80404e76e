// pkg/unlink/unlink.go

// Package unlink removes directory entries and makes the removal durable
// by syncing the parent directory afterwards.
package unlink

import (
	"context"
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ErrNotEmpty reports an attempt to remove a directory that still has
// entries. Callers decide whether that is a usage error or a bug in
// their traversal order.
var ErrNotEmpty = cerr.New("directory not empty")

type Unlinker struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Unlinker {
	return &Unlinker{logger: logger.Named("unlink")}
}

// Remove unlinks a file or symlink and syncs its parent directory so the
// removal survives a crash. A failed sync is logged but not fatal: the
// entry itself is already gone.
func (u *Unlinker) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return cerr.Wrapf(err, "failed to unlink %s", path)
	}

	u.syncParent(path)
	u.logger.Debug("Entry unlinked", zap.String("path", path))
	return nil
}

// RemoveDir removes an empty directory. Non-empty directories are refused
// with ErrNotEmpty before any removal is attempted.
func (u *Unlinker) RemoveDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return cerr.Wrapf(err, "failed to read directory %s", path)
	}
	if len(entries) > 0 {
		return cerr.Wrapf(ErrNotEmpty, "%s has %d remaining entries", path, len(entries))
	}

	if err := os.Remove(path); err != nil {
		return cerr.Wrapf(err, "failed to remove directory %s", path)
	}

	u.syncParent(path)
	u.logger.Debug("Directory removed", zap.String("path", path))
	return nil
}

func (u *Unlinker) syncParent(path string) {
	parent := filepath.Dir(path)
	dir, err := os.Open(parent)
	if err != nil {
		u.logger.Warn("Could not open parent directory for sync",
			zap.String("parent", parent),
			zap.Error(err))
		return
	}
	defer func() { _ = dir.Close() }()

	if err := dir.Sync(); err != nil {
		u.logger.Warn("Parent directory sync failed",
			zap.String("parent", parent),
			zap.Error(err))
	}
}
