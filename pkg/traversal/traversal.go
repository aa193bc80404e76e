// pkg/traversal/traversal.go

// Package traversal turns command-line paths into a destruction plan:
// files and symlinks to wipe, directories in bottom-up removal order, and
// targets that cannot be processed at all.
package traversal

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
)

type Kind int

const (
	KindFile Kind = iota
	KindSymlink
	KindDir
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	case KindDir:
		return "directory"
	default:
		return "unknown"
	}
}

// Target is one filesystem entry scheduled for destruction.
type Target struct {
	Path string
	Size int64
	Kind Kind
}

// BadTarget is a requested path that can never enter the pipeline, with
// the reason it was rejected.
type BadTarget struct {
	Path string
	Err  error
}

// Plan is the full set of work for one invocation. Dirs is ordered so
// that every directory appears before its parent, which lets the caller
// remove trees without recursing.
type Plan struct {
	Files []Target
	Dirs  []Target
	Bad   []BadTarget
}

// Total counts every entry the plan will attempt.
func (p *Plan) Total() int {
	return len(p.Files) + len(p.Dirs) + len(p.Bad)
}

// Collect inspects each root with Lstat so symlinks are planned as
// themselves, never as their referents. Directories require recursive;
// without it they become BadTargets and collection continues with the
// remaining roots. A cancelled context stops the walk and returns the
// partial plan alongside the context error.
func Collect(ctx context.Context, roots []string, recursive bool) (*Plan, error) {
	plan := &Plan{}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return plan, err
		}

		info, err := os.Lstat(root)
		if err != nil {
			plan.Bad = append(plan.Bad, BadTarget{Path: root, Err: cerr.Wrapf(err, "cannot access %s", root)})
			continue
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			plan.Files = append(plan.Files, Target{Path: root, Size: info.Size(), Kind: KindSymlink})
		case info.IsDir():
			if !recursive {
				plan.Bad = append(plan.Bad, BadTarget{
					Path: root,
					Err:  cerr.Newf("%s is a directory (pass --recursive to destroy directory trees)", root),
				})
				continue
			}
			if err := collectTree(ctx, root, plan); err != nil {
				return plan, err
			}
		case info.Mode().IsRegular():
			plan.Files = append(plan.Files, Target{Path: root, Size: info.Size(), Kind: KindFile})
		default:
			plan.Bad = append(plan.Bad, BadTarget{
				Path: root,
				Err:  cerr.Newf("%s is not a regular file, symlink, or directory", root),
			})
		}
	}

	return plan, nil
}

// collectTree walks one directory root. WalkDir visits parents before
// children, so the directories gathered here are reversed before being
// appended to the plan.
func collectTree(ctx context.Context, root string, plan *Plan) error {
	var dirs []Target

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if cErr := ctx.Err(); cErr != nil {
			return cErr
		}
		if err != nil {
			plan.Bad = append(plan.Bad, BadTarget{Path: path, Err: cerr.Wrapf(err, "cannot walk %s", path)})
			if d != nil && d.IsDir() {
				// An unreadable directory is reported twice by WalkDir;
				// drop the entry from the first visit so it is not also
				// scheduled for removal.
				if n := len(dirs); n > 0 && dirs[n-1].Path == path {
					dirs = dirs[:n-1]
				}
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			plan.Files = append(plan.Files, Target{Path: path, Kind: KindSymlink})
		case d.IsDir():
			dirs = append(dirs, Target{Path: path, Kind: KindDir})
		case d.Type().IsRegular():
			info, infoErr := d.Info()
			if infoErr != nil {
				plan.Bad = append(plan.Bad, BadTarget{Path: path, Err: cerr.Wrapf(infoErr, "cannot stat %s", path)})
				return nil
			}
			plan.Files = append(plan.Files, Target{Path: path, Size: info.Size(), Kind: KindFile})
		default:
			plan.Bad = append(plan.Bad, BadTarget{
				Path: path,
				Err:  cerr.Newf("%s is not a regular file, symlink, or directory", path),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		plan.Dirs = append(plan.Dirs, dirs[i])
	}
	return nil
}

// Canonical normalizes a path for audit hashing: the parent chain is
// made absolute and symlink-resolved, while the final component keeps
// its own name so destroying a symlink never records its referent.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	dir := filepath.Dir(abs)
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return abs
	}
	return filepath.Join(resolved, filepath.Base(abs))
}
