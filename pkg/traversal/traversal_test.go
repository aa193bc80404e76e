// pkg/traversal/traversal_test.go

package traversal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree creates root/{a.txt, sub/{b.txt, deeper/c.txt}, link -> a.txt}.
func buildTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deeper"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("aaa"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("bb"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "deeper", "c.txt"), []byte("c"), 0o600))
	require.NoError(t, os.Symlink(filepath.Join(root, "a.txt"), filepath.Join(root, "link")))
	return root
}

func TestCollectSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	plan, err := Collect(context.Background(), []string{path}, false)
	require.NoError(t, err)
	require.Len(t, plan.Files, 1)
	assert.Equal(t, KindFile, plan.Files[0].Kind)
	assert.Equal(t, int64(5), plan.Files[0].Size)
	assert.Empty(t, plan.Dirs)
	assert.Empty(t, plan.Bad)
}

func TestCollectRecursiveTree(t *testing.T) {
	root := buildTree(t)

	plan, err := Collect(context.Background(), []string{root}, true)
	require.NoError(t, err)

	var files, links int
	for _, f := range plan.Files {
		switch f.Kind {
		case KindFile:
			files++
		case KindSymlink:
			links++
		}
	}
	assert.Equal(t, 3, files)
	assert.Equal(t, 1, links)

	// Directories must come out children-first so removal never hits a
	// non-empty parent.
	require.Len(t, plan.Dirs, 3)
	assert.Equal(t, filepath.Join(root, "sub", "deeper"), plan.Dirs[0].Path)
	assert.Equal(t, filepath.Join(root, "sub"), plan.Dirs[1].Path)
	assert.Equal(t, root, plan.Dirs[2].Path)

	assert.Equal(t, 7, plan.Total())
}

func TestCollectDirectoryWithoutRecursive(t *testing.T) {
	root := buildTree(t)

	plan, err := Collect(context.Background(), []string{root}, false)
	require.NoError(t, err)
	assert.Empty(t, plan.Files)
	assert.Empty(t, plan.Dirs)
	require.Len(t, plan.Bad, 1)
	assert.Contains(t, plan.Bad[0].Err.Error(), "--recursive")
}

func TestCollectMissingTarget(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	plan, err := Collect(context.Background(), []string{missing}, false)
	require.NoError(t, err)
	require.Len(t, plan.Bad, 1)
	assert.Equal(t, missing, plan.Bad[0].Path)
	assert.ErrorIs(t, plan.Bad[0].Err, os.ErrNotExist)
}

func TestCollectMixedRoots(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("ok"), 0o600))
	missing := filepath.Join(dir, "missing.txt")

	plan, err := Collect(context.Background(), []string{missing, good}, false)
	require.NoError(t, err)
	assert.Len(t, plan.Files, 1, "a bad root must not stop collection of the rest")
	assert.Len(t, plan.Bad, 1)
}

func TestCollectSymlinkRootNeverFollowed(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "referent.txt")
	require.NoError(t, os.WriteFile(target, []byte("keep me"), 0o600))
	link := filepath.Join(dir, "doomed-link")
	require.NoError(t, os.Symlink(target, link))

	plan, err := Collect(context.Background(), []string{link}, false)
	require.NoError(t, err)
	require.Len(t, plan.Files, 1)
	assert.Equal(t, KindSymlink, plan.Files[0].Kind)
	assert.Equal(t, link, plan.Files[0].Path, "the plan must name the link, not the referent")
}

func TestCollectCancelledContext(t *testing.T) {
	root := buildTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Collect(ctx, []string{root}, true)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCanonicalResolvesParentNotLeaf(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(real, 0o700))
	alias := filepath.Join(dir, "alias")
	require.NoError(t, os.Symlink(real, alias))

	target := filepath.Join(real, "t.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o600))

	viaAlias := Canonical(filepath.Join(alias, "t.txt"))
	direct := Canonical(target)
	assert.Equal(t, direct, viaAlias, "paths through a directory symlink must canonicalize identically")

	link := filepath.Join(real, "leaf-link")
	require.NoError(t, os.Symlink(target, link))
	assert.Equal(t, "leaf-link", filepath.Base(Canonical(link)),
		"a symlink target keeps its own name in the canonical form")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "symlink", KindSymlink.String())
	assert.Equal(t, "directory", KindDir.String())
}
