package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaklabco/gomdstruct/pkg/fsutil"
	"github.com/yaklabco/gomdstruct/pkg/runner"
)

// mkFiles creates the named files (with parent directories) under dir.
func mkFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("content\n"), 0o644))
	}
}

// relPaths converts discovered absolute paths back to dir-relative
// slash paths for stable assertions.
func relPaths(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscoverExtensionFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mkFiles(t, dir, "notes.txt", "readme.md", "guide.markdown", "image.png", "script.go")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"guide.markdown", "notes.txt", "readme.md"},
		relPaths(t, dir, files))
}

func TestDiscoverCustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mkFiles(t, dir, "notes.txt", "log.TXT", "readme.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".txt"},
	})
	require.NoError(t, err)

	// Extension matching is case-insensitive.
	assert.Equal(t, []string{"log.TXT", "notes.txt"}, relPaths(t, dir, files))
}

func TestDiscoverRecursesAndSkipsHidden(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mkFiles(t, dir,
		"top.md",
		"sub/nested.md",
		"sub/deeper/deep.txt",
		".hidden.md",
		".git/config.md",
	)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"sub/deeper/deep.txt", "sub/nested.md", "top.md"},
		relPaths(t, dir, files))
}

func TestDiscoverSkipsBackupSidecars(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mkFiles(t, dir, "notes.txt", "notes.txt"+fsutil.BackupSuffix)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, relPaths(t, dir, files))

	// Even when the backup extension is explicitly requested, sidecars
	// stay out of the input set.
	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".bak"},
	})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverExplicitFileBypassesExtensionFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mkFiles(t, dir, "notes.rst")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"notes.rst"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"notes.rst"}, relPaths(t, dir, files))
}

func TestDiscoverExplicitFileStillExcludable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mkFiles(t, dir, "notes.txt")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		Paths:        []string{"notes.txt"},
		ExcludeGlobs: []string{"*.txt"},
	})
	require.NoError(t, err)

	assert.Empty(t, files)
}

func TestDiscoverExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mkFiles(t, dir, "keep.md", "drop.md", "vendor/dep.md", "docs/api/spec.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"drop.md", "vendor/**"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/api/spec.md", "keep.md"}, relPaths(t, dir, files))
}

func TestDiscoverBasenameGlobMatchesAnyDepth(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mkFiles(t, dir, "a/skip.md", "b/c/skip.md", "keep.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"skip.md"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.md"}, relPaths(t, dir, files))
}

func TestDiscoverIncludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mkFiles(t, dir, "docs/one.md", "docs/two.md", "other/three.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		IncludeGlobs: []string{"docs/**"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/one.md", "docs/two.md"}, relPaths(t, dir, files))
}

func TestDiscoverDeduplicatesOverlappingPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mkFiles(t, dir, "sub/a.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{".", "sub", "sub/a.md"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"sub/a.md"}, relPaths(t, dir, files))
}

func TestDiscoverMissingPathFails(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"no-such-file.md"},
	})
	assert.Error(t, err)
}

func TestDiscoverCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mkFiles(t, dir, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscoverSymlinkedDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := t.TempDir()
	mkFiles(t, target, "linked.md")
	mkFiles(t, dir, "local.md")

	linkPath := filepath.Join(dir, "link")
	if err := os.Symlink(target, linkPath); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	// Not followed by default.
	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"local.md"}, relPaths(t, dir, files))

	// Followed on request; the target file appears under its real path.
	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(dir, "local.md"))
}
