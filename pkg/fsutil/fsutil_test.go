package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaklabco/gomdstruct/pkg/fsutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.txt", "content here")

	content, snap, err := fsutil.Read(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "content here", string(content))
	require.NotNil(t, snap)
	assert.Equal(t, path, snap.Path)
	assert.Equal(t, int64(len("content here")), snap.Size)
}

func TestReadErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.Read(ctx, filepath.Join(t.TempDir(), "missing.txt"))
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.Read(ctx, t.TempDir())
		assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := fsutil.Read(cancelled, "any.txt")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "a.txt", "original")

	_, snap, err := fsutil.Read(ctx, path)
	require.NoError(t, err)

	modified, err := fsutil.Modified(ctx, snap)
	require.NoError(t, err)
	assert.False(t, modified)

	require.NoError(t, os.WriteFile(path, []byte("rewritten!"), 0o644))
	modified, err = fsutil.Modified(ctx, snap)
	require.NoError(t, err)
	assert.True(t, modified)
}

func TestModifiedSameSizeRewrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "a.txt", "aaaa")

	_, snap, err := fsutil.Read(ctx, path)
	require.NoError(t, err)

	// Same size, same forced mod time: only the hash can tell.
	require.NoError(t, os.WriteFile(path, []byte("bbbb"), 0o644))
	require.NoError(t, os.Chtimes(path, snap.ModTime, snap.ModTime))

	modified, err := fsutil.Modified(ctx, snap)
	require.NoError(t, err)
	assert.True(t, modified)
}

func TestModifiedDeletedFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "a.txt", "content")

	_, snap, err := fsutil.Read(ctx, path)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	modified, err := fsutil.Modified(ctx, snap)
	require.NoError(t, err)
	assert.True(t, modified, "a deleted file counts as modified")
}

func TestModifiedNilSnapshot(t *testing.T) {
	t.Parallel()

	_, err := fsutil.Modified(context.Background(), nil)
	assert.ErrorIs(t, err, fsutil.ErrNilSnapshot)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("data"), 0o600))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAtomicZeroModeDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
}

func TestWriteAtomicOverwrites(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "out.txt", "old")
	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "a.txt", "original")

	created, err := fsutil.Backup(ctx, path)
	require.NoError(t, err)
	assert.True(t, created)

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "original", string(backup))
}

func TestBackupKeepsEarliestOriginal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "a.txt", "first")

	created, err := fsutil.Backup(ctx, path)
	require.NoError(t, err)
	require.True(t, created)

	// A later backup of a changed file must not clobber the first.
	require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))
	created, err = fsutil.Backup(ctx, path)
	require.NoError(t, err)
	assert.False(t, created)

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "first", string(backup))
}

func TestBackupMissingFile(t *testing.T) {
	t.Parallel()

	created, err := fsutil.Backup(context.Background(),
		filepath.Join(t.TempDir(), "missing.txt"))
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSnapshotModTimePreserved(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.txt", "content")
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	_, snap, err := fsutil.Read(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, snap.ModTime.Equal(old))
}
