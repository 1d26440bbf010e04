package apply_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/revfix/pkg/apply"
	"github.com/yaklabco/revfix/pkg/fsutil"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFSStoreReadWriteRoundTrip(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "main.go", "a\nb\n")
	store := apply.NewFSStore(false)
	ctx := context.Background()

	content, err := store.ReadDocument(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(content))

	require.NoError(t, store.WriteDocument(ctx, path, []byte("a\nB\n")))

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nB\n", string(onDisk))
}

func TestFSStoreRefusesWriteAfterExternalChange(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "main.go", "a\nb\n")
	store := apply.NewFSStore(false)
	ctx := context.Background()

	_, err := store.ReadDocument(ctx, path)
	require.NoError(t, err)

	// Someone else edits the file between our read and our write.
	require.NoError(t, os.WriteFile(path, []byte("surprise\n"), 0644))

	err = store.WriteDocument(ctx, path, []byte("a\nB\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fsutil.ErrModified)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "surprise\n", string(onDisk), "the external edit must survive")
}

func TestFSStoreSequentialWritesToSameFile(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "main.go", "a\nb\nc\n")
	store := apply.NewFSStore(false)
	ctx := context.Background()

	_, err := store.ReadDocument(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.WriteDocument(ctx, path, []byte("A\nb\nc\n")))

	// A fresh read picks up our own write without tripping the
	// modification check.
	content, err := store.ReadDocument(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "A\nb\nc\n", string(content))

	require.NoError(t, store.WriteDocument(ctx, path, []byte("A\nb\nC\n")))

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A\nb\nC\n", string(onDisk))
}

func TestFSStoreBackup(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "main.go", "original\n")
	store := apply.NewFSStore(true)
	ctx := context.Background()

	_, err := store.ReadDocument(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.WriteDocument(ctx, path, []byte("first edit\n")))

	backup, err := os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(backup))

	// A second write must not overwrite the backup.
	_, err = store.ReadDocument(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.WriteDocument(ctx, path, []byte("second edit\n")))

	backup, err = os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(backup), "backup keeps the pre-fix content")
}

func TestFSStoreReadMissingFile(t *testing.T) {
	t.Parallel()

	store := apply.NewFSStore(false)

	_, err := store.ReadDocument(context.Background(), filepath.Join(t.TempDir(), "missing.go"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestFSStorePreservesFileMode(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "script.sh", "#!/bin/sh\n")
	require.NoError(t, os.Chmod(path, 0755))

	store := apply.NewFSStore(false)
	ctx := context.Background()

	_, err := store.ReadDocument(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.WriteDocument(ctx, path, []byte("#!/bin/sh\nset -e\n")))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), stat.Mode().Perm())
}
