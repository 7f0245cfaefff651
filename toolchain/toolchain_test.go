package toolchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, internalDir, "goobj")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "objfile.go"), []byte("package goobj\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, internalDir, "doc.go"), []byte("package internal\n"), 0o600))
	return root
}

func TestPrepareClean(t *testing.T) {
	root := fakeRoot(t)
	assert.False(t, Prepared(root))

	require.NoError(t, Prepare(nil, root))
	assert.True(t, Prepared(root))
	b, err := os.ReadFile(filepath.Join(root, ObjfileDir, "goobj", "objfile.go"))
	require.NoError(t, err)
	assert.Equal(t, "package goobj\n", string(b))
	fi, err := os.Stat(filepath.Join(root, ObjfileDir, "doc.go"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	t.Run("prepare twice keeps the copy", func(t *testing.T) {
		marker := filepath.Join(root, ObjfileDir, "marker")
		require.NoError(t, os.WriteFile(marker, nil, 0o644))
		require.NoError(t, Prepare(nil, root))
		assert.FileExists(t, marker)
	})

	require.NoError(t, Clean(nil, root))
	assert.False(t, Prepared(root))
	assert.DirExists(t, filepath.Join(root, internalDir))
	assert.NoError(t, Clean(nil, root))
}

func TestPrepareWithoutSdk(t *testing.T) {
	assert.Error(t, Prepare(nil, t.TempDir()))
}

func TestCopyDirRejectsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	assert.Error(t, CopyDir(f, filepath.Join(t.TempDir(), "out"), nil))
}
