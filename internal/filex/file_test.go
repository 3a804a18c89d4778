package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureSubdDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureSubdDir("", "portal")
	require.NoError(t, err)

	want := filepath.Join(tmp, "portal")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureSubdDir_UnderBase(t *testing.T) {
	base := t.TempDir()

	got, err := EnsureSubdDir(base, filepath.Join("a", "b"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "a", "b"), got)

	again, err := EnsureSubdDir(base, filepath.Join("a", "b"))
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestEnsureSubdDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "portal"), []byte("x"), 0o600))

	_, err := EnsureSubdDir(tmp, "portal")
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestWriteFilePrivate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")

	require.NoError(t, WriteFilePrivate(path, []byte("one")))
	require.NoError(t, WriteFilePrivate(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "two", string(data))

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are cleaned up")
}

func TestWriteFilePrivate_MissingDir(t *testing.T) {
	err := WriteFilePrivate(filepath.Join(t.TempDir(), "nope", "session"), []byte("x"))
	require.Error(t, err)
}
