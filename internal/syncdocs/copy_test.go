package syncdocs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCopy_OverwritesSameNamedFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "guide", "intro.md"), "V2")
	writeFile(t, filepath.Join(dst, "guide", "intro.md"), "V1")

	rep, err := Copy(src, dst)
	require.NoError(t, err)
	require.Equal(t, "V2", readFile(t, filepath.Join(dst, "guide", "intro.md")))
	require.Equal(t, 1, rep.Updated)
	require.True(t, rep.Changed())
}

func TestCopy_LeavesDestinationOnlyFiles(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "a.md"), "from source")
	writeFile(t, filepath.Join(dst, "local.md"), "hand written")
	writeFile(t, filepath.Join(dst, "nested", "keep.md"), "keep me")

	rep, err := Copy(src, dst)
	require.NoError(t, err)
	require.Equal(t, 1, rep.Created)
	require.Equal(t, "from source", readFile(t, filepath.Join(dst, "a.md")))
	require.Equal(t, "hand written", readFile(t, filepath.Join(dst, "local.md")))
	require.Equal(t, "keep me", readFile(t, filepath.Join(dst, "nested", "keep.md")))
}

func TestCopy_CreatesMissingDestination(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "docs")
	writeFile(t, filepath.Join(src, "deep", "er", "page.md"), "x")

	rep, err := Copy(src, dst)
	require.NoError(t, err)
	require.Equal(t, 1, rep.Created)
	require.Equal(t, "x", readFile(t, filepath.Join(dst, "deep", "er", "page.md")))
}

func TestCopy_SecondPassIsUnchanged(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "a.md"), "A")
	writeFile(t, filepath.Join(src, "b", "c.md"), "C")

	_, err := Copy(src, dst)
	require.NoError(t, err)

	rep, err := Copy(src, dst)
	require.NoError(t, err)
	require.Equal(t, Report{Unchanged: 2, Dirs: 2}, rep)
	require.False(t, rep.Changed())
	require.Equal(t, 2, rep.Files())
}

func TestCopy_PreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not preserved on windows")
	}
	src := t.TempDir()
	dst := t.TempDir()
	script := filepath.Join(src, "run.sh")
	writeFile(t, script, "#!/bin/sh\n")
	require.NoError(t, os.Chmod(script, 0o755))

	_, err := Copy(src, dst)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dst, "run.sh"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCopy_MissingSource(t *testing.T) {
	dst := t.TempDir()
	writeFile(t, filepath.Join(dst, "keep.md"), "untouched")

	_, err := Copy(filepath.Join(t.TempDir(), "nope"), dst)
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryFileSystem))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Equal(t, "untouched", readFile(t, filepath.Join(dst, "keep.md")))
}

func TestCopy_SourceIsFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "file.md")
	writeFile(t, src, "x")

	_, err := Copy(src, t.TempDir())
	require.ErrorIs(t, err, errNotDir)
}

func TestCopy_DirectoryBlocksFile(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "clash"), "file in source")
	require.NoError(t, os.MkdirAll(filepath.Join(dst, "clash"), 0o755))

	_, err := Copy(src, dst)
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryFileSystem))
}
