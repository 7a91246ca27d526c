package index

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

func TestOSFileSystemListCandidateFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":                     "",
		"sub/b.py":                 "",
		"sub/deeper/c.py":          "",
		"sub/notes.txt":            "",
		".git/hooks/pre-commit.py": "",
		"pkg/__pycache__/x.py":     "",
		"README.md":                "",
	})

	fsys, err := NewOSFileSystem(nil, DefaultIgnore)
	require.NoError(t, err)
	paths, err := fsys.ListCandidateFiles(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.py", "sub/b.py", "sub/deeper/c.py"}, relPaths(t, root, paths))
}

func TestOSFileSystemIncludeAndIgnoreGlobs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tools/build.sh":       "",
		"tools/deploy.sh":      "",
		"tools/legacy/old.sh":  "",
		"tools/helper.py":      "",
		"bin/run.sh":           "",
		"tools/deploy_test.sh": "",
	})

	fsys, err := NewOSFileSystem([]string{"tools/**.sh"}, []string{"legacy", "*_test.sh"})
	require.NoError(t, err)
	paths, err := fsys.ListCandidateFiles(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tools/build.sh", "tools/deploy.sh"}, relPaths(t, root, paths))
}

func TestOSFileSystemFollowsSymlinkedFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"real/tool.py":  "\"\"\"Description: linked\"\"\"",
		"real/dir/x.py": "",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scripts"), 0o755))
	if err := os.Symlink(filepath.Join(root, "real", "tool.py"), filepath.Join(root, "scripts", "tool.py")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "real", "dir"), filepath.Join(root, "scripts", "dir.py")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.py"), filepath.Join(root, "scripts", "dangling.py")))

	fsys, err := NewOSFileSystem(nil, nil)
	require.NoError(t, err)
	paths, err := fsys.ListCandidateFiles(filepath.Join(root, "scripts"))
	require.NoError(t, err)
	assert.Equal(t, []string{"tool.py"}, relPaths(t, filepath.Join(root, "scripts"), paths))

	src, err := fsys.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "linked", ParseFields(ExtractDocstring(src), descLink)["Description"].Raw)
}

func TestOSFileSystemMissingRoot(t *testing.T) {
	fsys, err := NewOSFileSystem(nil, nil)
	require.NoError(t, err)
	_, err = fsys.ListCandidateFiles(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNewOSFileSystemRejectsBadGlob(t *testing.T) {
	_, err := NewOSFileSystem([]string{"[unclosed"}, nil)
	assert.ErrorContains(t, err, "invalid glob")
}

func TestOSFileSystemWriteFileReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	fsys, err := NewOSFileSystem(nil, nil)
	require.NoError(t, err)
	require.NoError(t, fsys.WriteFile(path, "new contents"))

	got, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new contents", got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestOSFileSystemWriteFileCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	fsys, err := NewOSFileSystem(nil, nil)
	require.NoError(t, err)
	require.NoError(t, fsys.WriteFile(path, "fresh"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestMemFileSystem(t *testing.T) {
	m := NewMemFileSystem(map[string]string{
		"repo/scripts/a.py":   "a",
		"repo/scripts/b.txt":  "b",
		"repo/other/c.py":     "c",
		"repo/scripts/d/e.py": "e",
	})

	paths, err := m.ListCandidateFiles("repo/scripts")
	require.NoError(t, err)
	assert.Equal(t, []string{"repo/scripts/a.py", "repo/scripts/d/e.py"}, paths)

	_, err = m.ReadFile("repo/missing.py")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, m.WriteFile("repo/README.md", "hi"))
	got, ok := m.File("repo/README.md")
	require.True(t, ok)
	assert.Equal(t, "hi", got)

	assert.Equal(t, []string{
		"list: `repo/scripts`",
		"read: `repo/missing.py`",
		"write: `repo/README.md`",
	}, m.Ops())
	assert.Equal(t, []string{"write: `repo/README.md`"}, m.Writes())
}
