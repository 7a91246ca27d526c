package index

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// FileSystem is everything the pipeline needs from storage.
type FileSystem interface {
	// ListCandidateFiles returns the source files under root, recursively.
	ListCandidateFiles(root string) ([]string, error)
	ReadFile(path string) (string, error)
	WriteFile(path, contents string) error
}

// DefaultInclude matches Python sources.
var DefaultInclude = []string{"*.py"}

// DefaultIgnore lists directories that never hold scripts worth indexing.
var DefaultIgnore = []string{".git", "__pycache__", ".venv", "node_modules"}

// OSFileSystem is the FileSystem backed by the local disk.
type OSFileSystem struct {
	include []glob.Glob
	ignore  []glob.Glob
}

// NewOSFileSystem compiles the include and ignore globs. Patterns are matched
// against both the slash-separated path relative to the walk root and the
// base name. Empty include falls back to DefaultInclude.
func NewOSFileSystem(include, ignore []string) (*OSFileSystem, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	inc, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}
	ign, err := compileGlobs(ignore)
	if err != nil {
		return nil, err
	}
	return &OSFileSystem{include: inc, ignore: ign}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, rel string) bool {
	base := filepath.Base(rel)
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

func (o *OSFileSystem) ListCandidateFiles(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are left out, the walk goes on.
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if matchAny(o.ignore, rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if isRegularFile(path, d) && matchAny(o.include, rel) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// isRegularFile reports whether d is a regular file, following symlinks.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (o *OSFileSystem) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile replaces path through a temporary file in the same directory so
// readers never observe a partially written document.
func (o *OSFileSystem) WriteFile(path, contents string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.WriteString(contents); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
