package index

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// MemFileSystem is an in-memory FileSystem that records every operation. It
// is meant for tests and dry runs.
type MemFileSystem struct {
	// Ext selects candidate files; empty means ".py".
	Ext string
	// ReadErrs makes ReadFile fail for the given paths.
	ReadErrs map[string]error
	// WriteErr makes every WriteFile fail.
	WriteErr error

	mu    sync.Mutex
	files map[string]string
	ops   []string
}

// NewMemFileSystem returns a MemFileSystem holding a copy of files. Keys are
// slash-separated paths.
func NewMemFileSystem(files map[string]string) *MemFileSystem {
	m := &MemFileSystem{files: make(map[string]string, len(files))}
	for name, contents := range files {
		m.files[path.Clean(name)] = contents
	}
	return m
}

func (m *MemFileSystem) record(format string, args ...any) {
	m.ops = append(m.ops, fmt.Sprintf(format, args...))
}

func (m *MemFileSystem) ListCandidateFiles(root string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("list: `%s`", root)
	ext := m.Ext
	if ext == "" {
		ext = ".py"
	}
	root = path.Clean(root)
	var paths []string
	for name := range m.files {
		if root != "." && !strings.HasPrefix(name, root+"/") {
			continue
		}
		if path.Ext(name) == ext {
			paths = append(paths, name)
		}
	}
	// Map order is random; keep listings reproducible for the op log.
	sort.Strings(paths)
	return paths, nil
}

func (m *MemFileSystem) ReadFile(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = path.Clean(name)
	m.record("read: `%s`", name)
	if err, ok := m.ReadErrs[name]; ok {
		return "", err
	}
	contents, ok := m.files[name]
	if !ok {
		return "", &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return contents, nil
}

func (m *MemFileSystem) WriteFile(name, contents string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = path.Clean(name)
	m.record("write: `%s`", name)
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.files[name] = contents
	return nil
}

// File returns the current contents of name.
func (m *MemFileSystem) File(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	contents, ok := m.files[path.Clean(name)]
	return contents, ok
}

// Ops returns the operations performed so far, in order.
func (m *MemFileSystem) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ops...)
}

// Writes returns the recorded write operations.
func (m *MemFileSystem) Writes() []string {
	var writes []string
	for _, op := range m.Ops() {
		if strings.HasPrefix(op, "write: ") {
			writes = append(writes, op)
		}
	}
	return writes
}
