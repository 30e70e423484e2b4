package integration

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/propmerge/internal/engine"
	"github.com/danieljhkim/propmerge/internal/hash"
)

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	files map[string][]byte
	modes map[string]os.FileMode
	dirs  map[string]bool

	// atomicWrites counts AtomicWrite calls
	atomicWrites int
}

func newTestFS(dirs ...string) *testFS {
	fs := &testFS{
		files: make(map[string][]byte),
		modes: make(map[string]os.FileMode),
		dirs:  map[string]bool{"/": true},
	}
	for _, d := range dirs {
		_ = fs.MkdirAll(d, 0755)
	}
	return fs
}

func (fs *testFS) put(path, content string) {
	fs.files[path] = []byte(content)
	fs.modes[path] = 0644
}

func (fs *testFS) get(t *testing.T, path string) string {
	t.Helper()
	content, ok := fs.files[path]
	if !ok {
		t.Fatalf("expected file at %s", path)
	}
	return string(content)
}

func (fs *testFS) Stat(path string) (os.FileInfo, error) {
	if content, ok := fs.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(content)), mode: fs.modes[path]}, nil
	}
	if fs.dirs[path] {
		return &mockFileInfo{name: filepath.Base(path), mode: os.ModeDir | 0755, isDir: true}, nil
	}
	return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
}

func (fs *testFS) Open(path string) (io.ReadCloser, error) {
	if fs.dirs[path] {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	content, ok := fs.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(append([]byte(nil), content...))), nil
}

func (fs *testFS) OpenFile(path string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	if _, ok := fs.files[path]; !ok {
		if flag&os.O_CREATE == 0 || !fs.dirs[filepath.Dir(path)] {
			return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
		}
		fs.files[path] = nil
		fs.modes[path] = perm
	}
	if flag&os.O_TRUNC != 0 {
		fs.files[path] = nil
	}
	return &testFile{fs: fs, path: path}, nil
}

func (fs *testFS) MkdirAll(path string, perm os.FileMode) error {
	for p := path; !fs.dirs[p]; p = filepath.Dir(p) {
		fs.dirs[p] = true
	}
	return nil
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	if content, ok := fs.files[path]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, &os.PathError{Op: "read", Path: path, Err: os.ErrNotExist}
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	if !fs.dirs[filepath.Dir(path)] {
		return &os.PathError{Op: "rename", Path: path, Err: os.ErrNotExist}
	}
	fs.atomicWrites++
	fs.files[path] = append([]byte(nil), data...)
	fs.modes[path] = perm
	return nil
}

func (fs *testFS) Exists(path string) (bool, error) {
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}

func (fs *testFS) Remove(path string) error {
	if _, ok := fs.files[path]; !ok {
		return &os.PathError{Op: "remove", Path: path, Err: os.ErrNotExist}
	}
	delete(fs.files, path)
	delete(fs.modes, path)
	return nil
}

// testFile appends writes to its entry in the owning testFS
type testFile struct {
	fs   *testFS
	path string
}

func (f *testFile) Write(p []byte) (int, error) {
	f.fs.files[f.path] = append(f.fs.files[f.path], p...)
	return len(p), nil
}

func (f *testFile) Close() error { return nil }

// mockFileInfo implements os.FileInfo
type mockFileInfo struct {
	name  string
	size  int64
	mode  os.FileMode
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

func setupTestEngine(t *testing.T) (*engine.Engine, *testFS) {
	t.Helper()
	fs := newTestFS("/conf")
	return engine.New(fs, hash.NewSHA256Hasher()), fs
}
