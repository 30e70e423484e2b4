package fsops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrIsDir indicates a file was expected but a directory was found.
	ErrIsDir = errors.New("is a directory")

	// ErrEmptyPath indicates an empty path was supplied.
	ErrEmptyPath = errors.New("empty path")
)

// CheckReadable verifies that path names a regular file that can be opened
// for reading. The file is closed before returning.
func CheckReadable(fs FS, path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	info, err := fs.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return ErrIsDir
	}

	f, err := fs.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// CheckWritable verifies that path can be written.
//
// An existing file is opened for writing without truncation. A missing file
// is created empty when create is set; otherwise only its parent directory is
// checked. With createDirs, missing parent directories are created first.
func CheckWritable(fs FS, path string, perm os.FileMode, create, createDirs bool) error {
	if path == "" {
		return ErrEmptyPath
	}

	info, err := fs.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return ErrIsDir
		}
		f, err := fs.OpenFile(path, os.O_WRONLY, perm)
		if err != nil {
			return err
		}
		return f.Close()
	case !os.IsNotExist(err):
		return err
	}

	parent := filepath.Dir(path)
	if createDirs && create {
		if err := fs.MkdirAll(parent, 0755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
	}

	if !create {
		parentInfo, err := fs.Stat(parent)
		if err != nil {
			if os.IsNotExist(err) && createDirs {
				return nil
			}
			return err
		}
		if !parentInfo.IsDir() {
			return fmt.Errorf("parent %s is not a directory", parent)
		}
		return nil
	}

	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE, perm)
	if err != nil {
		return err
	}
	return f.Close()
}
