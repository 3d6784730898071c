package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
)

// Permission defaults for provisioned content.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)

// FS is the set of filesystem primitives the orchestrator depends on.
type FS interface {
	// Exists reports whether path exists. Errors other than "not exist" are returned.
	Exists(path string) (bool, error)
	// Mkdir creates a single directory and fails if it already exists.
	Mkdir(path string, perm os.FileMode) error
	// MkdirAll creates path and any missing parents.
	MkdirAll(path string, perm os.FileMode) error
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	// CopyFile copies the content of a regular file. dst gets FilePerm
	// whatever the mode of src, so it stays writable by later stages.
	CopyFile(src, dst string) error
}

// OS is the production implementation of FS backed by the os package.
type OS struct{}

// NewOS creates a new OS filesystem.
func NewOS() *OS {
	return &OS{}
}

func (OS) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (OS) Mkdir(path string, perm os.FileMode) error {
	return os.Mkdir(path, perm)
}

func (OS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (OS) CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, FilePerm); err != nil {
		return err
	}

	// WriteFile leaves the mode of an existing dst untouched.
	return chmod(dst, FilePerm)
}

// chmod is a no-op on Windows, which has no Unix permission bits.
func chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
