package bootstrap

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryExists matches *DirectoryExistsError via errors.Is.
	ErrDirectoryExists = errors.New("directory already exists")
	// ErrPathEscapes is returned for file entries that resolve outside the project.
	ErrPathEscapes = errors.New("path escapes the project directory")
	// ErrInvalidAppName is returned by New for names that are not a single path element.
	ErrInvalidAppName = errors.New("invalid app name")
)

// DirectoryExistsError is returned when the target directory is already present.
// No side effect has happened when it is returned.
type DirectoryExistsError struct {
	AppName string
	Path    string
}

func (e *DirectoryExistsError) Error() string {
	return fmt.Sprintf("dir name %s already exists at %s", e.AppName, e.Path)
}

func (e *DirectoryExistsError) Is(target error) bool {
	return target == ErrDirectoryExists
}

// FilesystemError reports a failed directory creation or file write.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// StageError names the stage a run stopped in. The cause is reachable with
// errors.As / errors.Is.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
