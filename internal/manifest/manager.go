package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/assafBarash/node-package-bootstrapper/internal/fsys"
	"github.com/assafBarash/node-package-bootstrapper/internal/schema"
)

// FileName is the manifest file name inside a project directory.
const FileName = "package.json"

// Manager reads and rewrites the manifest of one project directory. It holds
// no document state: every Write re-reads the file first.
type Manager struct {
	fs   fsys.FS
	path string
}

// NewManager creates a Manager for <dir>/package.json.
func NewManager(filesystem fsys.FS, dir string) *Manager {
	return &Manager{fs: filesystem, path: filepath.Join(dir, FileName)}
}

// Path returns the manifest file path.
func (m *Manager) Path() string {
	return m.path
}

// Read parses the current manifest.
func (m *Manager) Read() (*Object, error) {
	data, err := m.readRaw()
	if err != nil {
		return nil, err
	}
	obj, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: m.path, Err: err}
	}
	return obj, nil
}

// Write shallow-merges patch into the current manifest and writes the result
// back. The merged document is returned.
func (m *Manager) Write(patch *Object) (*Object, error) {
	merged, err := m.Read()
	if err != nil {
		return nil, err
	}
	merged.Merge(patch)

	data, err := Encode(merged)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest %s: %w", m.path, err)
	}
	if err := m.fs.WriteFile(m.path, data, fsys.FilePerm); err != nil {
		return nil, fmt.Errorf("writing manifest %s: %w", m.path, err)
	}
	return merged, nil
}

// Validate checks the manifest on disk against the package.json schema.
func (m *Manager) Validate() (*schema.Result, error) {
	data, err := m.readRaw()
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

func (m *Manager) readRaw() ([]byte, error) {
	data, err := m.fs.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: m.path}
		}
		return nil, fmt.Errorf("reading manifest %s: %w", m.path, err)
	}
	return data, nil
}
