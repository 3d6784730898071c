package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/assafBarash/node-package-bootstrapper/internal/fsys"
	"github.com/assafBarash/node-package-bootstrapper/internal/manifest"
	"github.com/assafBarash/node-package-bootstrapper/internal/runner"
)

// fakeNPM simulates the npm commands the pipeline issues and records every
// call. Commands it does not recognize go to shell when set.
type fakeNPM struct {
	mu     sync.Mutex
	calls  []string
	failOn map[string]int
	hooks  map[string]func(dir string) error
	shell  runner.Runner
}

func newFakeNPM() *fakeNPM {
	return &fakeNPM{
		failOn: make(map[string]int),
		hooks:  make(map[string]func(dir string) error),
	}
}

func (f *fakeNPM) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeNPM) Run(ctx context.Context, command string, opts runner.Options) (*runner.Output, error) {
	f.mu.Lock()
	f.calls = append(f.calls, command)
	f.mu.Unlock()

	if code, ok := f.failOn[command]; ok {
		return &runner.Output{ExitCode: code, Stderr: "simulated failure"}, &runner.ProcessError{
			Command: command, Dir: opts.Dir, ExitCode: code, Stderr: "simulated failure",
		}
	}
	if hook, ok := f.hooks[command]; ok {
		return &runner.Output{}, hook(opts.Dir)
	}

	switch {
	case command == "npm init -y":
		return &runner.Output{}, writeDefaultManifest(opts.Dir)
	case strings.HasPrefix(command, "npm install --save-dev "):
		return &runner.Output{}, addDeps(opts.Dir, "devDependencies", strings.Fields(command)[3:])
	case strings.HasPrefix(command, "npm install --save "):
		return &runner.Output{}, addDeps(opts.Dir, "dependencies", strings.Fields(command)[3:])
	}

	if f.shell != nil {
		return f.shell.Run(ctx, command, opts)
	}
	return &runner.Output{}, nil
}

func writeDefaultManifest(dir string) error {
	content := fmt.Sprintf(`{
  "name": %q,
  "version": "1.0.0",
  "description": "",
  "main": "index.js",
  "scripts": {
    "test": "echo \"Error: no test specified\" && exit 1"
  },
  "keywords": [],
  "author": "",
  "license": "ISC"
}
`, filepath.Base(dir))
	return os.WriteFile(filepath.Join(dir, manifest.FileName), []byte(content), 0o644)
}

func addDeps(dir, section string, pkgs []string) error {
	m := manifest.NewManager(fsys.NewOS(), dir)
	doc, err := m.Read()
	if err != nil {
		return err
	}
	deps := manifest.NewObject()
	if existing, ok := doc.Get(section); ok {
		if obj, ok := existing.Object(); ok {
			deps = obj
		}
	}
	for _, p := range pkgs {
		deps.Set(p, manifest.String("^1.0.0"))
	}
	_, err = m.Write(manifest.NewObject().Set(section, manifest.ObjectValue(deps)))
	return err
}
