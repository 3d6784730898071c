package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/assafBarash/node-package-bootstrapper/internal/fsys"
	"github.com/assafBarash/node-package-bootstrapper/internal/logging"
	"github.com/assafBarash/node-package-bootstrapper/internal/manifest"
	"github.com/assafBarash/node-package-bootstrapper/internal/pkgmanager"
	"github.com/assafBarash/node-package-bootstrapper/internal/recipe"
	"github.com/assafBarash/node-package-bootstrapper/internal/runner"
)

// Stage names, in execution order.
const (
	StageInit        = "init"
	StageManifest    = "manifest"
	StageIgnoreFile  = "ignore-file"
	StageFiles       = "files"
	StagePostScripts = "post-scripts"
)

// Config wires a Bootstrapper to its collaborators.
type Config struct {
	// BaseDir is the directory the project is created in. Relative paths are
	// resolved against the process working directory once, in New.
	BaseDir string
	// AppName is the project directory name; it must be a single path element.
	AppName string

	FS             fsys.FS
	Runner         runner.Runner
	PackageManager pkgmanager.Manager

	// IgnoreTemplate overrides the bundled .gitignore with a file on disk.
	IgnoreTemplate string
	// IgnoreEntries are appended to the ignore file when not already present.
	IgnoreEntries []string

	Logger *slog.Logger
}

// Result describes what a run produced.
type Result struct {
	Dir      string
	Files    []string // paths relative to Dir, in the order they were written
	Commands []string // commands that completed successfully, in order
	Warnings []string
}

// Bootstrapper provisions one project directory.
type Bootstrapper struct {
	appName        string
	dir            string
	fs             fsys.FS
	runner         runner.Runner
	pm             pkgmanager.Manager
	ignoreTemplate string
	ignoreEntries  []string
	manifest       *manifest.Manager
	log            *slog.Logger
}

// New validates cfg and applies defaults: the OS filesystem, npm, and a
// discarding logger. A Runner is required.
func New(cfg Config) (*Bootstrapper, error) {
	if err := validateAppName(cfg.AppName); err != nil {
		return nil, err
	}
	if cfg.BaseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if cfg.Runner == nil {
		return nil, fmt.Errorf("a command runner is required")
	}

	base, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory %s: %w", cfg.BaseDir, err)
	}

	b := &Bootstrapper{
		appName:        cfg.AppName,
		dir:            filepath.Join(base, cfg.AppName),
		fs:             cfg.FS,
		runner:         cfg.Runner,
		pm:             cfg.PackageManager,
		ignoreTemplate: cfg.IgnoreTemplate,
		ignoreEntries:  cfg.IgnoreEntries,
		log:            cfg.Logger,
	}
	if b.fs == nil {
		b.fs = fsys.NewOS()
	}
	if b.pm.Name == "" {
		b.pm = pkgmanager.Default()
	}
	if b.log == nil {
		b.log = logging.Discard()
	}
	b.log = b.log.With("app", cfg.AppName)
	b.manifest = manifest.NewManager(b.fs, b.dir)
	return b, nil
}

func validateAppName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidAppName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidAppName, name)
	case strings.ContainsAny(name, `/\`) || filepath.VolumeName(name) != "":
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidAppName, name)
	}
	return nil
}

// Dir returns the absolute target directory.
func (b *Bootstrapper) Dir() string {
	return b.dir
}

type stage struct {
	name string
	run  func(ctx context.Context, opts *recipe.Options, res *Result) error
}

func (b *Bootstrapper) stages() []stage {
	return []stage{
		{StageInit, b.initProject},
		{StageManifest, b.provisionManifest},
		{StageIgnoreFile, b.writeIgnoreFile},
		{StageFiles, b.writeFiles},
		{StagePostScripts, b.runPostScripts},
	}
}

// Bootstrap runs every stage in order. opts may be nil. On failure the
// returned Result still lists what completed before the failing stage.
func (b *Bootstrapper) Bootstrap(ctx context.Context, opts *recipe.Options) (*Result, error) {
	if opts == nil {
		opts = &recipe.Options{}
	}
	res := &Result{Dir: b.dir}

	for _, s := range b.stages() {
		if err := ctx.Err(); err != nil {
			return res, &StageError{Stage: s.name, Err: err}
		}
		b.log.InfoContext(ctx, "stage started", "stage", s.name)
		if err := s.run(ctx, opts, res); err != nil {
			b.log.ErrorContext(ctx, "stage failed", "stage", s.name, "error", err)
			return res, &StageError{Stage: s.name, Err: err}
		}
	}

	b.collectWarnings(res)
	b.log.InfoContext(ctx, "bootstrap complete", "dir", b.dir, "files", len(res.Files), "commands", len(res.Commands))
	return res, nil
}

// exec runs command inside the project directory and records it on success.
func (b *Bootstrapper) exec(ctx context.Context, command string, res *Result) error {
	b.log.DebugContext(ctx, "running command", "command", command)
	if _, err := b.runner.Run(ctx, command, runner.Options{Dir: b.dir}); err != nil {
		return err
	}
	res.Commands = append(res.Commands, command)
	return nil
}

func (b *Bootstrapper) collectWarnings(res *Result) {
	vr, err := b.manifest.Validate()
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("could not validate %s: %v", manifest.FileName, err))
		return
	}
	for _, issue := range vr.Issues {
		res.Warnings = append(res.Warnings, manifest.FileName+" "+issue.String())
	}
}
