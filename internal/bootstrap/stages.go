package bootstrap

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/assafBarash/node-package-bootstrapper/internal/fsys"
	"github.com/assafBarash/node-package-bootstrapper/internal/manifest"
	"github.com/assafBarash/node-package-bootstrapper/internal/recipe"
	"github.com/assafBarash/node-package-bootstrapper/internal/templates"
)

// maxParallelWrites bounds concurrent file writes in the files stage.
const maxParallelWrites = 8

func (b *Bootstrapper) initProject(ctx context.Context, _ *recipe.Options, res *Result) error {
	exists, err := b.fs.Exists(b.dir)
	if err != nil {
		return &FilesystemError{Op: "stat", Path: b.dir, Err: err}
	}
	if exists {
		return &DirectoryExistsError{AppName: b.appName, Path: b.dir}
	}

	// Mkdir fails on an existing directory, which also catches a concurrent
	// run that won the race after the existence check.
	if err := b.fs.Mkdir(b.dir, fsys.DirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &DirectoryExistsError{AppName: b.appName, Path: b.dir}
		}
		return &FilesystemError{Op: "mkdir", Path: b.dir, Err: err}
	}

	if err := b.exec(ctx, b.pm.InitCommand(), res); err != nil {
		return err
	}
	res.Files = append(res.Files, manifest.FileName)
	return nil
}

func (b *Bootstrapper) provisionManifest(ctx context.Context, opts *recipe.Options, res *Result) error {
	pkg := opts.PackageJSON

	if patch := pkg.ManifestPatch(); patch != nil {
		if _, err := b.manifest.Write(patch); err != nil {
			return err
		}
		b.log.DebugContext(ctx, "manifest patched", "keys", patch.Keys())
	}

	if cmd := b.pm.InstallCommand(pkg.Deps(), false); cmd != "" {
		if err := b.exec(ctx, cmd, res); err != nil {
			return err
		}
	}
	if cmd := b.pm.InstallCommand(pkg.DevDeps(), true); cmd != "" {
		if err := b.exec(ctx, cmd, res); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bootstrapper) writeIgnoreFile(_ context.Context, _ *recipe.Options, res *Result) error {
	dst := filepath.Join(b.dir, templates.IgnoreFileName)

	if b.ignoreTemplate != "" && len(b.ignoreEntries) == 0 {
		if err := b.fs.CopyFile(b.ignoreTemplate, dst); err != nil {
			return &FilesystemError{Op: "copy", Path: b.ignoreTemplate, Err: err}
		}
		res.Files = append(res.Files, templates.IgnoreFileName)
		return nil
	}

	content := templates.Gitignore()
	if b.ignoreTemplate != "" {
		data, err := b.fs.ReadFile(b.ignoreTemplate)
		if err != nil {
			return &FilesystemError{Op: "copy", Path: b.ignoreTemplate, Err: err}
		}
		content = data
	}
	content = templates.AppendIgnoreEntries(content, b.ignoreEntries...)
	if err := b.fs.WriteFile(dst, content, fsys.FilePerm); err != nil {
		return &FilesystemError{Op: "write", Path: dst, Err: err}
	}

	res.Files = append(res.Files, templates.IgnoreFileName)
	return nil
}

// fileEntry is one resolved file write.
type fileEntry struct {
	rel     string // cleaned, slash-separated path relative to the project
	abs     string
	content string
}

// resolveFiles validates every path and collapses entries that resolve to
// the same file. Keys are processed in sorted order, so for colliding keys
// the one sorting last wins.
func resolveFiles(dir string, files map[string]string) ([]fileEntry, error) {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	byPath := make(map[string]int, len(keys))
	var entries []fileEntry
	for _, key := range keys {
		clean := filepath.Clean(filepath.FromSlash(key))
		if key == "" || clean == "." || filepath.IsAbs(clean) || filepath.VolumeName(clean) != "" ||
			clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return nil, &FilesystemError{Op: "resolve", Path: key, Err: ErrPathEscapes}
		}

		e := fileEntry{
			rel:     filepath.ToSlash(clean),
			abs:     filepath.Join(dir, clean),
			content: files[key],
		}
		if i, ok := byPath[e.rel]; ok {
			entries[i] = e
			continue
		}
		byPath[e.rel] = len(entries)
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].rel < entries[j].rel })
	return entries, nil
}

func (b *Bootstrapper) writeFiles(ctx context.Context, opts *recipe.Options, res *Result) error {
	entries, err := resolveFiles(b.dir, opts.Files)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelWrites)
	for _, e := range entries {
		e := e // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := b.fs.MkdirAll(filepath.Dir(e.abs), fsys.DirPerm); err != nil {
				return &FilesystemError{Op: "mkdir", Path: filepath.Dir(e.abs), Err: err}
			}
			if err := b.fs.WriteFile(e.abs, []byte(e.content), fsys.FilePerm); err != nil {
				return &FilesystemError{Op: "write", Path: e.abs, Err: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, e := range entries {
		res.Files = append(res.Files, e.rel)
	}
	b.log.DebugContext(ctx, "files written", "count", len(entries))
	return nil
}

// runPostScripts runs commands strictly one after another; a later script
// may depend on what an earlier one produced.
func (b *Bootstrapper) runPostScripts(ctx context.Context, opts *recipe.Options, res *Result) error {
	for _, script := range opts.PostScripts {
		if err := b.exec(ctx, script, res); err != nil {
			return err
		}
	}
	return nil
}
