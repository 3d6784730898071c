package bootstrap

import (
	"fmt"
	"strings"

	"github.com/assafBarash/node-package-bootstrapper/internal/manifest"
	"github.com/assafBarash/node-package-bootstrapper/internal/recipe"
	"github.com/assafBarash/node-package-bootstrapper/internal/templates"
)

// Step is one planned action.
type Step struct {
	Stage  string
	Action string
}

// Plan lists the actions Bootstrap would take for opts without touching the
// filesystem or running anything.
func (b *Bootstrapper) Plan(opts *recipe.Options) ([]Step, error) {
	if opts == nil {
		opts = &recipe.Options{}
	}
	pkg := opts.PackageJSON

	steps := []Step{
		{StageInit, "create directory " + b.dir},
		{StageInit, "run: " + b.pm.InitCommand()},
	}

	if patch := pkg.ManifestPatch(); patch != nil {
		steps = append(steps, Step{StageManifest, fmt.Sprintf("merge into %s: %s", manifest.FileName, strings.Join(patch.Keys(), ", "))})
	}
	if cmd := b.pm.InstallCommand(pkg.Deps(), false); cmd != "" {
		steps = append(steps, Step{StageManifest, "run: " + cmd})
	}
	if cmd := b.pm.InstallCommand(pkg.DevDeps(), true); cmd != "" {
		steps = append(steps, Step{StageManifest, "run: " + cmd})
	}

	ignore := "write " + templates.IgnoreFileName + " (bundled template)"
	if b.ignoreTemplate != "" {
		ignore = fmt.Sprintf("copy %s to %s", b.ignoreTemplate, templates.IgnoreFileName)
	}
	if len(b.ignoreEntries) > 0 {
		ignore += " + " + strings.Join(b.ignoreEntries, ", ")
	}
	steps = append(steps, Step{StageIgnoreFile, ignore})

	entries, err := resolveFiles(b.dir, opts.Files)
	if err != nil {
		return nil, &StageError{Stage: StageFiles, Err: err}
	}
	for _, e := range entries {
		steps = append(steps, Step{StageFiles, fmt.Sprintf("write %s (%d bytes)", e.rel, len(e.content))})
	}

	for _, script := range opts.PostScripts {
		steps = append(steps, Step{StagePostScripts, "run: " + script})
	}
	return steps, nil
}
