package recipe

import (
	"github.com/assafBarash/node-package-bootstrapper/internal/manifest"
)

// Options configures one bootstrap run. Every field is optional.
type Options struct {
	PackageJSON *PackageJSON      `yaml:"packageJson,omitempty" json:"packageJson,omitempty"`
	Files       map[string]string `yaml:"files,omitempty" json:"files,omitempty"`
	PostScripts []string          `yaml:"postScripts,omitempty" json:"postScripts,omitempty"`
}

// PackageJSON describes the manifest changes and dependency installs.
type PackageJSON struct {
	// Scripts maps script names to shell commands.
	Scripts *manifest.Object `yaml:"scripts,omitempty" json:"scripts,omitempty"`
	// Dependencies are installed in one batch as runtime dependencies.
	Dependencies []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	// DevDependencies are installed in one batch as dev dependencies.
	DevDependencies []string `yaml:"devDependencies,omitempty" json:"devDependencies,omitempty"`
	// Params are merged verbatim into the manifest's top level.
	Params *manifest.Object `yaml:"params,omitempty" json:"params,omitempty"`
}

// ManifestPatch returns the top-level patch {scripts, ...params}, or nil when
// neither scripts nor params is set.
func (p *PackageJSON) ManifestPatch() *manifest.Object {
	if p == nil || (p.Scripts == nil && p.Params == nil) {
		return nil
	}
	patch := manifest.NewObject()
	if p.Scripts != nil {
		patch.Set("scripts", manifest.ObjectValue(p.Scripts))
	}
	patch.Merge(p.Params)
	return patch
}

// Deps returns the runtime dependency list, tolerating a nil receiver.
func (p *PackageJSON) Deps() []string {
	if p == nil {
		return nil
	}
	return p.Dependencies
}

// DevDeps returns the dev dependency list, tolerating a nil receiver.
func (p *PackageJSON) DevDeps() []string {
	if p == nil {
		return nil
	}
	return p.DevDependencies
}

// IsZero reports whether o requests nothing beyond the default init.
func (o *Options) IsZero() bool {
	if o == nil {
		return true
	}
	return o.PackageJSON.ManifestPatch() == nil &&
		len(o.PackageJSON.Deps()) == 0 &&
		len(o.PackageJSON.DevDeps()) == 0 &&
		len(o.Files) == 0 &&
		len(o.PostScripts) == 0
}
