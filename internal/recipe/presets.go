package recipe

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed presets/*.yaml
var presetFS embed.FS

const presetDir = "presets"

// PresetNames returns the names of the bundled presets, sorted.
func PresetNames() []string {
	entries, err := fs.ReadDir(presetFS, presetDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Preset loads a bundled preset by name.
func Preset(name string) (*Options, error) {
	data, err := fs.ReadFile(presetFS, path.Join(presetDir, name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown preset %q: available presets are %s", name, strings.Join(PresetNames(), ", "))
	}
	return Parse(data, "preset "+name)
}
