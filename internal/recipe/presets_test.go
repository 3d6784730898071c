package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{"express", "node-cli", "ts-jest", "typescript"}, PresetNames())
}

func TestPresetsLoad(t *testing.T) {
	for _, name := range PresetNames() {
		name := name // per-iteration copy (go 1.21 loop semantics)
		t.Run(name, func(t *testing.T) {
			opts, err := Preset(name)
			require.NoError(t, err)
			assert.False(t, opts.IsZero())
		})
	}
}

func TestPreset_Unknown(t *testing.T) {
	_, err := Preset("angular")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typescript")
}

func TestPreset_TypeScriptDeclaresItsPostScript(t *testing.T) {
	opts, err := Preset("typescript")
	require.NoError(t, err)
	assert.Equal(t, []string{"typescript"}, opts.PackageJSON.DevDependencies)
	assert.Equal(t, []string{"npx tsc --init"}, opts.PostScripts)
}

func TestMerge(t *testing.T) {
	ts, err := Preset("typescript")
	require.NoError(t, err)
	jest, err := Preset("ts-jest")
	require.NoError(t, err)
	cli, err := Preset("node-cli")
	require.NoError(t, err)

	overlay, err := Parse([]byte(`
packageJson:
  scripts: {start: node dist/index.js}
  devDependencies: [typescript, eslint]
files:
  src/index.ts: "console.log('hi')\n"
postScripts: [npx tsc --init, npx eslint --init]
`), "overlay")
	require.NoError(t, err)

	merged := Merge(ts, jest, nil, cli, overlay)

	assert.Equal(t, []string{"typescript", "jest", "ts-jest", "@types/jest", "eslint"}, merged.PackageJSON.DevDependencies)
	// The overlay's "npx tsc --init" was already contributed by the typescript preset.
	assert.Equal(t, []string{"npx tsc --init", "npx ts-jest config:init", "npx eslint --init"}, merged.PostScripts)
	assert.Equal(t, []string{"test", "start"}, merged.PackageJSON.Scripts.Keys())

	start, _ := merged.PackageJSON.Scripts.Get("start")
	s, _ := start.Str()
	assert.Equal(t, "node dist/index.js", s)
	assert.Equal(t, "console.log('hi')\n", merged.Files["src/index.ts"])

	// Inputs are not mutated.
	assert.Equal(t, []string{"test"}, jest.PackageJSON.Scripts.Keys())
}

func TestMerge_RepeatedPostScriptsWithinRecipeKept(t *testing.T) {
	merged := Merge(&Options{PostScripts: []string{"npm run build", "npm test", "npm run build"}})
	assert.Equal(t, []string{"npm run build", "npm test", "npm run build"}, merged.PostScripts)

	merged = Merge(
		&Options{PostScripts: []string{"npx tsc --init"}},
		&Options{PostScripts: []string{"npm test", "npx tsc --init", "npm test"}},
	)
	assert.Equal(t, []string{"npx tsc --init", "npm test", "npm test"}, merged.PostScripts)
}

func TestMerge_FileKeysNormalised(t *testing.T) {
	cli, err := Preset("node-cli")
	require.NoError(t, err)

	merged := Merge(cli, &Options{Files: map[string]string{"./src/index.ts": "user content"}})
	assert.Equal(t, map[string]string{"src/index.ts": "user content"}, merged.Files)

	merged = Merge(&Options{Files: map[string]string{
		"src//a.ts":      "first",
		"src/./a.ts":     "second",
		"../outside.txt": "kept for rejection",
	}})
	// "src//a.ts" sorts after "src/./a.ts".
	assert.Equal(t, map[string]string{"src/a.ts": "first", "../outside.txt": "kept for rejection"}, merged.Files)
}

func TestCleanFileKey(t *testing.T) {
	tests := map[string]string{
		"src/index.ts":     "src/index.ts",
		"./src/index.ts":   "src/index.ts",
		"src/../README.md": "README.md",
		"a//b/":            "a/b",
		"../x":             "../x",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanFileKey(in), "CleanFileKey(%q)", in)
	}
}

func TestApplyToolArgs(t *testing.T) {
	opts := &Options{PostScripts: []string{"npx tsc --init", "npx ts-jest config:init", "echo done"}}
	ApplyToolArgs(opts, map[string]string{"tsc": "--rootDir src", "echo": "ignored"})

	assert.Equal(t, []string{"npx tsc --init --rootDir src", "npx ts-jest config:init", "echo done"}, opts.PostScripts)
	ApplyToolArgs(nil, map[string]string{"tsc": "x"})
}

func TestFilesFromDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "index.ts"), []byte("main"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "lib", "util.ts"), []byte("util"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("readme"), 0o644))

	all, err := FilesFromDir(root, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"src/index.ts":    "main",
		"src/lib/util.ts": "util",
		"README.md":       "readme",
	}, all)

	ts, err := FilesFromDir(root, "src/**/*.ts")
	require.NoError(t, err)
	assert.Len(t, ts, 2)

	_, err = FilesFromDir(root, "[")
	require.Error(t, err)
}
