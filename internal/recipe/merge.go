package recipe

import (
	"path/filepath"
	"sort"

	"github.com/assafBarash/node-package-bootstrapper/internal/manifest"
)

// Merge combines recipes left to right into a new Options value. Scripts,
// params and files are merged by key with later values winning; file keys are
// compared in cleaned slash form, so "./src/a.ts" replaces "src/a.ts".
// Dependency lists are concatenated keeping the first occurrence of any
// duplicate. Post-scripts are concatenated in order; a script already
// contributed by an earlier recipe is skipped, repeats within one recipe run
// every time.
func Merge(recipes ...*Options) *Options {
	out := &Options{}
	for _, r := range recipes {
		if r == nil {
			continue
		}
		if r.PackageJSON != nil {
			if out.PackageJSON == nil {
				out.PackageJSON = &PackageJSON{}
			}
			mergePackageJSON(out.PackageJSON, r.PackageJSON)
		}
		if len(r.Files) > 0 && out.Files == nil {
			out.Files = make(map[string]string, len(r.Files))
		}
		// Of two spellings of one path, the key sorting last wins.
		for _, p := range sortedKeys(r.Files) {
			out.Files[CleanFileKey(p)] = r.Files[p]
		}
		out.PostScripts = appendScripts(out.PostScripts, r.PostScripts)
	}
	return out
}

// CleanFileKey returns the canonical slash-separated form of a files key.
// Keys that escape the project keep their leading ".." and are rejected when
// the files are written.
func CleanFileKey(key string) string {
	if key == "" {
		return key
	}
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(key)))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func appendScripts(list, scripts []string) []string {
	prior := make(map[string]bool, len(list))
	for _, s := range list {
		prior[s] = true
	}
	for _, s := range scripts {
		if prior[s] {
			continue
		}
		list = append(list, s)
	}
	return list
}

func mergePackageJSON(dst, src *PackageJSON) {
	dst.Scripts = mergeObject(dst.Scripts, src.Scripts)
	dst.Params = mergeObject(dst.Params, src.Params)
	dst.Dependencies = appendUnique(dst.Dependencies, src.Dependencies...)
	dst.DevDependencies = appendUnique(dst.DevDependencies, src.DevDependencies...)
}

func mergeObject(dst, src *manifest.Object) *manifest.Object {
	if src == nil {
		return dst
	}
	if dst == nil {
		return src.Clone()
	}
	dst.Merge(src)
	return dst
}

func appendUnique(list []string, items ...string) []string {
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		seen[s] = true
	}
	for _, s := range items {
		if seen[s] {
			continue
		}
		seen[s] = true
		list = append(list, s)
	}
	return list
}
