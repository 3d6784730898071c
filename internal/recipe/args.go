package recipe

import "strings"

// ApplyToolArgs appends extra flags to post-scripts that invoke a tool
// through npx. args maps a tool name (the first word after "npx") to the
// flags to append, e.g. {"tsc": "--rootDir src --outDir build"} turns
// "npx tsc --init" into "npx tsc --init --rootDir src --outDir build".
func ApplyToolArgs(opts *Options, args map[string]string) {
	if opts == nil || len(args) == 0 {
		return
	}
	for i, script := range opts.PostScripts {
		fields := strings.Fields(script)
		if len(fields) < 2 || fields[0] != "npx" {
			continue
		}
		if extra := strings.TrimSpace(args[fields[1]]); extra != "" {
			opts.PostScripts[i] = script + " " + extra
		}
	}
}
