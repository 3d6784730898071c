// Package pkgmanager builds the manifest-initialization and install command
// lines for the supported Node.js package managers.
package pkgmanager

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Supported package manager identifiers.
const (
	NPM  = "npm"
	PNPM = "pnpm"
	Yarn = "yarn"
)

// Manager describes how one package manager initializes a manifest and
// installs runtime and dev dependencies.
type Manager struct {
	Name    string
	initCmd string
	addCmd  string
	devCmd  string
}

var managers = map[string]Manager{
	NPM: {
		Name:    NPM,
		initCmd: "npm init -y",
		addCmd:  "npm install --save",
		devCmd:  "npm install --save-dev",
	},
	PNPM: {
		Name:    PNPM,
		initCmd: "pnpm init",
		addCmd:  "pnpm add",
		devCmd:  "pnpm add --save-dev",
	},
	Yarn: {
		Name:    Yarn,
		initCmd: "yarn init -y",
		addCmd:  "yarn add",
		devCmd:  "yarn add --dev",
	},
}

// Default returns the npm manager.
func Default() Manager {
	return managers[NPM]
}

// Lookup returns the manager registered under name. An empty name selects npm.
func Lookup(name string) (Manager, error) {
	if name == "" {
		return Default(), nil
	}
	m, ok := managers[strings.ToLower(name)]
	if !ok {
		return Manager{}, fmt.Errorf("unknown package manager %q: supported are %s", name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Names returns the supported manager names, sorted.
func Names() []string {
	names := make([]string, 0, len(managers))
	for name := range managers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InitCommand returns the command that writes a default package.json.
func (m Manager) InitCommand() string {
	return m.initCmd
}

// InstallCommand returns a single batched install command for pkgs, or ""
// when pkgs is empty. dev selects the devDependencies section.
func (m Manager) InstallCommand(pkgs []string, dev bool) string {
	if len(pkgs) == 0 {
		return ""
	}
	base := m.addCmd
	if dev {
		base = m.devCmd
	}
	quoted := make([]string, len(pkgs))
	for i, p := range pkgs {
		quoted[i] = Quote(p)
	}
	return base + " " + strings.Join(quoted, " ")
}

// Quote returns s unchanged when it is a plain package specifier and a token
// quoted for the shell the runner uses on this platform otherwise: POSIX
// single quotes for sh, double quotes for cmd.
// example: @types/jest -> @types/jest
// example: lodash@>=4 -> 'lodash@>=4' (sh), "lodash@>=4" (cmd)
func Quote(s string) string {
	return quoteFor(runtime.GOOS, s)
}

func quoteFor(goos, s string) string {
	if goos == "windows" {
		// ^ is the cmd escape character; it is literal only inside quotes.
		if s != "" && isPlain(s, "@/._-+:=,~") {
			return s
		}
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	if s == "" {
		return "''"
	}
	if isPlain(s, "@/._-+:=,%~^") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

func isPlain(s, extra string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(extra, r):
		default:
			return false
		}
	}
	return true
}
