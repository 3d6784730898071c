package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/assafBarash/node-package-bootstrapper/internal/manifest"
	"github.com/assafBarash/node-package-bootstrapper/internal/pkgmanager"
	"github.com/assafBarash/node-package-bootstrapper/internal/runner"
)

// DefaultNodeConstraint is the Node.js range the bundled presets are known
// to work with.
const DefaultNodeConstraint = ">= 16.0.0"

// Status is the outcome of one check.
type Status string

const (
	StatusOK      Status = " OK "
	StatusMissing Status = "MISS"
	StatusWarn    Status = "WARN"
	StatusFail    Status = "FAIL"
)

// Check is one reported line.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Checker runs the toolchain checks.
type Checker struct {
	Runner         runner.Runner
	PackageManager pkgmanager.Manager
	// NodeConstraint defaults to DefaultNodeConstraint.
	NodeConstraint string
	// LookPath defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// Toolchain checks node, npx, and the package manager.
func (c *Checker) Toolchain(ctx context.Context) []Check {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	pm := c.PackageManager
	if pm.Name == "" {
		pm = pkgmanager.Default()
	}

	checks := []Check{c.checkNode(ctx, lookPath)}
	for _, name := range uniq("npx", pm.Name) {
		checks = append(checks, c.checkBinary(ctx, lookPath, name))
	}
	return checks
}

func (c *Checker) checkNode(ctx context.Context, lookPath func(string) (string, error)) Check {
	if _, err := lookPath("node"); err != nil {
		return Check{Name: "node", Status: StatusMissing, Detail: "not found on PATH"}
	}
	raw, err := c.version(ctx, "node")
	if err != nil {
		return Check{Name: "node", Status: StatusWarn, Detail: fmt.Sprintf("could not read version: %v", err)}
	}

	constraint := c.NodeConstraint
	if constraint == "" {
		constraint = DefaultNodeConstraint
	}
	ok, err := Satisfies(raw, constraint)
	if err != nil {
		return Check{Name: "node", Status: StatusWarn, Detail: err.Error()}
	}
	if !ok {
		return Check{Name: "node", Status: StatusFail, Detail: fmt.Sprintf("%s does not satisfy %s", raw, constraint)}
	}
	return Check{Name: "node", Status: StatusOK, Detail: raw}
}

func (c *Checker) checkBinary(ctx context.Context, lookPath func(string) (string, error), name string) Check {
	path, err := lookPath(name)
	if err != nil {
		return Check{Name: name, Status: StatusMissing, Detail: "not found on PATH"}
	}
	raw, err := c.version(ctx, name)
	if err != nil {
		return Check{Name: name, Status: StatusWarn, Detail: fmt.Sprintf("found at %s, version unknown", path)}
	}
	return Check{Name: name, Status: StatusOK, Detail: fmt.Sprintf("%s at %s", raw, path)}
}

func (c *Checker) version(ctx context.Context, binary string) (string, error) {
	if c.Runner == nil {
		return "", fmt.Errorf("no runner configured")
	}
	out, err := c.Runner.Run(ctx, binary+" --version", runner.Options{})
	if err != nil {
		return "", err
	}
	v := strings.TrimSpace(out.Stdout)
	if i := strings.IndexByte(v, '\n'); i >= 0 {
		v = v[:i]
	}
	return v, nil
}

// Satisfies reports whether version (a leading "v" is tolerated) is within
// constraint.
func Satisfies(version, constraint string) (bool, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	cons, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	return cons.Check(v), nil
}

// CheckManifest validates the package.json at path.
func CheckManifest(path string) ([]Check, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return []Check{{Name: path, Status: StatusFail, Detail: err.Error()}}, fmt.Errorf("reading %s: %w", path, err)
	}
	result, err := manifest.Validate(data)
	if err != nil {
		return []Check{{Name: path, Status: StatusFail, Detail: err.Error()}}, err
	}
	if result.Valid {
		return []Check{{Name: path, Status: StatusOK, Detail: "valid package manifest"}}, nil
	}

	checks := make([]Check, 0, len(result.Issues))
	for _, issue := range result.Issues {
		checks = append(checks, Check{Name: path, Status: StatusFail, Detail: issue.String()})
	}
	return checks, nil
}

// Print writes checks under a title in the "[ OK ] name detail" layout.
func Print(w io.Writer, title string, checks []Check) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, c := range checks {
		if c.Detail == "" {
			fmt.Fprintf(w, "  [%s] %s\n", c.Status, c.Name)
			continue
		}
		fmt.Fprintf(w, "  [%s] %s: %s\n", c.Status, c.Name, c.Detail)
	}
}

// Healthy reports whether no check is missing or failed. Warnings pass.
func Healthy(checks []Check) bool {
	for _, c := range checks {
		if c.Status == StatusMissing || c.Status == StatusFail {
			return false
		}
	}
	return true
}

func uniq(names ...string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
