//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // BOOTSTRAPPER_HOME, holds config.yaml
	BaseDir string // where projects get created
}

// setupTestEnv creates isolated temp directories and points BOOTSTRAPPER_HOME
// at one of them so user config cannot leak into the run.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		BaseDir: t.TempDir(),
	}
	t.Setenv("BOOTSTRAPPER_HOME", env.HomeDir)
	return env
}

// requireTools skips the test unless every named binary is on PATH.
func requireTools(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s not found on PATH", name)
		}
	}
}

// requireNetwork skips tests that download packages from the registry.
func requireNetwork(t *testing.T) {
	t.Helper()
	if os.Getenv("BOOTSTRAPPER_E2E_NETWORK") == "" {
		t.Skip("set BOOTSTRAPPER_E2E_NETWORK=1 to run tests that install from the npm registry")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
		return
	}
	if info.IsDir() {
		t.Errorf("expected %s to be a file, got directory", path)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected content to contain %q:\n%s", substr, content)
	}
}
