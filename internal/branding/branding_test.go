package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "bootstrapper" {
		t.Errorf("CLIName() = %q, want %q", got, "bootstrapper")
	}
	if got := HomeDir(); got != ".bootstrapper" {
		t.Errorf("HomeDir() = %q, want %q", got, ".bootstrapper")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("log_level"); got != "BOOTSTRAPPER_LOG_LEVEL" {
		t.Errorf("EnvVar() = %q, want %q", got, "BOOTSTRAPPER_LOG_LEVEL")
	}
}
