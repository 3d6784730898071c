package runner

import (
	"context"
	"fmt"
	"strings"
)

// Runner runs a shell command string.
type Runner interface {
	// Run executes command in opts.Dir. A non-zero exit yields a *ProcessError
	// alongside the captured Output.
	Run(ctx context.Context, command string, opts Options) (*Output, error)
}

// Options holds per-invocation parameters.
type Options struct {
	Dir string            // working directory
	Env map[string]string // overlay on top of the runner's environment
}

// Output captures the result of a command execution.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ProcessError reports a command that ran but exited non-zero.
type ProcessError struct {
	Command  string
	Dir      string
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
	if e.Dir != "" {
		msg += " in " + e.Dir
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + lastLines(stderr, 5)
	}
	return msg
}

// lastLines keeps the tail of noisy package manager output readable.
func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
