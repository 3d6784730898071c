package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Shell runs commands through the platform shell (sh -c, or cmd /C on Windows).
type Shell struct {
	// Stdout and Stderr receive streamed output; nil discards it.
	Stdout io.Writer
	Stderr io.Writer
	// Env is overlaid on the current process environment for every command.
	Env map[string]string
	// Logger receives one debug record per command; nil disables logging.
	Logger *slog.Logger
}

// NewShell creates a Shell that streams to the given writers.
func NewShell(stdout, stderr io.Writer) *Shell {
	return &Shell{Stdout: stdout, Stderr: stderr}
}

// LoadEnvFile overlays the KEY=VALUE pairs of a dotenv file onto s.Env.
func (s *Shell) LoadEnvFile(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("reading env file %s: %w", path, err)
	}
	if s.Env == nil {
		s.Env = make(map[string]string, len(vars))
	}
	for k, v := range vars {
		s.Env[k] = v
	}
	return nil
}

// Run executes command and captures its output.
func (s *Shell) Run(ctx context.Context, command string, opts Options) (*Output, error) {
	name, args := shellInvocation(command)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Env = buildEnv(os.Environ(), s.Env, opts.Env)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = teeTo(s.Stdout, &stdoutBuf)
	cmd.Stderr = teeTo(s.Stderr, &stderrBuf)

	if s.Logger != nil {
		s.Logger.DebugContext(ctx, "running command", "command", command, "dir", opts.Dir)
	}

	err := cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			output.ExitCode = exitErr.ExitCode()
			return output, &ProcessError{
				Command:  command,
				Dir:      opts.Dir,
				ExitCode: output.ExitCode,
				Stderr:   output.Stderr,
			}
		}
		if ctx.Err() != nil {
			return output, fmt.Errorf("running %q: %w", command, ctx.Err())
		}
		return output, fmt.Errorf("running %q: %w", command, err)
	}

	return output, nil
}

func shellInvocation(command string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C", command}
	}
	return "sh", []string{"-c", command}
}

func teeTo(w io.Writer, buf *bytes.Buffer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(w, buf)
}

// buildEnv applies overlays in order; later overlays win. Overlay keys are
// applied in sorted order so the result is deterministic.
func buildEnv(base []string, overlays ...map[string]string) []string {
	env := append([]string(nil), base...)
	for _, overlay := range overlays {
		keys := make([]string, 0, len(overlay))
		for k := range overlay {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			env = setEnv(env, k, overlay[k])
		}
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
