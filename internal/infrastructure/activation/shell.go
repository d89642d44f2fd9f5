package activation

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/reglet-dev/lintgate/internal/domain/environment"
)

// ShellActivator sources an arbitrary activation script and captures the
// environment it leaves behind. Only the captured copy is kept; the
// lintgate process itself is not modified.
type ShellActivator struct {
	shell   string
	baseEnv []string
}

// NewShellActivator creates a shell activator. An empty shell means /bin/sh.
func NewShellActivator(shell string, baseEnv []string) *ShellActivator {
	if shell == "" {
		shell = "/bin/sh"
	}
	return &ShellActivator{
		shell:   shell,
		baseEnv: baseEnv,
	}
}

// Activate implements ports.Activator.
func (a *ShellActivator) Activate(ctx context.Context, handle *environment.Handle) error {
	if err := requireArtifact(handle.ActivationScript()); err != nil {
		return err
	}

	// The script path is passed as $1 so it is never interpreted by the shell.
	//nolint:gosec // G204: fixed script, path passed as a positional argument
	cmd := exec.CommandContext(ctx, a.shell, "-c", `. "$1" >/dev/null && env -0`, "lintgate-activate", handle.ActivationScript())
	cmd.Env = a.baseEnv
	cmd.Dir = handle.Root()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("sourcing %s: %w: %s", handle.ActivationScript(), err, msg)
		}
		return fmt.Errorf("sourcing %s: %w", handle.ActivationScript(), err)
	}

	vars := environment.ParseEnviron(splitNull(stdout.String()))
	// Variables maintained by the shell itself, not by the script.
	for _, k := range []string{"_", "PWD", "OLDPWD", "SHLVL"} {
		delete(vars, k)
	}

	return handle.MarkActive(vars)
}

func splitNull(s string) []string {
	parts := strings.Split(s, "\x00")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
