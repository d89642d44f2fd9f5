package analyzer

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// probeTimeout bounds the `--version` call.
const probeTimeout = 30 * time.Second

// VersionProbe runs `<tool> --version` and returns its combined output.
type VersionProbe struct {
	flag string
}

// NewVersionProbe creates a probe. An empty flag means "--version".
func NewVersionProbe(flag string) *VersionProbe {
	if flag == "" {
		flag = "--version"
	}
	return &VersionProbe{flag: flag}
}

// Probe implements ports.VersionProber.
func (p *VersionProbe) Probe(ctx context.Context, toolPath string, env []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	//nolint:gosec // G204: executable already resolved on the activated search path
	cmd := exec.CommandContext(ctx, toolPath, p.flag)
	cmd.Env = env
	cmd.WaitDelay = waitDelay

	output := NewBoundedBuffer(64 * 1024)
	cmd.Stdout = output
	cmd.Stderr = output

	if err := cmd.Run(); err != nil {
		return output.String(), fmt.Errorf("%s %s: %w", toolPath, p.flag, err)
	}
	return output.String(), nil
}
