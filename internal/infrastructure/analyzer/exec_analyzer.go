// Package analyzer runs external static-analysis tools as child processes.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"syscall"
	"time"

	apperrors "github.com/reglet-dev/lintgate/internal/application/errors"
	"github.com/reglet-dev/lintgate/internal/domain/execution"
	"github.com/reglet-dev/lintgate/internal/domain/values"
)

// waitDelay bounds how long Wait blocks on output pipes held open by
// grandchildren after the analyzer itself has exited or been killed.
const waitDelay = 5 * time.Second

// ExecAnalyzer runs the analyzer with os/exec.
type ExecAnalyzer struct {
	logger *slog.Logger
}

// NewExecAnalyzer creates a new exec-backed analyzer.
func NewExecAnalyzer(logger *slog.Logger) *ExecAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecAnalyzer{logger: logger}
}

// Run implements ports.Analyzer.
//
// Stdout and stderr share one buffer, so the captured output keeps the
// order in which the analyzer wrote it. A non-zero exit is returned in the
// result, not as an error.
func (a *ExecAnalyzer) Run(ctx context.Context, inv execution.Invocation) (*execution.InvocationResult, error) {
	//nolint:gosec // G204: the executable is resolved from configuration; no shell interpretation
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.WaitDelay = waitDelay

	// Always set cmd.Env explicitly so only the scoped environment is visible
	if inv.Env != nil {
		cmd.Env = inv.Env
	} else {
		cmd.Env = []string{}
	}

	output := NewBoundedBuffer(inv.MaxOutputBytes)
	cmd.Stdout = output
	cmd.Stderr = output

	start := time.Now()
	err := cmd.Run()
	end := time.Now()

	if output.Truncated {
		a.logger.WarnContext(ctx, "analyzer output truncated",
			"tool", inv.Tool,
			"limit_bytes", inv.MaxOutputBytes)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		code := values.ExitTimeout
		msg := "timed out"
		if errors.Is(ctxErr, context.Canceled) {
			msg = "canceled"
		}
		return nil, apperrors.NewInvocationError(inv.Tool, msg, code, ctxErr)
	}

	code, err := exitCodeFrom(err)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", inv.Path, err)
	}

	a.logger.DebugContext(ctx, "analyzer exited",
		"tool", inv.Tool,
		"exit_code", code.Int(),
		"output_bytes", output.Len(),
		"duration", end.Sub(start))

	return execution.NewInvocationResult(inv, output.String(), code, output.Truncated, start, end), nil
}

// exitCodeFrom maps a cmd.Run error to an exit code. Errors that are not
// exit statuses (start failures) are returned unchanged.
func exitCodeFrom(err error) (values.ExitCode, error) {
	if err == nil {
		return values.ExitClean, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, err
	}

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return values.ExitSignalBase + values.ExitCode(status.Signal()), nil
	}

	code := exitErr.ExitCode()
	if code < 0 {
		// Terminated without a status we can read; still a failure.
		return values.ExitSignalBase, nil
	}
	return values.ExitCode(code), nil
}
