// Package execution provides domain models for analyzer invocations.
package execution

import (
	"time"

	"github.com/reglet-dev/lintgate/internal/domain/values"
)

// Invocation describes a single analyzer run: the resolved executable,
// its arguments, and the scoped environment it runs with.
type Invocation struct {
	RunID values.RunID
	// Tool is the display name used in banners ("pylint").
	Tool string
	// Path is the resolved executable.
	Path string
	// Args are passed after the executable, targets last and in order.
	Args []string
	// Env is the complete environment of the child process as KEY=VALUE.
	Env []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// MaxOutputBytes caps the captured output; zero means no cap.
	MaxOutputBytes int
}

// InvocationResult is the captured output and numeric status of one
// analyzer invocation. It is immutable once created.
type InvocationResult struct {
	startTime time.Time
	endTime   time.Time
	runID     values.RunID
	tool      string
	output    string
	args      []string
	exitCode  values.ExitCode
	truncated bool
}

// NewInvocationResult creates a result. args is copied.
func NewInvocationResult(inv Invocation, output string, exitCode values.ExitCode, truncated bool, start, end time.Time) *InvocationResult {
	args := make([]string, len(inv.Args))
	copy(args, inv.Args)

	return &InvocationResult{
		runID:     inv.RunID,
		tool:      inv.Tool,
		args:      args,
		output:    output,
		exitCode:  exitCode,
		truncated: truncated,
		startTime: start,
		endTime:   end,
	}
}

// RunID returns the run this result belongs to.
func (r *InvocationResult) RunID() values.RunID { return r.runID }

// Tool returns the analyzer display name.
func (r *InvocationResult) Tool() string { return r.tool }

// Args returns a copy of the arguments the analyzer was invoked with.
func (r *InvocationResult) Args() []string {
	out := make([]string, len(r.args))
	copy(out, r.args)
	return out
}

// Output returns the merged stdout and stderr of the analyzer.
func (r *InvocationResult) Output() string { return r.output }

// ExitCode returns the analyzer's exit status.
func (r *InvocationResult) ExitCode() values.ExitCode { return r.exitCode }

// Truncated reports whether the output hit the capture limit.
func (r *InvocationResult) Truncated() bool { return r.truncated }

// StartTime returns when the analyzer was started.
func (r *InvocationResult) StartTime() time.Time { return r.startTime }

// EndTime returns when the analyzer exited.
func (r *InvocationResult) EndTime() time.Time { return r.endTime }

// Duration returns the wall-clock run time.
func (r *InvocationResult) Duration() time.Duration { return r.endTime.Sub(r.startTime) }

// Outcome derives the pass/fail signal from the exit status.
func (r *InvocationResult) Outcome() values.Outcome {
	return values.OutcomeFor(r.exitCode)
}

// WithOutput returns a copy of the result with different output text.
// Used to apply redaction without mutating the captured original.
func (r *InvocationResult) WithOutput(output string) *InvocationResult {
	cp := *r
	cp.args = r.Args()
	cp.output = output
	return &cp
}

// Record is the serializable view of an InvocationResult used by reports.
type Record struct {
	StartTime time.Time      `json:"start_time" yaml:"start_time"`
	EndTime   time.Time      `json:"end_time" yaml:"end_time"`
	RunID     values.RunID   `json:"run_id" yaml:"run_id"`
	Tool      string         `json:"tool" yaml:"tool"`
	Outcome   values.Outcome `json:"outcome" yaml:"outcome"`
	Output    string         `json:"output" yaml:"output"`
	Args      []string       `json:"args" yaml:"args"`
	ExitCode  int            `json:"exit_code" yaml:"exit_code"`
	Duration  int64          `json:"duration_ms" yaml:"duration_ms"`
	Truncated bool           `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// Record returns the serializable view of the result.
func (r *InvocationResult) Record() Record {
	return Record{
		StartTime: r.startTime,
		EndTime:   r.endTime,
		RunID:     r.runID,
		Tool:      r.tool,
		Outcome:   r.Outcome(),
		Output:    r.output,
		Args:      r.Args(),
		ExitCode:  r.exitCode.Int(),
		Duration:  r.Duration().Milliseconds(),
		Truncated: r.truncated,
	}
}
