// Package testutil provides stub implementations of application ports.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/reglet-dev/lintgate/internal/application/ports"
	"github.com/reglet-dev/lintgate/internal/domain/environment"
	"github.com/reglet-dev/lintgate/internal/domain/execution"
	"github.com/reglet-dev/lintgate/internal/domain/values"
)

var (
	_ ports.Activator     = (*StubActivator)(nil)
	_ ports.ToolResolver  = (*StubResolver)(nil)
	_ ports.VersionProber = (*StubProber)(nil)
	_ ports.Analyzer      = (*StubAnalyzer)(nil)
	_ ports.Reporter      = (*StubReporter)(nil)
)

// StubActivator activates a handle with fixed variables, or fails with Err.
type StubActivator struct {
	Err   error
	Vars  map[string]string
	Calls int
}

// Activate implements ports.Activator.
func (a *StubActivator) Activate(_ context.Context, handle *environment.Handle) error {
	a.Calls++
	if a.Err != nil {
		return a.Err
	}
	return handle.MarkActive(a.Vars)
}

// StubResolver resolves only the tools listed in Tools.
type StubResolver struct {
	Tools    map[string]string
	LastPath string
}

// Resolve implements ports.ToolResolver.
func (r *StubResolver) Resolve(tool, pathList string) (string, error) {
	r.LastPath = pathList
	if p, ok := r.Tools[tool]; ok {
		return p, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

// StubProber returns a fixed version string.
type StubProber struct {
	Err     error
	Version string
}

// Probe implements ports.VersionProber.
func (p *StubProber) Probe(context.Context, string, []string) (string, error) {
	return p.Version, p.Err
}

// StubAnalyzer is a pure analyzer: it returns Output and ExitCode for every
// invocation and records what it was called with.
type StubAnalyzer struct {
	Err      error
	Output   string
	Calls    []execution.Invocation
	ExitCode values.ExitCode
	mu       sync.Mutex
}

// Run implements ports.Analyzer.
func (a *StubAnalyzer) Run(ctx context.Context, inv execution.Invocation) (*execution.InvocationResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.Calls = append(a.Calls, inv)
	if a.Err != nil {
		return nil, a.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	return execution.NewInvocationResult(inv, a.Output, a.ExitCode, false, now, now), nil
}

// CallCount returns how many times Run was called.
func (a *StubAnalyzer) CallCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Calls)
}

// LastCall returns the most recent invocation. It panics if there was none.
func (a *StubAnalyzer) LastCall() execution.Invocation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Calls[len(a.Calls)-1]
}

// StubReporter records reported results.
type StubReporter struct {
	Err     error
	Results []*execution.InvocationResult
}

// Report implements ports.Reporter.
func (r *StubReporter) Report(result *execution.InvocationResult) error {
	r.Results = append(r.Results, result)
	return r.Err
}
