// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/reglet-dev/lintgate/internal/domain/environment"
	"github.com/reglet-dev/lintgate/internal/domain/execution"
)

// Activator turns an inactive environment handle into an active one.
// A missing activation artifact must be reported as a provisioning error.
type Activator interface {
	Activate(ctx context.Context, handle *environment.Handle) error
}

// ToolResolver locates an executable on a search path.
type ToolResolver interface {
	// Resolve returns the absolute path of tool, searching pathList
	// (an OS-specific list like $PATH) only.
	Resolve(tool, pathList string) (string, error)
}

// VersionProber asks an analyzer for its version string.
type VersionProber interface {
	Probe(ctx context.Context, toolPath string, env []string) (string, error)
}

// Analyzer runs the external static-analysis tool once.
//
// A non-zero exit status is not an error: it is returned in the result.
// Errors are reserved for failing to run the tool at all.
type Analyzer interface {
	Run(ctx context.Context, inv execution.Invocation) (*execution.InvocationResult, error)
}

// OutputRedactor scrubs secrets out of captured analyzer output.
type OutputRedactor interface {
	ScrubString(input string) string
}

// Reporter writes a machine-readable record of an invocation.
type Reporter interface {
	Report(result *execution.InvocationResult) error
}

// ReportFormatter renders an invocation result in one format.
type ReportFormatter interface {
	Format(result *execution.InvocationResult) error
}

// ReportFormatterFactory creates formatters by name.
type ReportFormatterFactory interface {
	Create(format string, writer io.Writer) (ReportFormatter, error)
	SupportedFormats() []string
}
