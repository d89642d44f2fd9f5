package dto

import (
	"time"

	"github.com/reglet-dev/lintgate/internal/domain/environment"
	"github.com/reglet-dev/lintgate/internal/domain/execution"
	"github.com/reglet-dev/lintgate/internal/domain/values"
)

// GateResponse contains the result of one gate run.
type GateResponse struct {
	// Result is the invocation result, redacted if redaction is enabled.
	Result *execution.InvocationResult

	// Banner is the fixed summary line for the outcome.
	Banner string

	// ExitCode is the analyzer status, propagated unchanged.
	ExitCode values.ExitCode

	// Metadata contains response metadata
	Metadata ResponseMetadata
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	RunID       values.RunID
	ToolPath    string
	ToolVersion string
	ProcessedAt time.Time
	Duration    time.Duration
}

// EnvironmentReport describes the resolved environment without running the analyzer.
type EnvironmentReport struct {
	Root             string
	ActivationScript string
	State            environment.State
	Tool             string
	ToolPath         string
	ToolVersion      string
	SearchPathVar    string
	SearchPath       string
	ConfigPath       string
}
