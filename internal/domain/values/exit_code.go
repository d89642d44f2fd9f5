package values

// ExitCode is the process exit status produced by a gate run.
//
// Zero is a clean run. Any analyzer status is propagated unchanged, so
// the reserved codes below only describe failures that happen before or
// around the analyzer invocation.
type ExitCode int

const (
	// ExitClean indicates the analyzer ran and reported nothing.
	ExitClean ExitCode = 0
	// ExitNotProvisioned indicates the activation artifact is missing.
	ExitNotProvisioned ExitCode = 1
	// ExitToolVersion indicates the analyzer is older than required (EX_UNAVAILABLE).
	ExitToolVersion ExitCode = 69
	// ExitConfig indicates a configuration or usage error (EX_CONFIG).
	ExitConfig ExitCode = 78
	// ExitTimeout indicates the analyzer did not finish before the deadline.
	ExitTimeout ExitCode = 124
	// ExitCannotExecute indicates the analyzer was found but could not be started.
	ExitCannotExecute ExitCode = 126
	// ExitToolNotFound indicates the analyzer is not installed in the environment.
	ExitToolNotFound ExitCode = 127
	// ExitSignalBase is added to the signal number when the analyzer is killed.
	ExitSignalBase ExitCode = 128
)

// Int returns the code as a plain int for os.Exit.
func (c ExitCode) Int() int {
	return int(c)
}

// IsSuccess reports whether the code is zero.
func (c ExitCode) IsSuccess() bool {
	return c == ExitClean
}
