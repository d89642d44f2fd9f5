package values

import "fmt"

// Outcome is the pass/fail signal derived from an analyzer exit status.
type Outcome string

const (
	// OutcomeClean indicates the analyzer exited zero.
	OutcomeClean Outcome = "clean"
	// OutcomeIssues indicates the analyzer exited non-zero, either because it
	// found problems or because it crashed.
	OutcomeIssues Outcome = "issues"
)

// OutcomeFor maps an analyzer exit status to an outcome.
// Every non-zero status is an issue; nothing is remapped to clean.
func OutcomeFor(code ExitCode) Outcome {
	if code == ExitClean {
		return OutcomeClean
	}
	return OutcomeIssues
}

// IsClean returns true if the run reported no issues
func (o Outcome) IsClean() bool {
	return o == OutcomeClean
}

// Banner returns the fixed one-line summary printed before any output.
func (o Outcome) Banner(tool string) string {
	if o.IsClean() {
		return fmt.Sprintf("No %s issues found.", tool)
	}
	return fmt.Sprintf("%s found issues:", tool)
}
