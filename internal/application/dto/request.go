// Package dto contains the request and response types of application use cases.
package dto

import "time"

// GateRequest is one run of the quality gate.
type GateRequest struct {
	// Targets are forwarded to the analyzer verbatim. Empty means the
	// analyzer's own default selection.
	Targets []string

	// Timeout bounds the analyzer invocation; zero disables it.
	Timeout time.Duration
}
