// Package apperrors defines application-level error types.
//
// Every error that ends a gate run carries the process exit code it maps
// to, so the CLI never has to guess.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/reglet-dev/lintgate/internal/domain/values"
)

// ExitCoder is implemented by errors that map to a specific exit code.
type ExitCoder interface {
	error
	ExitCode() values.ExitCode
}

// ExitCodeOf returns the exit code carried by err, or ExitConfig when err
// does not carry one. A nil error maps to ExitClean.
func ExitCodeOf(err error) values.ExitCode {
	if err == nil {
		return values.ExitClean
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return values.ExitConfig
}

// ProvisioningError indicates the environment activation artifact is missing.
type ProvisioningError struct {
	Cause  error
	Script string
}

func (e *ProvisioningError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("environment not provisioned: %s: %v", e.Script, e.Cause)
	}
	return fmt.Sprintf("environment not provisioned: %s", e.Script)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Cause
}

// ExitCode implements ExitCoder.
func (e *ProvisioningError) ExitCode() values.ExitCode {
	return values.ExitNotProvisioned
}

// NewProvisioningError creates a new provisioning error.
func NewProvisioningError(script string, cause error) *ProvisioningError {
	return &ProvisioningError{
		Script: script,
		Cause:  cause,
	}
}

// ToolNotFoundError indicates the analyzer is not on the activated search path.
type ToolNotFoundError struct {
	Tool string
	Path string // Search path that was inspected
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s is not installed in the environment", e.Tool)
}

// ExitCode implements ExitCoder.
func (e *ToolNotFoundError) ExitCode() values.ExitCode {
	return values.ExitToolNotFound
}

// NewToolNotFoundError creates a new tool resolution error.
func NewToolNotFoundError(tool, path string) *ToolNotFoundError {
	return &ToolNotFoundError{
		Tool: tool,
		Path: path,
	}
}

// ToolVersionError indicates the analyzer is older than the configured minimum
// or its version could not be determined.
type ToolVersionError struct {
	Cause    error
	Tool     string
	Found    string
	Required string
}

func (e *ToolVersionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot determine %s version (required %s): %v", e.Tool, e.Required, e.Cause)
	}
	return fmt.Sprintf("%s %s is older than required %s", e.Tool, e.Found, e.Required)
}

func (e *ToolVersionError) Unwrap() error {
	return e.Cause
}

// ExitCode implements ExitCoder.
func (e *ToolVersionError) ExitCode() values.ExitCode {
	return values.ExitToolVersion
}

// NewToolVersionError creates a new version error.
func NewToolVersionError(tool, found, required string, cause error) *ToolVersionError {
	return &ToolVersionError{
		Tool:     tool,
		Found:    found,
		Required: required,
		Cause:    cause,
	}
}

// InvocationError indicates the analyzer could not be run to completion.
// It is distinct from the analyzer reporting a non-zero status.
type InvocationError struct {
	Cause   error
	Tool    string
	Message string
	Code    values.ExitCode
}

func (e *InvocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to run %s: %s: %v", e.Tool, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to run %s: %s", e.Tool, e.Message)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// ExitCode implements ExitCoder.
func (e *InvocationError) ExitCode() values.ExitCode {
	if e.Code == values.ExitClean {
		return values.ExitCannotExecute
	}
	return e.Code
}

// NewInvocationError creates a new invocation error.
func NewInvocationError(tool, message string, code values.ExitCode, cause error) *InvocationError {
	return &InvocationError{
		Tool:    tool,
		Message: message,
		Code:    code,
		Cause:   cause,
	}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// ExitCode implements ExitCoder.
func (e *ConfigurationError) ExitCode() values.ExitCode {
	return values.ExitConfig
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}
