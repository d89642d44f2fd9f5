package main

import (
	"fmt"

	"github.com/reglet-dev/lintgate/internal/domain/values"
)

// exitError carries a process exit code through cobra. A nil err exits
// silently: the banner on stdout already explains the status.
type exitError struct {
	err  error
	code values.ExitCode
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}
