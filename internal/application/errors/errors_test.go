package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reglet-dev/lintgate/internal/domain/values"
	"github.com/stretchr/testify/assert"
)

func TestExitCodeOf(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want values.ExitCode
	}{
		{"nil", nil, values.ExitClean},
		{"provisioning", NewProvisioningError("/venv/bin/activate", nil), values.ExitNotProvisioned},
		{"tool not found", NewToolNotFoundError("pylint", "/venv/bin"), values.ExitToolNotFound},
		{"tool version", NewToolVersionError("pylint", "2.0.0", ">= 3.0", nil), values.ExitToolVersion},
		{"invocation default", NewInvocationError("pylint", "start", 0, cause), values.ExitCannotExecute},
		{"invocation timeout", NewInvocationError("pylint", "timed out", values.ExitTimeout, cause), values.ExitTimeout},
		{"configuration", NewConfigurationError("report", "bad format", nil), values.ExitConfig},
		{"wrapped", fmt.Errorf("activate: %w", NewProvisioningError("x", nil)), values.ExitNotProvisioned},
		{"plain error", cause, values.ExitConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCodeOf(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "environment not provisioned: /venv/bin/activate",
		NewProvisioningError("/venv/bin/activate", nil).Error())
	assert.Equal(t, "pylint is not installed in the environment",
		NewToolNotFoundError("pylint", "").Error())
	assert.Equal(t, "pylint 2.0.0 is older than required >= 3.0",
		NewToolVersionError("pylint", "2.0.0", ">= 3.0", nil).Error())
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("permission denied")
	err := NewInvocationError("pylint", "start", 0, cause)
	assert.ErrorIs(t, err, cause)

	var invErr *InvocationError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", err), &invErr))
	assert.Equal(t, "pylint", invErr.Tool)
}
