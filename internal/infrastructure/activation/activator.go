// Package activation provides activators for isolated execution environments.
//
// Activators never touch the process environment. They compute the
// variables an activated shell would have and store them on the handle.
package activation

import (
	"fmt"
	"os"

	apperrors "github.com/reglet-dev/lintgate/internal/application/errors"
	"github.com/reglet-dev/lintgate/internal/application/ports"
)

// Kind selects an activation strategy.
type Kind string

const (
	// KindVenv derives the activated variables from a Python venv layout.
	KindVenv Kind = "venv"
	// KindShell sources the activation script in sh and captures the result.
	KindShell Kind = "shell"
)

// Options configure an activator.
type Options struct {
	// BaseEnv is the environment activation starts from.
	// Nil means os.Environ().
	BaseEnv []string
	// Shell is the interpreter used by KindShell. Default "/bin/sh".
	Shell string
}

// New returns the activator for kind.
func New(kind Kind, opts Options) (ports.Activator, error) {
	if opts.BaseEnv == nil {
		opts.BaseEnv = os.Environ()
	}

	switch kind {
	case KindVenv, "":
		return NewVenvActivator(opts.BaseEnv), nil
	case KindShell:
		return NewShellActivator(opts.Shell, opts.BaseEnv), nil
	default:
		return nil, apperrors.NewConfigurationError("activator",
			fmt.Sprintf("unknown activator %q (supported: %s, %s)", kind, KindVenv, KindShell), nil)
	}
}

// requireArtifact fails with a provisioning error unless script is a regular file.
func requireArtifact(script string) error {
	info, err := os.Stat(script)
	if err != nil {
		return apperrors.NewProvisioningError(script, err)
	}
	if info.IsDir() {
		return apperrors.NewProvisioningError(script, fmt.Errorf("is a directory"))
	}
	return nil
}
