package activation

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/reglet-dev/lintgate/internal/domain/environment"
)

// VenvActivator activates a Python virtual environment the way its
// activate script would: VIRTUAL_ENV is set, the venv's bin directory is
// prepended to PATH, and PYTHONHOME is removed.
type VenvActivator struct {
	baseEnv []string
}

// NewVenvActivator creates a venv activator starting from baseEnv.
func NewVenvActivator(baseEnv []string) *VenvActivator {
	return &VenvActivator{baseEnv: baseEnv}
}

// Activate implements ports.Activator.
func (a *VenvActivator) Activate(_ context.Context, handle *environment.Handle) error {
	if err := requireArtifact(handle.ActivationScript()); err != nil {
		return err
	}

	root, err := filepath.Abs(handle.Root())
	if err != nil {
		root = handle.Root()
	}

	vars := environment.ParseEnviron(a.baseEnv)
	vars["VIRTUAL_ENV"] = root
	delete(vars, "PYTHONHOME")

	binDir := filepath.Join(root, binDirName())
	if current := vars["PATH"]; current != "" {
		vars["PATH"] = binDir + string(os.PathListSeparator) + current
	} else {
		vars["PATH"] = binDir
	}

	return handle.MarkActive(vars)
}

func binDirName() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}
