// Package entities contains the domain entities of a gate run.
package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Default gate settings. They describe a Python project linted by pylint
// inside a virtual environment at ./.venv.
const (
	DefaultTool          = "pylint"
	DefaultConfigPath    = ".pylintrc"
	DefaultConfigFlag    = "--rcfile"
	DefaultSearchPathVar = "PYTHONPATH"
	DefaultMaxOutput     = 10 * 1024 * 1024
)

// GateConfig is the fixed configuration of the analyzer invocation.
// Targets are not part of it; they arrive per run.
type GateConfig struct {
	// Tool is the analyzer executable name, resolved on the activated PATH.
	Tool string
	// ConfigPath is the rule configuration, relative to the invocation root.
	// Empty disables the config flag.
	ConfigPath string
	// ConfigFlag introduces ConfigPath on the command line ("--rcfile").
	ConfigFlag string
	// SearchPathVar names the variable extended with SearchPathExtra.
	SearchPathVar string
	// SearchPathExtra is appended to SearchPathVar. Empty leaves it untouched.
	SearchPathExtra string
	// MinToolVersion is an optional lower bound on the analyzer version.
	MinToolVersion string
	// ExtraArgs go between the config flag and the targets.
	ExtraArgs []string
	// MaxOutputBytes caps captured output; zero means no cap.
	MaxOutputBytes int
	// RedactOutput scrubs secrets from the output before it is printed.
	RedactOutput bool
}

// DefaultGateConfig returns a config with the defaults filled in.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		Tool:           DefaultTool,
		ConfigPath:     DefaultConfigPath,
		ConfigFlag:     DefaultConfigFlag,
		SearchPathVar:  DefaultSearchPathVar,
		MaxOutputBytes: DefaultMaxOutput,
	}
}

// Validate checks the config for values that cannot produce a valid invocation.
func (c GateConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Tool) == "" {
		errs = append(errs, errors.New("tool must not be empty"))
	}
	if c.ConfigPath != "" && c.ConfigFlag == "" {
		errs = append(errs, errors.New("config_flag is required when config_path is set"))
	}
	if c.SearchPathExtra != "" && c.SearchPathVar == "" {
		errs = append(errs, errors.New("search_path_var is required when search_path is set"))
	}
	if c.MaxOutputBytes < 0 {
		errs = append(errs, fmt.Errorf("max_output_bytes must not be negative, got %d", c.MaxOutputBytes))
	}

	return errors.Join(errs...)
}
