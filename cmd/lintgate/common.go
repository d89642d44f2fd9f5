package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/reglet-dev/lintgate/internal/infrastructure/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flags onto config keys. Bound flags take
// precedence over LINTGATE_* variables and the config file.
var flagKeys = map[string]string{
	"tool":          "tool",
	"rcfile":        "config_path",
	"env-root":      "environment.root",
	"activator":     "environment.activator",
	"search-path":   "search_path.extra",
	"min-version":   "min_tool_version",
	"timeout":       "timeout",
	"redact":        "redaction.enabled",
	"report-format": "report.format",
	"report-file":   "report.file",
}

// registerGateFlags adds the flags that shape the environment and analyzer.
func registerGateFlags(cmd *cobra.Command) {
	cmd.Flags().String("tool", "", "analyzer executable, resolved inside the environment")
	cmd.Flags().String("rcfile", "", "analyzer rule configuration, relative to the working directory")
	cmd.Flags().String("env-root", "", "root directory of the isolated environment")
	cmd.Flags().String("activator", "", "activation strategy: venv, shell")
	cmd.Flags().String("search-path", "", "entry appended to the analyzer module search path")
	cmd.Flags().String("min-version", "", "minimum analyzer version or constraint (e.g. 3.0, \">=3.0 <4\")")
}

// bindFlags binds the flags the running command defines. Binding happens
// per run because commands share config keys.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// CommonOptions contains flags shared by commands that run the analyzer.
type CommonOptions struct {
	// Output
	ReportFormat string
	ReportFile   string

	Quiet bool
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	// Execution
	cmd.Flags().Duration("timeout", 0,
		"Timeout for the analyzer run (0 to disable)")
	cmd.Flags().Bool("redact", false,
		"Scrub secrets from the analyzer output")
	cmd.Flags().StringArray("extra-arg", nil,
		"Extra argument passed to the analyzer before the targets (repeatable)")

	// Output
	cmd.Flags().StringVar(&opts.ReportFormat, "report-format", "",
		"Report format: "+strings.Join(output.NewFormatterFactory().SupportedFormats(), ", "))
	cmd.Flags().StringVar(&opts.ReportFile, "report-file", "",
		"Report destination (\"-\" for stdout)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false,
		"Print nothing for a clean run")
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags(verbose bool) error {
	if verbose && opts.Quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}

	if opts.ReportFormat != "" {
		formats := output.NewFormatterFactory().SupportedFormats()
		if !slices.Contains(formats, opts.ReportFormat) {
			return fmt.Errorf("invalid report format: %s (valid: %s)", opts.ReportFormat, strings.Join(formats, ", "))
		}
	}

	return nil
}
