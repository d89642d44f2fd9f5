package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	apperrors "github.com/reglet-dev/lintgate/internal/application/errors"
	"github.com/reglet-dev/lintgate/internal/infrastructure/system"
	"github.com/spf13/cobra"
)

// InitOptions configure the init command.
type InitOptions struct {
	OutputPath    string
	Force         bool
	NoInteractive bool
}

// promptConfig asks for the settings that differ between projects.
// Replaced in tests.
var promptConfig = runConfigForm

// newInitCmd builds the init command.
func newInitCmd(a *app) *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .lintgate.yaml with the defaults",
		Example: `  lintgate init
  lintgate init --no-interactive --output ci/lintgate.yaml`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", system.DefaultConfigFile, "Output file path")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&opts.NoInteractive, "no-interactive", false, "Disable interactive prompts")
	return cmd
}

func runInit(a *app, opts *InitOptions) error {
	cfg := system.DefaultConfig()

	if !opts.NoInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := system.Write(opts.OutputPath, cfg, opts.Force); err != nil {
		if errors.Is(err, os.ErrExist) {
			return apperrors.NewConfigurationError("init",
				fmt.Sprintf("%s already exists (use --force to overwrite)", opts.OutputPath), nil)
		}
		return apperrors.NewConfigurationError("init", "failed to write config", err)
	}

	_, _ = fmt.Fprintf(a.stdout, "Wrote %s\n", opts.OutputPath)
	return nil
}

func runConfigForm(cfg *system.Config) error {
	required := func(s string) error {
		if s == "" {
			return errors.New("required")
		}
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Analyzer").
				Value(&cfg.Tool).
				Validate(required),
			huh.NewInput().
				Title("Rule configuration file").
				Description("Leave empty to use the analyzer's own lookup").
				Value(&cfg.ConfigPath),
			huh.NewInput().
				Title("Environment root").
				Value(&cfg.Environment.Root).
				Validate(required),
			huh.NewSelect[string]().
				Title("Activation").
				Options(
					huh.NewOption("Python venv layout", "venv"),
					huh.NewOption("Source the activation script in sh", "shell"),
				).
				Value(&cfg.Environment.Activator),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Extra module search path").
				Description("Appended to " + cfg.SearchPath.Var).
				Value(&cfg.SearchPath.Extra),
			huh.NewInput().
				Title("Minimum analyzer version").
				Description("Leave empty to skip the version check").
				Value(&cfg.MinToolVersion),
		),
	).Run()
}
