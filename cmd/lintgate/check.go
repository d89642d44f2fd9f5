package main

import (
	"github.com/reglet-dev/lintgate/internal/application/dto"
	apperrors "github.com/reglet-dev/lintgate/internal/application/errors"
	"github.com/reglet-dev/lintgate/internal/infrastructure/output"
	"github.com/spf13/cobra"
)

// newCheckCmd builds the check command.
func newCheckCmd(a *app) *cobra.Command {
	opts := &CommonOptions{}

	cmd := &cobra.Command{
		Use:   "check [targets...]",
		Short: "Run the analyzer against the given targets",
		Long: `Activate the environment, make sure the analyzer is installed in it, and run
it once against the targets with the configured rule file.

Targets are passed to the analyzer verbatim and in order. With no targets the
analyzer decides what to analyze. Use -- before targets that start with a dash.

Exit status:
  0      no issues found
  N      the analyzer's own non-zero status
  1      environment not provisioned
  124    analyzer timed out
  126    analyzer could not be started
  127    analyzer not installed in the environment
  69     analyzer older than min_tool_version
  78     configuration or usage error`,
		Example: `  lintgate check app.py utils/
  lintgate check --tool flake8 --rcfile setup.cfg src/
  lintgate check --report-format sarif --report-file lint.sarif -- -odd-name.py`,
		Args: cobra.ArbitraryArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if err := opts.ValidateFlags(a.verbose); err != nil {
				return apperrors.NewConfigurationError("flags", "invalid flags", err)
			}
			return nil
		},
	}

	registerGateFlags(cmd)
	opts.RegisterFlags(cmd)

	cmd.RunE = withContainer(a, func(cc *CommandContext, _ *cobra.Command, args []string) error {
		return runCheck(cc, a, opts, args)
	})
	return cmd
}

// runCheck executes the gate and maps its response to the process status.
func runCheck(cc *CommandContext, a *app, opts *CommonOptions, targets []string) error {
	timeout, err := cc.Container.Config().GateTimeout()
	if err != nil {
		return apperrors.NewConfigurationError("timeout", "invalid timeout", err)
	}

	resp, err := cc.Container.GateUseCase().Execute(cc.Context, dto.GateRequest{
		Targets: targets,
		Timeout: timeout,
	})

	if resp != nil {
		if werr := output.NewBannerWriter(a.stdout, opts.Quiet).Write(resp); werr != nil {
			cc.Logger.Warn("failed to write output", "error", werr)
		}
	}

	if err != nil {
		// A failing analyzer status outranks a report write failure
		if resp != nil && !resp.ExitCode.IsSuccess() {
			return &exitError{err: err, code: resp.ExitCode}
		}
		return err
	}

	if !resp.ExitCode.IsSuccess() {
		return &exitError{code: resp.ExitCode}
	}
	return nil
}
