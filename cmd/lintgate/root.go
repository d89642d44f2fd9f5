package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	apperrors "github.com/reglet-dev/lintgate/internal/application/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds state shared by every command of one CLI invocation.
type app struct {
	viper   *viper.Viper
	stdout  io.Writer
	stderr  io.Writer
	cfgFile string
	verbose bool
	quiet   bool
}

// newRootCmd builds the application entry point.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		viper:  viper.New(),
		stdout: stdout,
		stderr: stderr,
	}

	rootCmd := &cobra.Command{
		Use:   "lintgate",
		Short: "Run a static analyzer inside an activated environment as a quality gate",
		Long: `lintgate activates an isolated development environment (a Python virtual
environment by default), checks that the analyzer is installed in it, runs the
analyzer with a fixed rule configuration, and turns its exit status into a
single pass/fail signal for pre-commit hooks, CI and editors.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.quiet, _ = cmd.Flags().GetBool("quiet")
			a.setupLogging()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./.lintgate.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(
		newCheckCmd(a),
		newEnvCmd(a),
		newInitCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// Execute runs the root command and exits with its status.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", exitErr.err)
		}
		return exitErr.code.Int()
	}

	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return apperrors.ExitCodeOf(err).Int()
}

// setupLogging sends logs to stderr so stdout carries only the banner and
// analyzer output. Warnings and above by default.
func (a *app) setupLogging() {
	level := slog.LevelWarn
	switch {
	case a.verbose:
		level = slog.LevelDebug
	case a.quiet:
		level = slog.LevelError
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
