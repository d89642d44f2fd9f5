package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/reglet-dev/lintgate/internal/application/dto"
	"github.com/spf13/cobra"
)

var (
	envTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	envLabelStyle = lipgloss.NewStyle().
			Width(18).
			Foreground(lipgloss.Color("240"))

	envOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	envFailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	envBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// newEnvCmd builds the env command.
func newEnvCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show the resolved environment without running the analyzer",
		Long: `Activate the environment and resolve the analyzer the way check does, then
print what was found. Exits like check would before invoking the analyzer.`,
		Args: cobra.NoArgs,
	}

	registerGateFlags(cmd)

	cmd.RunE = withContainer(a, func(cc *CommandContext, _ *cobra.Command, _ []string) error {
		report, err := cc.Container.GateUseCase().Inspect(cc.Context)
		_, _ = fmt.Fprintln(a.stdout, renderEnvironment(report, err))
		return err
	})
	return cmd
}

// renderEnvironment formats an environment report. err is the failure that
// stopped the inspection, if any.
func renderEnvironment(r *dto.EnvironmentReport, err error) string {
	if r == nil {
		r = &dto.EnvironmentReport{}
	}

	row := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		return envLabelStyle.Render(label) + value
	}

	status := envOKStyle.Render("ready")
	if err != nil {
		status = envFailStyle.Render(err.Error())
	}

	toolVersion := r.ToolVersion
	if toolVersion == "" {
		toolVersion = "(not checked)"
	}

	lines := []string{
		envTitleStyle.Render("lintgate environment"),
		"",
		row("root", r.Root),
		row("activation script", r.ActivationScript),
		row("state", string(r.State)),
		row("tool", r.Tool),
		row("tool path", r.ToolPath),
		row("tool version", toolVersion),
		row("rule config", r.ConfigPath),
		row(r.SearchPathVar, r.SearchPath),
		"",
		row("status", status),
	}
	return envBoxStyle.Render(strings.Join(lines, "\n"))
}
