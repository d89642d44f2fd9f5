package main

import (
	"fmt"

	"github.com/reglet-dev/lintgate/internal/version"
	"github.com/spf13/cobra"
)

// newVersionCmd builds the version command.
func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of lintgate",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			info := version.Get()
			_, _ = fmt.Fprintf(a.stdout, "lintgate version %s\n", info.Full())
		},
	}
}
