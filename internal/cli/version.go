package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cvscore-api/internal/cvscore"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and catalog version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s (catalog %s)\n", app, version, cvscore.DefaultCatalog().Version)
		},
	}
}
