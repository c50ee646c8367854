package cmd

import (
	"fmt"

	"github.com/gnolang/lessp/check"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lessp %s\n", check.Version)
	},
}
