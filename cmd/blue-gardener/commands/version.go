package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/blue-gardener/agents"
	buildinfo "github.com/thoreinstein/blue-gardener/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and catalog information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "blue-gardener %s\n", buildinfo.BuildInfo())
		fmt.Fprintf(w, "catalog %s\n", agents.Version)
	},
}
