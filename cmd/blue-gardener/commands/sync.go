package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rewrite installed agents from the catalog",
	Long: `Rewrite every agent recorded in the manifest with the catalog's current
content and record the catalog version.

Local edits to generated files are overwritten. Files whose content is
already current are left untouched, so running sync twice changes
nothing the second time. Agents that are no longer in the catalog are
reported and stay in the manifest.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, _ []string) error {
	engine, _, err := newEngine(cmd)
	if err != nil {
		return err
	}

	report, err := engine.Sync(cmd.Context())
	if report != nil {
		printReport(cmd.OutOrStdout(), engine.Root(), report)
	}
	if err != nil {
		return err
	}
	return report.Err()
}
