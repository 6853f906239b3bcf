package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/blue-gardener/internal/installer"
)

var (
	repairDryRun bool
	repairPrune  bool
)

func init() {
	repairCmd.Flags().BoolVarP(&repairDryRun, "dry-run", "n", false, "Show what would change without writing the manifest")
	repairCmd.Flags().BoolVar(&repairPrune, "prune", false, "Drop manifest entries whose files are gone")
	rootCmd.AddCommand(repairCmd)
}

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Rebuild the manifest from generated files",
	Long: `Scan the platform's destination for generated agents (files or sections
named blue-<name>) and record any that are missing from the manifest.

Agents known to the catalog are recorded at the catalog version; others
are recorded as "unknown". An unreadable manifest is replaced. Repair
never modifies or deletes agent files.

With --prune, manifest entries whose output no longer exists are
dropped.`,
	Example: `  # Recreate a deleted manifest
  blue-gardener repair --platform cursor

  # Preview
  blue-gardener repair --dry-run --prune`,
	Args: cobra.NoArgs,
	RunE: runRepair,
}

func runRepair(cmd *cobra.Command, _ []string) error {
	engine, _, err := newEngine(cmd)
	if err != nil {
		return err
	}

	report, err := engine.Repair(cmd.Context(), installer.RepairOptions{
		DryRun: repairDryRun,
		Prune:  repairPrune,
	})
	if report != nil {
		printReport(cmd.OutOrStdout(), engine.Root(), report)
	}
	if err != nil {
		return err
	}
	return report.Err()
}
