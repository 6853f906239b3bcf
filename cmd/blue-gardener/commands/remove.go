package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/blue-gardener/internal/cli/prompt"
	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/installer"
)

// orphanedCategory groups installed agents the catalog no longer has.
const orphanedCategory = "orphaned"

var removeForce bool

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove [agent-id...]",
	Aliases: []string{"rm", "uninstall"},
	Short:   "Remove installed agents",
	Long: `Remove agents from the project and drop them from the manifest.

For single-file platforms only the agent's section is removed; text
outside blue-gardener sections is kept. IDs that are not installed are
skipped without changes.

Without arguments an interactive picker offers the installed agents. When
running in a terminal a confirmation prompt is shown unless --force is
given.`,
	Example: `  # Remove one agent
  blue-gardener remove blue-react-developer

  # Remove without confirmation
  blue-gardener remove blue-react-developer --force`,
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	engine, _, err := newEngine(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	ids := args
	if len(ids) == 0 {
		entries, err := engine.List(cmd.Context())
		if err != nil {
			return err
		}
		ids, err = pickInstalledAgents(entries)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintln(w, "No agents installed")
			return nil
		}
	}

	if !removeForce && interactive() {
		selector := prompt.NewSelectorWithIO(cmd.InOrStdin(), w)
		if !selector.Confirm(fmt.Sprintf("Remove %d agent(s) from %s?", len(ids), engine.Target())) {
			fmt.Fprintln(w, "Removal cancelled")
			return nil
		}
	}

	report, err := engine.Remove(cmd.Context(), ids)
	if report != nil {
		printReport(w, engine.Root(), report)
	}
	if err != nil {
		return err
	}
	return report.Err()
}

// pickInstalledAgents offers the installed entries, grouped by category.
// It returns no IDs when nothing is installed.
func pickInstalledAgents(entries []installer.Entry) ([]string, error) {
	if !interactive() {
		return nil, errors.NewUserError(errNoIDs, "Pass agent IDs, see: blue-gardener list --installed")
	}

	var installed []installer.Entry
	for _, e := range entries {
		if e.Installed {
			installed = append(installed, e)
		}
	}
	if len(installed) == 0 {
		return nil, nil
	}

	var categories []string
	byCategory := make(map[string][]prompt.Item)
	for _, e := range installed {
		category := e.Category
		if e.Orphaned {
			category = orphanedCategory
		}
		if _, ok := byCategory[category]; !ok {
			categories = append(categories, category)
		}
		byCategory[category] = append(byCategory[category], prompt.Item{
			ID:       e.ID,
			Name:     e.Name,
			Category: category,
			Preview:  e.Description,
		})
	}

	category, err := picker.PickCategory(categories)
	if err != nil {
		return nil, pickError(err)
	}

	ids, err := picker.PickItems("remove", byCategory[category])
	if err != nil {
		return nil, pickError(err)
	}
	return ids, nil
}
