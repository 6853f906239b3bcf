package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/blue-gardener/internal/catalog"
	"github.com/thoreinstein/blue-gardener/internal/cli/prompt"
	"github.com/thoreinstein/blue-gardener/internal/errors"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:     "add [agent-id...]",
	Aliases: []string{"install"},
	Short:   "Install agents into the project",
	Long: `Install agents from the catalog into the project and record them in
the manifest.

Without arguments an interactive picker asks for a category and then for
one or more agents. IDs that are not in the catalog are reported and the
remaining agents are still installed.`,
	Example: `  # Install two agents
  blue-gardener add blue-react-developer blue-code-reviewer

  # Install for Codex (sections in AGENTS.md)
  blue-gardener add blue-go-developer --platform codex

  # Choose interactively
  blue-gardener add`,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	engine, cat, err := newEngine(cmd)
	if err != nil {
		return err
	}

	ids := args
	if len(ids) == 0 {
		ids, err = pickCatalogAgents(cat)
		if err != nil {
			return err
		}
	}

	report, err := engine.Add(cmd.Context(), ids)
	if report != nil {
		printReport(cmd.OutOrStdout(), engine.Root(), report)
	}
	if err != nil {
		return err
	}
	return report.Err()
}

// errNoIDs is returned when no agent IDs are given and prompting is not
// possible.
var errNoIDs = errors.New("no agent IDs given")

// pickCatalogAgents asks for a category, then for agents within it.
func pickCatalogAgents(cat catalog.Catalog) ([]string, error) {
	if !interactive() {
		return nil, errors.NewUserError(errNoIDs, "Pass agent IDs, see: blue-gardener list")
	}

	category, err := picker.PickCategory(cat.Categories())
	if err != nil {
		return nil, pickError(err)
	}

	defs := catalog.InCategory(cat.List(), category)
	items := make([]prompt.Item, len(defs))
	for i, def := range defs {
		items[i] = prompt.Item{
			ID:       def.ID,
			Name:     def.DisplayName(),
			Category: def.Category,
			Preview:  def.Description,
		}
	}

	ids, err := picker.PickItems("add", items)
	if err != nil {
		return nil, pickError(err)
	}
	return ids, nil
}

func pickError(err error) error {
	if errors.Is(err, prompt.ErrSelectionCancelled) {
		return errors.NewUserError(err, "Pass agent IDs to skip the picker")
	}
	return err
}
