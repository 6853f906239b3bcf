package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/blue-gardener/internal/catalog"
	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/installer"
	"github.com/thoreinstein/blue-gardener/internal/platform"
)

// Output formats for list.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
	outputTOML = "toml"
)

var (
	listOutput    string
	listInstalled bool
	listCategory  string
)

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", outputText, "Output format: text, json, yaml, toml")
	listCmd.Flags().BoolVar(&listInstalled, "installed", false, "Show only installed agents")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Show only one category")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List catalog agents and their install state",
	Long: `List every agent in the catalog grouped by category, marking those
installed in the project and those whose installed version differs from
the catalog ("outdated").

Manifest entries that the catalog no longer provides are listed as
orphaned. When no platform can be determined the catalog is listed
without install state.`,
	Example: `  # Everything, as a table
  blue-gardener list

  # Installed agents as JSON
  blue-gardener list --installed -o json

  # One category
  blue-gardener list --category quality`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listResult is the structured list output.
type listResult struct {
	Platform       string            `json:"platform,omitempty" yaml:"platform,omitempty" toml:"platform,omitempty"`
	CatalogVersion string            `json:"catalog_version" yaml:"catalog_version" toml:"catalog_version"`
	Agents         []installer.Entry `json:"agents" yaml:"agents" toml:"agents"`
}

func runList(cmd *cobra.Command, _ []string) error {
	switch listOutput {
	case outputText, outputJSON, outputYAML, outputTOML:
	default:
		return errors.NewUserError(errors.Newf("unknown output format %q", listOutput), "Use --output text, json, yaml or toml")
	}
	if listCategory != "" && !catalog.ValidCategory(listCategory) {
		return errors.NewUserError(
			errors.Newf("unknown category %q", listCategory),
			"Valid categories: "+strings.Join(catalog.AllCategories(), ", "),
		)
	}

	root, err := projectRoot()
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	result := listResult{CatalogVersion: cat.Version()}
	var entries []installer.Entry

	target, err := resolvePlatform(cmd, root, false)
	switch {
	case errors.Is(err, errNoPlatform):
		entries = installer.Entries(cat, nil)
	case err != nil:
		return err
	default:
		adapter, err := platform.New(target, root)
		if err != nil {
			return err
		}
		entries, err = installer.New(cat, adapter).List(cmd.Context())
		if err != nil {
			return err
		}
		result.Platform = target.String()
	}

	result.Agents = filterEntries(entries, listInstalled, listCategory)
	return writeList(cmd.OutOrStdout(), result)
}

func filterEntries(entries []installer.Entry, installedOnly bool, category string) []installer.Entry {
	out := make([]installer.Entry, 0, len(entries))
	for _, e := range entries {
		if installedOnly && !e.Installed {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, e)
	}
	return out
}

func writeList(w io.Writer, result listResult) error {
	switch listOutput {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(result), "encoding output")
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return errors.Wrap(err, "encoding output")
		}
		return errors.Wrap(enc.Close(), "encoding output")
	case outputTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(result), "encoding output")
	default:
		return outputListTabular(w, result)
	}
}

// outputListTabular prints agents grouped by category, orphans last.
func outputListTabular(w io.Writer, result listResult) error {
	if result.Platform != "" {
		spec, _ := platform.Lookup(platform.Target(result.Platform))
		fmt.Fprintf(w, "%s %s\n", paint(w, colorBold, "Platform:"), spec.Label+paint(w, colorGray, " ("+spec.Destination()+")"))
	} else {
		fmt.Fprintf(w, "%s %s\n", paint(w, colorBold, "Platform:"), paint(w, colorGray, "none detected (pass --platform to show install state)"))
	}
	fmt.Fprintf(w, "%s %s\n", paint(w, colorBold, "Catalog:"), result.CatalogVersion)

	if len(result.Agents) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No agents match")
		return nil
	}

	var groups []string
	byGroup := make(map[string][]installer.Entry)
	for _, e := range result.Agents {
		group := e.Category
		if e.Orphaned {
			group = orphanedCategory
		}
		if _, ok := byGroup[group]; !ok {
			groups = append(groups, group)
		}
		byGroup[group] = append(byGroup[group], e)
	}
	// Orphans carry no category and always sort last.
	if i := slices.Index(groups, orphanedCategory); i >= 0 && i != len(groups)-1 {
		groups = append(slices.Delete(groups, i, i+1), orphanedCategory)
	}

	title := cases.Title(language.English)
	for _, group := range groups {
		fmt.Fprintln(w)
		header := title.String(group)
		if group == orphanedCategory {
			header += " (not in catalog)"
		}
		fmt.Fprintln(w, paint(w, colorCyan+colorBold, header))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  ID\tVERSION\tSTATUS\tDESCRIPTION")
		for _, e := range byGroup[group] {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
				paint(w, colorGreen, e.ID),
				entryVersion(e),
				entryStatus(w, e),
				truncate(e.Description, 60),
			)
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "writing table")
		}
	}

	return nil
}

func entryVersion(e installer.Entry) string {
	if e.Orphaned {
		return e.InstalledVersion
	}
	return e.Version
}

func entryStatus(w io.Writer, e installer.Entry) string {
	switch {
	case e.Orphaned:
		return paint(w, colorYellow, "orphaned")
	case e.Outdated:
		return paint(w, colorYellow, "outdated ("+e.InstalledVersion+")")
	case e.Installed:
		return paint(w, colorGreen, "installed")
	default:
		return paint(w, colorGray, "-")
	}
}
