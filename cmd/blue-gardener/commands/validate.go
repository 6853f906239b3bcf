package commands

import (
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/blue-gardener/agents"
	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/validator"
)

var (
	validateStrict bool
	validateFormat string
)

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Also warn about description length and tag style")
	validateCmd.Flags().StringVar(&validateFormat, "format", string(validator.FormatText), "Report format: text, json")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check agent definitions in a catalog directory",
	Long: `Check every <category>/<agent-id>.md file in a catalog directory for
required frontmatter, naming, and body problems.

Without a directory the bundled catalog is checked. Exits non-zero when
any error is found; warnings alone do not fail.`,
	Example: `  # Check a catalog you are editing
  blue-gardener validate ./agents/catalog --strict

  # Machine-readable report
  blue-gardener validate ./agents/catalog --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	format := validator.Format(validateFormat)
	if format != validator.FormatText && format != validator.FormatJSON {
		return errors.NewUserError(errors.Newf("unknown format %q", validateFormat), "Use --format text or --format json")
	}

	var fsys fs.FS
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil || !info.IsDir() {
			return errors.Configurationf("catalog directory %s does not exist", args[0])
		}
		fsys = os.DirFS(args[0])
	} else {
		sub, err := fs.Sub(agents.FS, agents.Root)
		if err != nil {
			return errors.Wrap(err, "opening bundled catalog")
		}
		fsys = sub
	}

	result, err := validator.CheckCatalog(fsys, validator.Options{Strict: validateStrict})
	if err != nil {
		return err
	}

	if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(result); err != nil {
		return err
	}

	if result.HasErrors() {
		return errors.NewExitError(errors.Configurationf("%d error(s) found", len(result.Errors())), errors.ExitUser)
	}
	return nil
}
