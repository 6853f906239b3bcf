package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	buildinfo "github.com/thoreinstein/blue-gardener/cmd"
	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/pkg/frontmatter"
)

var (
	genDocDir string
	genDocMan bool
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown or man page reference for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runGenDoc,
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "out", "o", "", "output directory")
	genDocCmd.Flags().BoolVar(&genDocMan, "man", false, "write man pages instead of Markdown")
	rootCmd.AddCommand(genDocCmd)
}

func runGenDoc(cmd *cobra.Command, _ []string) error {
	if genDocDir == "" {
		return errors.NewUserError(errors.New("output directory is required"), "Pass --out <dir>")
	}
	if err := os.MkdirAll(genDocDir, 0o755); err != nil {
		return errors.Filesystem(errors.Wrap(err, "creating output directory"))
	}

	var err error
	if genDocMan {
		err = doc.GenManTree(rootCmd, &doc.GenManHeader{
			Title:   "BLUE-GARDENER",
			Section: "1",
			Source:  "blue-gardener " + buildinfo.Version,
		}, genDocDir)
	} else {
		err = doc.GenMarkdownTreeCustom(rootCmd, genDocDir, filePrepender, linkHandler)
	}
	if err != nil {
		return errors.Filesystem(errors.Wrap(err, "generating documentation"))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
	return nil
}

// pageMeta is the front matter on each Markdown page, read by the docs site.
type pageMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Draft       bool   `yaml:"draft"`
}

// filePrepender turns blue-gardener_repair.md into a page titled
// "blue-gardener repair".
func filePrepender(filename string) string {
	title := strings.ReplaceAll(strings.TrimSuffix(filepath.Base(filename), ".md"), "_", " ")
	header, err := frontmatter.Format(pageMeta{Title: title, Description: "Reference for " + title}, "")
	if err != nil {
		return ""
	}
	return string(header)
}

func linkHandler(name string) string {
	return "/docs/reference/" + strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))) + "/"
}
