package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/platform"
)

func init() {
	rootCmd.AddCommand(platformsCmd)
}

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "Show supported platforms and what is detected in the project",
	Args:  cobra.NoArgs,
	RunE:  runPlatforms,
}

func runPlatforms(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	detected := make(map[platform.Target]platform.Detection)
	for _, d := range platform.Detect(root) {
		detected[d.Target] = d
	}

	w := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLATFORM\tNAME\tOUTPUT\tLAYOUT\tDETECTED")

	for _, t := range platform.All() {
		spec, err := platform.Lookup(t)
		if err != nil {
			return err
		}

		status := paint(w, colorGray, "-")
		if d, ok := detected[t]; ok {
			var evidence []string
			if d.Manifest {
				evidence = append(evidence, "manifest")
			}
			evidence = append(evidence, d.Markers...)
			status = paint(w, colorGreen, strings.Join(evidence, ", "))
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t, spec.Label, spec.Destination(), spec.Cardinality, status)
	}

	return errors.Wrap(tw.Flush(), "writing table")
}
