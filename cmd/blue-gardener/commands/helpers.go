package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thoreinstein/blue-gardener/internal/catalog"
	"github.com/thoreinstein/blue-gardener/internal/cli/prompt"
	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/installer"
	"github.com/thoreinstein/blue-gardener/internal/logging"
	"github.com/thoreinstein/blue-gardener/internal/platform"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// picker drives add/remove when no IDs are given. Tests replace it.
var picker prompt.Picker = prompt.NewFuzzyPicker()

// stdinIsTerminal reports whether prompts can be shown. Tests replace it.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// paint wraps s in an ANSI code when w is a color terminal.
func paint(w io.Writer, code, s string) string {
	if !logging.SupportsColor(w) {
		return s
	}
	return code + s + colorReset
}

// interactive reports whether the user can be prompted.
func interactive() bool {
	if cfg != nil && !cfg.Interactive {
		return false
	}
	return stdinIsTerminal()
}

// projectRoot returns the absolute project directory from --dir or the
// working directory.
func projectRoot() (string, error) {
	dir := dirFlag
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Filesystem(errors.Wrap(err, "getting working directory"))
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Filesystem(errors.Wrapf(err, "resolving %s", dir))
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Configurationf("project directory %s does not exist", abs)
	}
	if !info.IsDir() {
		return "", errors.Configurationf("project path %s is not a directory", abs)
	}
	return abs, nil
}

// loadCatalog returns the catalog_dir override when configured, otherwise
// the bundled catalog.
func loadCatalog() (catalog.Catalog, error) {
	if cfg != nil && cfg.CatalogDir != "" {
		return catalog.FromDir(cfg.CatalogDir)
	}
	return catalog.Embedded()
}

// errNoPlatform is returned when resolution finds nothing to go on.
var errNoPlatform = errors.New("no platform selected")

// resolvePlatform picks the target for root: --platform, then the config
// file, then an existing manifest, then a single detected tool, then a
// prompt when allowPrompt is set. With nothing to go on it fails with a
// configuration error.
func resolvePlatform(cmd *cobra.Command, root string, allowPrompt bool) (platform.Target, error) {
	log := logging.FromContext(cmd.Context())

	if platformFlag != "" {
		return platform.Parse(platformFlag)
	}
	if cfg != nil && cfg.Platform != "" {
		log.Debug("platform from config", "platform", cfg.Platform)
		return platform.Parse(cfg.Platform)
	}

	var withManifest, withMarkers []platform.Target
	for _, d := range platform.Detect(root) {
		if d.Manifest {
			withManifest = append(withManifest, d.Target)
		}
		withMarkers = append(withMarkers, d.Target)
	}

	candidates := withMarkers
	switch {
	case len(withManifest) == 1:
		log.Debug("platform from manifest", "platform", withManifest[0])
		return withManifest[0], nil
	case len(withManifest) > 1:
		candidates = withManifest
	case len(withMarkers) == 1:
		log.Debug("platform detected", "platform", withMarkers[0])
		return withMarkers[0], nil
	case len(withMarkers) == 0:
		candidates = platform.All()
	}

	if !allowPrompt || !interactive() {
		names := make([]string, len(candidates))
		for i, t := range candidates {
			names[i] = t.String()
		}
		return "", errors.Mark(
			errors.Wrapf(errNoPlatform, "cannot choose between %s", strings.Join(names, ", ")),
			errors.ErrConfiguration,
		)
	}

	options := make([]prompt.Option, len(candidates))
	for i, t := range candidates {
		spec, _ := platform.Lookup(t)
		options[i] = prompt.Option{Label: t.String(), Detail: spec.Destination()}
	}

	selector := prompt.NewSelectorWithIO(cmd.InOrStdin(), cmd.OutOrStdout())
	idx, err := selector.Select("Select a platform", options)
	if err != nil {
		return "", errors.NewUserError(err, "Pass --platform to skip the prompt")
	}
	return candidates[idx], nil
}

// newEngine wires the catalog and the resolved platform for the project.
func newEngine(cmd *cobra.Command) (*installer.Engine, catalog.Catalog, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, nil, err
	}

	cat, err := loadCatalog()
	if err != nil {
		return nil, nil, err
	}

	target, err := resolvePlatform(cmd, root, true)
	if err != nil {
		return nil, nil, err
	}

	adapter, err := platform.New(target, root)
	if err != nil {
		return nil, nil, err
	}

	logging.FromContext(cmd.Context()).Debug("using platform", "platform", target, "root", root)
	return installer.New(cat, adapter), cat, nil
}

// relPath shows p relative to root when it lies inside it.
func relPath(root, p string) string {
	if p == "" {
		return ""
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}

// printReport writes one line per item and a summary.
func printReport(w io.Writer, root string, report *installer.Report) {
	if quiet {
		return
	}

	for _, item := range report.Items {
		var mark, code string
		switch item.Action {
		case installer.ActionAdded:
			mark, code = "+", colorGreen
		case installer.ActionUpdated:
			mark, code = "~", colorYellow
		case installer.ActionRemoved:
			mark, code = "-", colorYellow
		case installer.ActionFailed:
			mark, code = "✗", colorRed
		default:
			mark, code = "=", colorGray
		}

		line := fmt.Sprintf("%s %s %s", paint(w, code, mark), item.ID, paint(w, colorGray, string(item.Action)))
		if item.Version != "" {
			line += " " + item.Version
		}
		if item.Path != "" {
			line += paint(w, colorGray, " → "+relPath(root, item.Path))
		}
		if item.Err != nil {
			line += ": " + item.Err.Error()
		}
		fmt.Fprintln(w, line)
	}

	var counts []string
	for _, a := range []installer.Action{
		installer.ActionAdded, installer.ActionUpdated, installer.ActionUnchanged,
		installer.ActionRemoved, installer.ActionSkipped, installer.ActionFailed,
	} {
		if n := report.Count(a); n > 0 {
			counts = append(counts, fmt.Sprintf("%d %s", n, a))
		}
	}
	if len(counts) == 0 {
		counts = append(counts, "nothing to do")
	}

	verb := report.Operation
	if report.DryRun {
		verb += " (dry run)"
	}
	fmt.Fprintf(w, "%s %s: %s\n", paint(w, colorCyan+colorBold, verb), report.Platform, strings.Join(counts, ", "))
}
