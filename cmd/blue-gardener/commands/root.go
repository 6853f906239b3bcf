// Package commands implements the CLI commands for blue-gardener.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/blue-gardener/cmd"
	"github.com/thoreinstein/blue-gardener/internal/config"
	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/logging"
)

// platformFlag holds the value of the --platform flag.
var platformFlag string

// dirFlag holds the project root given with --dir.
var dirFlag string

// configFlag holds an explicit config file path.
var configFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// cfg is the loaded configuration; nil until initConfig succeeds.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&platformFlag, "platform", "p", "",
		"target platform: cursor, claude, codex, copilot, windsurf, opencode")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "C", "",
		"project root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"config file (default: ./config.yaml, then the user config directory)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = buildinfo.Version
	rootCmd.SetVersionTemplate("blue-gardener version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	cfg, configLoadErr = config.Load(configFlag)
}

var rootCmd = &cobra.Command{
	Use:   "blue-gardener",
	Short: "Install curated agent prompts into AI coding tools",
	Long: `blue-gardener installs curated agent persona prompts into a project's
AI coding tool layout and keeps them in sync with the bundled catalog.

Supported platforms are Cursor, Claude, Codex, GitHub Copilot, Windsurf
and OpenCode. Installed agents are tracked in a manifest file
(.blue-generated-manifest.json) next to the generated files.

The platform is taken from --platform, the config file, an existing
manifest, or the tool directories already present in the project.`,
	Example: `  # See what is available
  blue-gardener list

  # Install two agents for Cursor
  blue-gardener add blue-react-developer blue-security-specialist --platform cursor

  # Pick agents interactively
  blue-gardener add

  # Rewrite installed agents after upgrading
  blue-gardener sync

  See Also: blue-gardener platforms, blue-gardener repair`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging installs the logger selected by -v, -q, --log-format and
// --log-file as the default and stores it in the command context.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pass one of --quiet or --verbose")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	lc := logging.Config{
		Level:   logLevel(),
		Format:  format,
		Output:  cmd.ErrOrStderr(),
		BaseDir: dirFlag,
	}
	if lc.BaseDir == "" {
		lc.BaseDir, _ = os.Getwd()
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewSystemError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		lc.File = f
	}

	logger := logging.New(lc)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// logLevel derives the level from -q, -v or BLUE_GARDENER_DEBUG. Flags win
// over the environment.
func logLevel() slog.Level {
	if quiet {
		return slog.LevelError
	}
	v := verbosity
	if v == 0 {
		switch os.Getenv("BLUE_GARDENER_DEBUG") {
		case "1", "true":
			v = 2
		case "2":
			v = 3
		}
	}
	return logging.LevelFromVerbosity(v)
}

// checkConfig surfaces config load failures, except for commands that do
// not touch a project.
func checkConfig(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "help", "version", "gen-doc":
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	if f := config.FileUsed(); f != "" {
		logging.FromContext(cmd.Context()).Debug("loaded config", "path", f)
	}
	return nil
}

// Execute runs the root command with ctx. Cancelling ctx stops batch
// operations between agents.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ReportError prints err with its suggestion to w and returns the process
// exit code. A nil err returns errors.ExitSuccess.
func ReportError(w io.Writer, err error) int {
	exitErr := errors.FromError(err)
	if exitErr == nil {
		return errors.ExitSuccess
	}

	fmt.Fprintf(w, "%s %s\n", paint(w, colorRed+colorBold, "Error:"), exitErr.Error())
	if exitErr.Suggestion != "" {
		fmt.Fprintf(w, "%s\n", paint(w, colorGray, exitErr.Suggestion))
	}
	return exitErr.Code
}
