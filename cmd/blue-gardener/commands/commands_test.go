package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/blue-gardener/internal/catalog"
	"github.com/thoreinstein/blue-gardener/internal/cli/prompt"
	"github.com/thoreinstein/blue-gardener/internal/manifest"
	"github.com/thoreinstein/blue-gardener/internal/paths"
)

// mockPicker records interactive picks.
type mockPicker struct {
	mock.Mock
}

func (m *mockPicker) PickCategory(categories []string) (string, error) {
	args := m.Called(categories)
	return args.String(0), args.Error(1)
}

func (m *mockPicker) PickItems(label string, items []prompt.Item) ([]string, error) {
	args := m.Called(label, items)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

// resetFlags restores every flag variable to its default, since cobra
// keeps parsed values between executions.
func resetFlags() {
	platformFlag, dirFlag, configFlag = "", "", ""
	verbosity, quiet = 0, false
	logFormat, logFile = "text", ""
	listOutput, listInstalled, listCategory = outputText, false, ""
	removeForce = false
	repairDryRun, repairPrune = false, false
	validateStrict, validateFormat = false, "text"
	genDocDir, genDocMan = "", false
}

// newProject returns an empty project directory, isolated from the user's
// config and environment, used as the working directory.
func newProject(t *testing.T) string {
	t.Helper()

	t.Setenv("BLUE_GARDENER_CONFIG_DIR", t.TempDir())
	t.Setenv("BLUE_GARDENER_PLATFORM", "")
	t.Setenv("BLUE_GARDENER_DEBUG", "")

	dir := t.TempDir()
	t.Chdir(dir)

	origTerminal, origPicker := stdinIsTerminal, picker
	t.Cleanup(func() {
		stdinIsTerminal, picker = origTerminal, origPicker
		resetFlags()
	})
	stdinIsTerminal = func() bool { return false }

	// Resolve symlinks such as macOS /var -> /private/var so paths compare.
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}

// execute runs the CLI with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	clearContexts(rootCmd)
	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

// clearContexts drops the contexts stored by earlier executions. Cobra only
// hands a subcommand the root context when its own is nil.
func clearContexts(c *cobra.Command) {
	c.SetContext(nil)
	for _, sub := range c.Commands() {
		clearContexts(sub)
	}
}

func bundledVersion(t *testing.T, id string) string {
	t.Helper()
	cat, err := catalog.Embedded()
	require.NoError(t, err)
	def, err := cat.Get(id)
	require.NoError(t, err)
	return def.Version
}

func readManifest(t *testing.T, platform, root string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.NewStore(paths.ManifestPath(platform, root)).Load()
	require.NoError(t, err)
	return m
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeManifest(t *testing.T, platform, root string, m *manifest.Manifest) {
	t.Helper()
	require.NoError(t, manifest.NewStore(paths.ManifestPath(platform, root)).Save(m))
}
