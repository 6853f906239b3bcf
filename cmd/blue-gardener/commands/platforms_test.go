package commands

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/blue-gardener/internal/errors"
)

func TestResolvePlatform(t *testing.T) {
	t.Run("config file", func(t *testing.T) {
		root := newProject(t)
		writeFile(t, filepath.Join(root, "config.yaml"), "version: 1\nplatform: windsurf\n")

		out, err := execute(t, "", "sync")
		require.NoError(t, err)
		assert.Contains(t, out, "sync windsurf: nothing to do")
	})

	t.Run("flag beats config", func(t *testing.T) {
		root := newProject(t)
		writeFile(t, filepath.Join(root, "config.yaml"), "version: 1\nplatform: windsurf\n")

		out, err := execute(t, "", "sync", "-p", "OpenCode")
		require.NoError(t, err)
		assert.Contains(t, out, "sync opencode: nothing to do")
	})

	t.Run("manifest beats markers", func(t *testing.T) {
		root := newProject(t)
		_, err := execute(t, "", "add", "blue-go-developer", "-p", "claude")
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".cursor"), 0o755))

		out, err := execute(t, "", "sync")
		require.NoError(t, err)
		assert.Contains(t, out, "sync claude: 1 unchanged")
	})

	t.Run("single marker", func(t *testing.T) {
		root := newProject(t)
		writeFile(t, filepath.Join(root, "AGENTS.md"), "# Notes\n")

		out, err := execute(t, "", "sync")
		require.NoError(t, err)
		assert.Contains(t, out, "sync codex: nothing to do")
	})

	t.Run("ambiguous without terminal", func(t *testing.T) {
		root := newProject(t)
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".cursor"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".claude"), 0o755))

		_, err := execute(t, "", "sync")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration), "got %v", err)
		assert.Contains(t, err.Error(), "cannot choose between cursor, claude")
	})

	t.Run("nothing detected without terminal", func(t *testing.T) {
		newProject(t)

		_, err := execute(t, "", "add", "blue-go-developer")
		require.Error(t, err)
		assert.ErrorIs(t, err, errNoPlatform)
		assert.Equal(t, errors.ExitUser, errors.FromError(err).Code)
	})

	t.Run("prompt", func(t *testing.T) {
		root := newProject(t)
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".cursor"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".claude"), 0o755))
		stdinIsTerminal = func() bool { return true }

		out, err := execute(t, "2\n", "sync")
		require.NoError(t, err)
		assert.Contains(t, out, "Select a platform:")
		assert.Contains(t, out, "[2] claude (.claude/agents/)")
		assert.Contains(t, out, "sync claude: nothing to do")
	})

	t.Run("list never prompts", func(t *testing.T) {
		root := newProject(t)
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".cursor"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(root, ".claude"), 0o755))
		stdinIsTerminal = func() bool { return true }

		out, err := execute(t, "2\n", "list")
		require.NoError(t, err)
		assert.NotContains(t, out, "Select a platform:")
		assert.Contains(t, out, "none detected")
	})

	t.Run("interactive disabled in config", func(t *testing.T) {
		root := newProject(t)
		writeFile(t, filepath.Join(root, "config.yaml"), "version: 1\ninteractive: false\n")
		stdinIsTerminal = func() bool { return true }

		_, err := execute(t, "", "sync")
		assert.ErrorIs(t, err, errNoPlatform)
	})

	t.Run("unknown platform flag", func(t *testing.T) {
		newProject(t)

		_, err := execute(t, "", "sync", "-p", "vim")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration), "got %v", err)
		assert.Contains(t, err.Error(), `unknown platform "vim"`)
	})

	t.Run("invalid config", func(t *testing.T) {
		root := newProject(t)
		writeFile(t, filepath.Join(root, "config.yaml"), "version: 1\nplatform: vim\n")

		_, err := execute(t, "", "sync")
		require.Error(t, err)
		assert.Equal(t, errors.ExitUser, errors.FromError(err).Code)
		assert.Contains(t, err.Error(), "invalid platform")
	})

	t.Run("missing project directory", func(t *testing.T) {
		root := newProject(t)

		_, err := execute(t, "", "sync", "-p", "cursor", "-C", filepath.Join(root, "missing"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfiguration), "got %v", err)
	})
}

func TestPlatforms(t *testing.T) {
	root := newProject(t)

	_, err := execute(t, "", "add", "blue-go-developer", "-p", "copilot")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".windsurf"), 0o755))

	out, err := execute(t, "", "platforms")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`(?m)^cursor\s+Cursor\s+\.cursor/agents/\s+multi-file\s+-$`), out)
	assert.Regexp(t, regexp.MustCompile(`(?m)^copilot\s+GitHub Copilot\s+\.github/copilot-instructions\.md\s+single-file\s+manifest, \.github/copilot-instructions\.md$`), out)
	assert.Regexp(t, regexp.MustCompile(`(?m)^windsurf\s+.*\.windsurf$`), out)
}

func TestExecute_RunsAreIndependent(t *testing.T) {
	root := newProject(t)

	// Each subtest's context is cancelled when it returns.
	t.Run("first", func(t *testing.T) {
		_, err := execute(t, "", "add", "blue-go-developer", "-p", "cursor")
		require.NoError(t, err)
	})
	t.Run("second", func(t *testing.T) {
		out, err := execute(t, "", "add", "blue-api-designer", "-p", "cursor")
		require.NoError(t, err)
		assert.Contains(t, out, "add cursor: 1 added")
	})

	assert.FileExists(t, filepath.Join(root, ".cursor", "agents", "blue-api-designer.md"))
}
