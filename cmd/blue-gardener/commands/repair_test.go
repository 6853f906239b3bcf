package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/blue-gardener/internal/paths"
)

func TestRepair_RecreatesManifest(t *testing.T) {
	root := newProject(t)

	_, err := execute(t, "", "add", "blue-go-developer", "blue-test-engineer", "-p", "cursor")
	require.NoError(t, err)
	want := readManifest(t, "cursor", root)

	require.NoError(t, os.Remove(paths.ManifestPath("cursor", root)))
	// A file outside the naming convention is not picked up.
	writeFile(t, filepath.Join(root, ".cursor", "agents", "notes.md"), "mine\n")

	out, err := execute(t, "", "repair")
	require.NoError(t, err)
	assert.Contains(t, out, "repair cursor: 2 added")

	got := readManifest(t, "cursor", root)
	assert.True(t, want.Equal(got), "want %v, got %v", want.Agents, got.Agents)

	out, err = execute(t, "", "repair")
	require.NoError(t, err)
	assert.Contains(t, out, "repair cursor: nothing to do")
	assert.True(t, want.Equal(readManifest(t, "cursor", root)))
	assert.FileExists(t, filepath.Join(root, ".cursor", "agents", "notes.md"))
}

func TestRepair_DryRunAndPrune(t *testing.T) {
	root := newProject(t)

	_, err := execute(t, "", "add", "blue-go-developer", "blue-test-engineer", "-p", "claude")
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(root, ".claude", "agents", "blue-test-engineer.md")))

	out, err := execute(t, "", "repair", "--prune", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "- blue-test-engineer removed")
	assert.Contains(t, out, "repair (dry run) claude: 1 removed")
	assert.True(t, readManifest(t, "claude", root).Has("blue-test-engineer"))

	_, err = execute(t, "", "repair", "--prune")
	require.NoError(t, err)
	assert.Equal(t, []string{"blue-go-developer"}, readManifest(t, "claude", root).IDs())
}
