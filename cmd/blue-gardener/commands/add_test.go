package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/blue-gardener/internal/cli/prompt"
	"github.com/thoreinstein/blue-gardener/internal/errors"
)

func TestAdd_Cursor(t *testing.T) {
	root := newProject(t)

	out, err := execute(t, "", "add", "blue-react-developer", "blue-security-specialist", "--platform", "cursor")
	require.NoError(t, err)

	for _, id := range []string{"blue-react-developer", "blue-security-specialist"} {
		assert.FileExists(t, filepath.Join(root, ".cursor", "agents", id+".md"))
		assert.Contains(t, out, "+ "+id+" added "+bundledVersion(t, id))
	}
	assert.Contains(t, out, "add cursor: 2 added")

	m := readManifest(t, "cursor", root)
	assert.Equal(t, "cursor", m.Platform)
	assert.Equal(t, map[string]string{
		"blue-react-developer":     bundledVersion(t, "blue-react-developer"),
		"blue-security-specialist": bundledVersion(t, "blue-security-specialist"),
	}, m.Agents)
}

func TestAdd_Codex(t *testing.T) {
	root := newProject(t)

	_, err := execute(t, "", "add", "blue-go-developer", "blue-code-reviewer", "-p", "codex", "-C", root)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "AGENTS.md"))
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, "<!-- blue-gardener:begin blue-go-developer -->")
	assert.Contains(t, doc, "<!-- blue-gardener:begin blue-code-reviewer -->")
	assert.Equal(t, 2, strings.Count(doc, "<!-- blue-gardener:end "))

	m := readManifest(t, "codex", root)
	assert.Equal(t, "codex", m.Platform)
	assert.ElementsMatch(t, []string{"blue-go-developer", "blue-code-reviewer"}, m.IDs())
}

func TestAdd_UnknownIDContinues(t *testing.T) {
	root := newProject(t)

	out, err := execute(t, "", "add", "blue-nope", "blue-go-developer", "-p", "claude")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
	assert.Contains(t, out, "✗ blue-nope failed")
	assert.Equal(t, errors.ExitUser, ReportError(&strings.Builder{}, err))

	assert.FileExists(t, filepath.Join(root, ".claude", "agents", "blue-go-developer.md"))
	assert.True(t, readManifest(t, "claude", root).Has("blue-go-developer"))
}

func TestAdd_NoIDsWithoutTerminal(t *testing.T) {
	newProject(t)

	_, err := execute(t, "", "add", "-p", "cursor")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoIDs)
	assert.Equal(t, errors.ExitUser, ReportError(&strings.Builder{}, err))
}

func TestAdd_Interactive(t *testing.T) {
	root := newProject(t)
	stdinIsTerminal = func() bool { return true }

	m := &mockPicker{}
	m.On("PickCategory", mock.Anything).Return("quality", nil)
	m.On("PickItems", "add", mock.MatchedBy(func(items []prompt.Item) bool {
		for _, it := range items {
			if it.Category != "quality" {
				return false
			}
		}
		return len(items) > 0
	})).Return([]string{"blue-code-reviewer"}, nil)
	picker = m

	_, err := execute(t, "", "add", "-p", "windsurf")
	require.NoError(t, err)
	m.AssertExpectations(t)

	assert.FileExists(t, filepath.Join(root, ".windsurf", "rules", "blue-code-reviewer.md"))
}

func TestAdd_InteractiveCancelled(t *testing.T) {
	root := newProject(t)
	stdinIsTerminal = func() bool { return true }

	m := &mockPicker{}
	m.On("PickCategory", mock.Anything).Return("", prompt.ErrSelectionCancelled)
	picker = m

	_, err := execute(t, "", "add", "-p", "cursor")
	require.Error(t, err)
	assert.ErrorIs(t, err, prompt.ErrSelectionCancelled)
	m.AssertNotCalled(t, "PickItems", mock.Anything, mock.Anything)

	assert.NoDirExists(t, filepath.Join(root, ".cursor"))
}
