package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/blue-gardener/internal/installer"
)

func findListEntry(entries []installer.Entry, id string) *installer.Entry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

func TestList_Formats(t *testing.T) {
	newProject(t)

	_, err := execute(t, "", "add", "blue-go-developer", "-p", "cursor")
	require.NoError(t, err)

	decoders := map[string]func([]byte, any) error{
		"json": json.Unmarshal,
		"yaml": yaml.Unmarshal,
		"toml": toml.Unmarshal,
	}

	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			out, err := execute(t, "", "list", "-o", format)
			require.NoError(t, err)

			var result listResult
			require.NoError(t, decode([]byte(out), &result), out)

			assert.Equal(t, "cursor", result.Platform)
			assert.NotEmpty(t, result.CatalogVersion)

			installed := findListEntry(result.Agents, "blue-go-developer")
			require.NotNil(t, installed)
			assert.True(t, installed.Installed)
			assert.Equal(t, installed.Version, installed.InstalledVersion)
			assert.False(t, installed.Outdated)

			other := findListEntry(result.Agents, "blue-react-developer")
			require.NotNil(t, other)
			assert.False(t, other.Installed)
		})
	}
}

func TestList_Filters(t *testing.T) {
	newProject(t)

	_, err := execute(t, "", "add", "blue-go-developer", "blue-code-reviewer", "-p", "claude")
	require.NoError(t, err)

	out, err := execute(t, "", "list", "--installed", "-o", "json")
	require.NoError(t, err)
	var result listResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Agents, 2)

	out, err = execute(t, "", "list", "--installed", "--category", "quality", "-o", "json")
	require.NoError(t, err)
	result = listResult{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Agents, 1)
	assert.Equal(t, "blue-code-reviewer", result.Agents[0].ID)
}

func TestList_Text(t *testing.T) {
	root := newProject(t)

	_, err := execute(t, "", "add", "blue-go-developer", "-p", "cursor")
	require.NoError(t, err)

	// An entry the catalog does not know shows up as orphaned.
	m := readManifest(t, "cursor", root)
	m.Set("blue-retired-agent", "0.9.0")
	writeManifest(t, "cursor", root, m)

	out, err := execute(t, "", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "Platform: Cursor (.cursor/agents/)")
	assert.Contains(t, out, "Development\n")
	assert.Contains(t, out, "Orphaned (not in catalog)\n")
	assert.Regexp(t, `blue-go-developer\s+\S+\s+installed`, out)
	assert.Regexp(t, `blue-retired-agent\s+0\.9\.0\s+orphaned`, out)
	assert.Greater(t, strings.Index(out, "Orphaned"), strings.Index(out, "Blockchain"))
}

func TestList_NoPlatform(t *testing.T) {
	newProject(t)

	out, err := execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "none detected")
	assert.Contains(t, out, "blue-react-developer")
	assert.NotContains(t, out, "installed")
}

func TestList_InvalidFlags(t *testing.T) {
	newProject(t)

	_, err := execute(t, "", "list", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)

	_, err = execute(t, "", "list", "--category", "marketing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category "marketing"`)
}
