package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under XDG base directories.
const AppName = "blue-gardener"

// ManifestFilename is the name of the manifest file inside a platform's
// manifest directory.
const ManifestFilename = ".blue-generated-manifest.json"

// Platform identifiers for supported AI coding tools.
const (
	PlatformCursor   = "cursor"
	PlatformClaude   = "claude"
	PlatformCodex    = "codex"
	PlatformCopilot  = "copilot"
	PlatformWindsurf = "windsurf"
	PlatformOpenCode = "opencode"
)

// platformAgentDirs maps multi-file platforms to the directory holding one
// file per agent, relative to the project root.
var platformAgentDirs = map[string]string{
	PlatformCursor:   filepath.Join(".cursor", "agents"),
	PlatformClaude:   filepath.Join(".claude", "agents"),
	PlatformWindsurf: filepath.Join(".windsurf", "rules"),
	PlatformOpenCode: filepath.Join(".opencode", "agents"),
}

// platformInstructionFiles maps single-file platforms to the combined
// instructions file, relative to the project root.
var platformInstructionFiles = map[string]string{
	PlatformCodex:   "AGENTS.md",
	PlatformCopilot: filepath.Join(".github", "copilot-instructions.md"),
}

// platformManifestDirs maps platforms to the directory holding the manifest.
var platformManifestDirs = map[string]string{
	PlatformCursor:   filepath.Join(".cursor", "agents"),
	PlatformClaude:   filepath.Join(".claude", "agents"),
	PlatformCodex:    ".codex",
	PlatformCopilot:  ".github",
	PlatformWindsurf: filepath.Join(".windsurf", "rules"),
	PlatformOpenCode: filepath.Join(".opencode", "agents"),
}

// platformMarkers maps platforms to project-relative paths whose presence
// suggests the project already uses that tool.
var platformMarkers = map[string][]string{
	PlatformCursor:   {".cursor"},
	PlatformClaude:   {".claude", "CLAUDE.md"},
	PlatformCodex:    {".codex", "AGENTS.md"},
	PlatformCopilot:  {filepath.Join(".github", "copilot-instructions.md")},
	PlatformWindsurf: {".windsurf", ".windsurfrules"},
	PlatformOpenCode: {".opencode", "opencode.json"},
}

// ValidPlatform returns true if the platform name is recognized.
func ValidPlatform(platform string) bool {
	_, ok := platformManifestDirs[platform]
	return ok
}

// Platforms returns all supported platform identifiers in display order.
func Platforms() []string {
	return []string{
		PlatformCursor,
		PlatformClaude,
		PlatformCodex,
		PlatformCopilot,
		PlatformWindsurf,
		PlatformOpenCode,
	}
}

// IsSingleFile reports whether the platform combines all agents into one file.
func IsSingleFile(platform string) bool {
	_, ok := platformInstructionFiles[platform]
	return ok
}

// AgentDir returns the per-agent directory for a multi-file platform.
// Returns an empty string for single-file or unknown platforms, or an empty
// projectRoot.
func AgentDir(platform, projectRoot string) string {
	if projectRoot == "" {
		return ""
	}
	rel, ok := platformAgentDirs[platform]
	if !ok {
		return ""
	}
	return filepath.Join(projectRoot, rel)
}

// AgentPath returns the output file for one agent on a multi-file platform.
// Returns <AgentDir>/<id>.md, or an empty string if id or the directory is empty.
func AgentPath(platform, projectRoot, id string) string {
	if id == "" {
		return ""
	}
	dir := AgentDir(platform, projectRoot)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, id+".md")
}

// InstructionsPath returns the combined file for a single-file platform.
// Returns an empty string for multi-file or unknown platforms, or an empty
// projectRoot.
func InstructionsPath(platform, projectRoot string) string {
	if projectRoot == "" {
		return ""
	}
	rel, ok := platformInstructionFiles[platform]
	if !ok {
		return ""
	}
	return filepath.Join(projectRoot, rel)
}

// ManifestPath returns the manifest file location for a platform.
func ManifestPath(platform, projectRoot string) string {
	if projectRoot == "" {
		return ""
	}
	rel, ok := platformManifestDirs[platform]
	if !ok {
		return ""
	}
	return filepath.Join(projectRoot, rel, ManifestFilename)
}

// Markers returns the project-relative marker paths for a platform.
func Markers(platform string) []string {
	m := platformMarkers[platform]
	out := make([]string, len(m))
	copy(out, m)
	return out
}

// Destination returns the human-facing output location for a platform,
// relative to the project root: a directory for multi-file platforms and a
// file for single-file platforms.
func Destination(platform string) string {
	if rel, ok := platformAgentDirs[platform]; ok {
		return rel + string(filepath.Separator)
	}
	return platformInstructionFiles[platform]
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns blue-gardener's config directory: <ConfigHome>/blue-gardener.
// BLUE_GARDENER_CONFIG_DIR overrides it.
func ConfigDir() string {
	if dir := os.Getenv("BLUE_GARDENER_CONFIG_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// Exists reports whether path exists.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
