// Package paths provides path resolution for the project directories each
// supported AI coding tool reads agents from, plus the XDG locations used for
// blue-gardener's own configuration.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance.
//
// # Platform Layouts
//
// All agent destinations are relative to a project root:
//
//	| Platform | Agent output                      | Manifest directory |
//	|----------|-----------------------------------|--------------------|
//	| cursor   | .cursor/agents/<id>.md            | .cursor/agents/    |
//	| claude   | .claude/agents/<id>.md            | .claude/agents/    |
//	| codex    | AGENTS.md                         | .codex/            |
//	| copilot  | .github/copilot-instructions.md   | .github/           |
//	| windsurf | .windsurf/rules/<id>.md           | .windsurf/rules/   |
//	| opencode | .opencode/agents/<id>.md          | .opencode/agents/  |
//
// Functions that accept a platform parameter return empty strings for
// unknown platforms. Use [ValidPlatform] to check validity before calling.
package paths
