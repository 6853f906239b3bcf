// Package platform maps agent definitions onto the file layout each AI
// coding tool expects.
//
// Every supported tool is a [Target] described by a row in a fixed table
// ([Lookup]): where agents go, whether each agent gets its own file or all
// agents share one instructions file, where the manifest lives and which
// frontmatter dialect multi-file outputs use.
//
// # Multi-file targets
//
// cursor, claude, windsurf and opencode receive one markdown file per agent
// at <dir>/<agent-id>.md. The catalog frontmatter is rewritten to the tool's
// dialect and the body is copied unchanged.
//
// # Single-file targets
//
// codex (AGENTS.md) and copilot (.github/copilot-instructions.md) receive one
// delimited section per agent:
//
//	<!-- blue-gardener:begin blue-react-developer -->
//	## Blue React Developer
//
//	<body>
//
//	---
//	<!-- blue-gardener:end blue-react-developer -->
//
// Sections are replaced or spliced out by their markers. Text outside any
// section is left untouched.
//
// # Detection
//
// [Detect] reports which targets a project already uses, based on an
// existing manifest or the tool's own marker files.
package platform
