// Package agents bundles the agent catalog shipped with blue-gardener.
package agents

import "embed"

// Version is the catalog release recorded for agents that do not declare
// their own version in frontmatter.
const Version = "1.4.0"

// Root is the directory inside FS that holds the category directories.
const Root = "catalog"

// FS holds the bundled catalog laid out as catalog/<category>/<agent-id>.md.
//
//go:embed catalog
var FS embed.FS
