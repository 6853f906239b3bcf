// Package catalog loads agent definitions from a catalog tree.
//
// A catalog is any fs.FS laid out as <category>/<agent-id>.md, where each
// file carries YAML frontmatter:
//
//	---
//	name: blue-react-developer
//	description: Builds accessible React components.
//	category: development
//	tags: [react, typescript]
//	version: 1.5.0
//	---
//
// The bundled catalog is available through Embedded. A directory on disk can
// replace it through FromDir.
package catalog
