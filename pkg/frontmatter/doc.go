// Package frontmatter parses and formats YAML frontmatter in the markdown
// files that make up the agent catalog.
//
// Frontmatter is delimited by lines containing only "---" at the start and end.
// The content between delimiters is unmarshaled into the caller's value; the
// content after the closing delimiter is returned as the body.
//
//	var meta struct {
//		Name     string   `yaml:"name"`
//		Category string   `yaml:"category"`
//		Tags     []string `yaml:"tags"`
//	}
//	body, err := frontmatter.MustParse(r, &meta)
//
// Both LF and CRLF line endings are accepted. A "---" line inside the body
// is ordinary text.
package frontmatter
