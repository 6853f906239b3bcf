package platform

import (
	"strings"

	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/paths"
)

// Target identifies a supported AI coding tool.
type Target string

// Supported targets.
const (
	Cursor   Target = paths.PlatformCursor
	Claude   Target = paths.PlatformClaude
	Codex    Target = paths.PlatformCodex
	Copilot  Target = paths.PlatformCopilot
	Windsurf Target = paths.PlatformWindsurf
	OpenCode Target = paths.PlatformOpenCode
)

// String returns the target identifier.
func (t Target) String() string {
	return string(t)
}

// Cardinality describes how agents map onto output files.
type Cardinality int

const (
	// MultiFile writes one file per agent.
	MultiFile Cardinality = iota
	// SingleFile writes every agent as a section of one shared file.
	SingleFile
)

func (c Cardinality) String() string {
	if c == SingleFile {
		return "single-file"
	}
	return "multi-file"
}

// Dialect selects the frontmatter written into multi-file outputs.
type Dialect int

const (
	// DialectAgent writes name and description.
	DialectAgent Dialect = iota
	// DialectCascadeRule writes a Windsurf rule header (trigger, description).
	DialectCascadeRule
	// DialectSubagent writes an OpenCode subagent header (description, mode).
	DialectSubagent
	// DialectSection renders a delimited section instead of a file.
	DialectSection
)

// Spec is the layout of one target.
type Spec struct {
	Target      Target
	Label       string
	Cardinality Cardinality
	Dialect     Dialect
}

var specs = map[Target]Spec{
	Cursor:   {Target: Cursor, Label: "Cursor", Cardinality: MultiFile, Dialect: DialectAgent},
	Claude:   {Target: Claude, Label: "Claude", Cardinality: MultiFile, Dialect: DialectAgent},
	Codex:    {Target: Codex, Label: "Codex", Cardinality: SingleFile, Dialect: DialectSection},
	Copilot:  {Target: Copilot, Label: "GitHub Copilot", Cardinality: SingleFile, Dialect: DialectSection},
	Windsurf: {Target: Windsurf, Label: "Windsurf", Cardinality: MultiFile, Dialect: DialectCascadeRule},
	OpenCode: {Target: OpenCode, Label: "OpenCode", Cardinality: MultiFile, Dialect: DialectSubagent},
}

// All returns every target in display order.
func All() []Target {
	names := paths.Platforms()
	out := make([]Target, len(names))
	for i, n := range names {
		out[i] = Target(n)
	}
	return out
}

// Parse converts a platform name into a Target.
// Unknown names yield an error classified as errors.ErrConfiguration.
func Parse(name string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := specs[t]; !ok {
		return "", errors.Configurationf("unknown platform %q (valid: %s)", name, strings.Join(paths.Platforms(), ", "))
	}
	return t, nil
}

// Lookup returns the layout of t.
func Lookup(t Target) (Spec, error) {
	s, ok := specs[t]
	if !ok {
		return Spec{}, errors.Configurationf("unknown platform %q", string(t))
	}
	return s, nil
}

// Destination returns the project-relative output location of t.
func (s Spec) Destination() string {
	return paths.Destination(string(s.Target))
}

// ManifestPath returns the manifest location of t under root.
func (s Spec) ManifestPath(root string) string {
	return paths.ManifestPath(string(s.Target), root)
}
