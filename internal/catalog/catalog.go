package catalog

import (
	"bytes"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/thoreinstein/blue-gardener/agents"
	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/pkg/frontmatter"
)

// Catalog is the read-only collection of agents the installer draws from.
type Catalog interface {
	// List returns every agent ordered by category, then ID.
	List() []*AgentDefinition

	// Get returns the agent with the given ID.
	// Unknown IDs yield an error classified as errors.ErrNotFound.
	Get(id string) (*AgentDefinition, error)

	// Categories returns the categories that contain at least one agent,
	// in display order.
	Categories() []string

	// Version is the catalog release.
	Version() string
}

// FSCatalog is a Catalog backed by an fs.FS.
type FSCatalog struct {
	version string
	agents  []*AgentDefinition
	byID    map[string]*AgentDefinition
}

var _ Catalog = (*FSCatalog)(nil)

// ErrSectionMarker reports an agent body with a line that single-file targets
// would read as a section boundary.
var ErrSectionMarker = errors.New("body contains a blue-gardener section marker line")

// Embedded loads the catalog compiled into the binary.
func Embedded() (*FSCatalog, error) {
	sub, err := fs.Sub(agents.FS, agents.Root)
	if err != nil {
		return nil, errors.Wrap(err, "opening bundled catalog")
	}
	return Load(sub, agents.Version)
}

// FromDir loads a catalog from a directory on disk. Agents without their own
// version are recorded at the bundled catalog version.
func FromDir(dir string) (*FSCatalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "opening catalog directory"), errors.ErrConfiguration)
	}
	if !info.IsDir() {
		return nil, errors.Configurationf("catalog path %s is not a directory", dir)
	}
	return Load(os.DirFS(dir), agents.Version)
}

// Load reads every agent in fsys. The first invalid file aborts loading with
// an error naming the file.
func Load(fsys fs.FS, version string) (*FSCatalog, error) {
	entries, err := Scan(fsys)
	if err != nil {
		return nil, err
	}

	c := &FSCatalog{
		version: version,
		byID:    make(map[string]*AgentDefinition, len(entries)),
	}
	for _, e := range entries {
		if e.Err != nil {
			return nil, errors.Mark(errors.Wrapf(e.Err, "loading %s", e.Path), errors.ErrConfiguration)
		}
		def := e.Agent
		if prev, ok := c.byID[def.ID]; ok {
			return nil, errors.Configurationf("duplicate agent %q in %s and %s", def.ID, prev.Path, def.Path)
		}
		if def.Version == "" {
			def.Version = version
		}
		c.byID[def.ID] = def
		c.agents = append(c.agents, def)
	}

	sort.SliceStable(c.agents, func(i, j int) bool {
		a, b := c.agents[i], c.agents[j]
		if a.Category != b.Category {
			return categoryIndex(a.Category) < categoryIndex(b.Category)
		}
		return a.ID < b.ID
	})

	return c, nil
}

// List returns every agent ordered by category, then ID.
func (c *FSCatalog) List() []*AgentDefinition {
	out := make([]*AgentDefinition, len(c.agents))
	copy(out, c.agents)
	return out
}

// Get returns the agent with the given ID.
func (c *FSCatalog) Get(id string) (*AgentDefinition, error) {
	def, ok := c.byID[id]
	if !ok {
		return nil, errors.NotFoundf("agent %q not found in catalog", id)
	}
	return def, nil
}

// Categories returns the non-empty categories in display order.
func (c *FSCatalog) Categories() []string {
	var out []string
	for _, cat := range categoryOrder {
		for _, a := range c.agents {
			if a.Category == cat {
				out = append(out, cat)
				break
			}
		}
	}
	return out
}

// Version is the catalog release.
func (c *FSCatalog) Version() string {
	return c.version
}

// InCategory filters agents down to a single category, keeping order.
func InCategory(list []*AgentDefinition, category string) []*AgentDefinition {
	var out []*AgentDefinition
	for _, a := range list {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// Entry is one catalog file and the result of parsing it.
type Entry struct {
	// Path is the file location inside the catalog tree.
	Path string
	// Agent is the parsed definition. Nil when Err is set.
	Agent *AgentDefinition
	// Err describes why the file is not a valid agent.
	Err error
}

// Scan walks fsys and parses every <category>/<id>.md file. Per-file problems
// are reported in Entry.Err; the returned error covers only walk failures.
// Files at the top level and in deeper directories are ignored.
func Scan(fsys fs.FS) ([]Entry, error) {
	var entries []Entry

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.Count(p, "/") >= 1 {
				return fs.SkipDir
			}
			return nil
		}
		if path.Ext(p) != ".md" || strings.Count(p, "/") != 1 {
			return nil
		}

		def, perr := parseFile(fsys, p)
		entries = append(entries, Entry{Path: p, Agent: def, Err: perr})
		return nil
	})
	if err != nil {
		return nil, errors.Filesystem(errors.Wrap(err, "scanning catalog"))
	}

	return entries, nil
}

func parseFile(fsys fs.FS, p string) (*AgentDefinition, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, errors.Filesystem(err)
	}

	var h header
	body, err := frontmatter.MustParse(bytes.NewReader(data), &h)
	if err != nil {
		return nil, err
	}

	dir := path.Dir(p)
	stem := strings.TrimSuffix(path.Base(p), ".md")

	switch {
	case h.Name == "":
		return nil, errors.New("name is required")
	case h.Name != stem:
		return nil, errors.Newf("name %q does not match file name %q", h.Name, stem)
	case !ValidID(h.Name):
		return nil, errors.Newf("name %q does not match the blue-<kebab-case> convention", h.Name)
	case !ValidCategory(dir):
		return nil, errors.Newf("unknown category directory %q", dir)
	case h.Category != "" && h.Category != dir:
		return nil, errors.Newf("category %q does not match directory %q", h.Category, dir)
	case hasSectionMarker(string(body)):
		return nil, ErrSectionMarker
	}

	return &AgentDefinition{
		ID:          h.Name,
		Description: strings.TrimSpace(h.Description),
		Category:    dir,
		Tags:        h.Tags,
		Version:     h.Version,
		Title:       h.Title,
		Body:        strings.TrimSpace(string(body)),
		Path:        p,
	}, nil
}

// hasSectionMarker reports whether any line of body would be read back as the
// begin or end of an installed section.
func hasSectionMarker(body string) bool {
	for line := range strings.SplitSeq(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "<!-- blue-gardener:begin ") || strings.HasPrefix(line, "<!-- blue-gardener:end ") {
			return true
		}
	}
	return false
}
