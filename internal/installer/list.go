package installer

import (
	"context"

	"github.com/thoreinstein/blue-gardener/internal/catalog"
	"github.com/thoreinstein/blue-gardener/internal/manifest"
)

// Entry is one row of List: a catalog agent with its install state, or an
// orphaned manifest entry the catalog no longer provides.
type Entry struct {
	ID               string   `json:"id" yaml:"id" toml:"id"`
	Name             string   `json:"name" yaml:"name" toml:"name"`
	Category         string   `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Description      string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Tags             []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	Version          string   `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Installed        bool     `json:"installed" yaml:"installed" toml:"installed"`
	InstalledVersion string   `json:"installed_version,omitempty" yaml:"installed_version,omitempty" toml:"installed_version,omitempty"`
	Outdated         bool     `json:"outdated,omitempty" yaml:"outdated,omitempty" toml:"outdated,omitempty"`
	Orphaned         bool     `json:"orphaned,omitempty" yaml:"orphaned,omitempty" toml:"orphaned,omitempty"`
}

// List cross-references the catalog with the manifest. Catalog agents come
// first in catalog order, followed by orphaned manifest entries. It never
// writes to disk.
func (e *Engine) List(ctx context.Context) ([]Entry, error) {
	m, err := e.loadManifest()
	if err != nil {
		return nil, err
	}
	return Entries(e.catalog, m), ctx.Err()
}

// Entries builds List rows from cat and m. A nil manifest marks nothing
// installed.
func Entries(cat catalog.Catalog, m *manifest.Manifest) []Entry {
	if m == nil {
		m = &manifest.Manifest{}
	}

	agents := cat.List()
	entries := make([]Entry, 0, len(agents))
	known := make(map[string]struct{}, len(agents))

	for _, def := range agents {
		known[def.ID] = struct{}{}
		entry := Entry{
			ID:          def.ID,
			Name:        def.DisplayName(),
			Category:    def.Category,
			Description: def.Description,
			Tags:        def.Tags,
			Version:     def.Version,
		}
		if v, ok := m.Version(def.ID); ok {
			entry.Installed = true
			entry.InstalledVersion = v
			entry.Outdated = v != def.Version
		}
		entries = append(entries, entry)
	}

	for _, id := range m.IDs() {
		if _, ok := known[id]; ok {
			continue
		}
		v, _ := m.Version(id)
		entries = append(entries, Entry{
			ID:               id,
			Name:             id,
			Installed:        true,
			InstalledVersion: v,
			Orphaned:         true,
		})
	}

	return entries
}
