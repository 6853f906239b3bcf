package installer

import (
	"context"

	"github.com/thoreinstein/blue-gardener/internal/catalog"
	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/logging"
	"github.com/thoreinstein/blue-gardener/internal/manifest"
	"github.com/thoreinstein/blue-gardener/internal/platform"
)

// UnknownVersion is recorded by Repair for agents found on disk that the
// catalog does not know.
const UnknownVersion = "unknown"

// Engine applies catalog agents to one project for one platform.
type Engine struct {
	catalog catalog.Catalog
	adapter *platform.Adapter
	store   *manifest.Store
}

// New returns an Engine writing agents from cat through adapter. The manifest
// lives at the adapter's manifest path.
func New(cat catalog.Catalog, adapter *platform.Adapter) *Engine {
	return &Engine{
		catalog: cat,
		adapter: adapter,
		store:   manifest.NewStore(adapter.ManifestPath()),
	}
}

// Target returns the platform the engine writes for.
func (e *Engine) Target() platform.Target {
	return e.adapter.Target()
}

// Root returns the project root.
func (e *Engine) Root() string {
	return e.adapter.Root()
}

// ManifestPath returns the manifest location.
func (e *Engine) ManifestPath() string {
	return e.store.Path()
}

func (e *Engine) newReport(op string) *Report {
	return &Report{
		Operation: op,
		Platform:  e.adapter.Target(),
		Manifest:  e.store.Path(),
	}
}

// loadManifest returns the current manifest, or a fresh one when none exists.
func (e *Engine) loadManifest() (*manifest.Manifest, error) {
	m, err := e.store.Load()
	if errors.Is(err, manifest.ErrMissing) {
		return manifest.New(string(e.adapter.Target())), nil
	}
	if err != nil {
		return nil, err
	}
	if m.Platform != string(e.adapter.Target()) {
		return nil, errors.Configurationf("manifest %s records platform %q, not %q", e.store.Path(), m.Platform, e.adapter.Target())
	}
	return m, nil
}

func interrupted(err error) error {
	return errors.Wrap(err, "interrupted")
}

// dedupe drops repeated IDs, keeping first occurrences in order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Installed returns the IDs recorded in the manifest.
func (e *Engine) Installed(ctx context.Context) ([]string, error) {
	m, err := e.loadManifest()
	if err != nil {
		return nil, err
	}
	ids := m.IDs()
	logging.FromContext(ctx).Debug("loaded manifest", "path", e.store.Path(), "agents", len(ids))
	return ids, nil
}

// Add installs ids. Unknown IDs fail with an error classified as
// errors.ErrNotFound and the remaining IDs are still processed.
func (e *Engine) Add(ctx context.Context, ids []string) (*Report, error) {
	log := logging.FromContext(ctx)
	report := e.newReport("add")

	m, err := e.loadManifest()
	if err != nil {
		return nil, err
	}

	for _, id := range dedupe(ids) {
		if err := ctx.Err(); err != nil {
			return report, interrupted(err)
		}

		def, err := e.catalog.Get(id)
		if err != nil {
			log.Debug("agent not in catalog", "id", id)
			report.fail(id, err)
			continue
		}

		report.add(e.apply(ctx, m, def))
	}

	return report, nil
}

// Sync rewrites every installed agent with the catalog's current content.
// Installed IDs missing from the catalog fail and stay in the manifest.
func (e *Engine) Sync(ctx context.Context) (*Report, error) {
	log := logging.FromContext(ctx)
	report := e.newReport("sync")

	m, err := e.loadManifest()
	if err != nil {
		return nil, err
	}

	for _, id := range m.IDs() {
		if err := ctx.Err(); err != nil {
			return report, interrupted(err)
		}

		def, err := e.catalog.Get(id)
		if err != nil {
			log.Debug("installed agent no longer in catalog", "id", id)
			report.fail(id, err)
			continue
		}

		report.add(e.apply(ctx, m, def))
	}

	return report, nil
}

// apply writes def and records it in m, saving the manifest when the
// recorded version changes.
func (e *Engine) apply(ctx context.Context, m *manifest.Manifest, def *catalog.AgentDefinition) ItemResult {
	log := logging.FromContext(ctx)
	path := e.adapter.OutputPath(def.ID)
	item := ItemResult{ID: def.ID, Version: def.Version, Path: path}

	changed, err := e.adapter.Write(def)
	if err != nil {
		item.Action, item.Err = ActionFailed, err
		return item
	}

	prev, had := m.Version(def.ID)
	switch {
	case !had:
		item.Action = ActionAdded
	case changed || prev != def.Version:
		item.Action = ActionUpdated
	default:
		item.Action = ActionUnchanged
	}
	log.Debug("wrote agent", "id", def.ID, "path", path, "changed", changed, "action", item.Action)

	if had && prev == def.Version {
		return item
	}

	m.Set(def.ID, def.Version)
	if err := e.store.Save(m); err != nil {
		if had {
			m.Set(def.ID, prev)
		} else {
			m.Delete(def.ID)
		}
		item.Action, item.Err = ActionFailed, err
	}
	return item
}

// Remove deletes the outputs for ids and drops them from the manifest.
// IDs that are not installed are skipped without touching any file.
func (e *Engine) Remove(ctx context.Context, ids []string) (*Report, error) {
	log := logging.FromContext(ctx)
	report := e.newReport("remove")

	m, err := e.loadManifest()
	if err != nil {
		return nil, err
	}

	for _, id := range dedupe(ids) {
		if err := ctx.Err(); err != nil {
			return report, interrupted(err)
		}

		prev, had := m.Version(id)
		if !had {
			log.Debug("agent not installed", "id", id)
			report.add(ItemResult{ID: id, Action: ActionSkipped})
			continue
		}

		path := e.adapter.OutputPath(id)
		removed, err := e.adapter.Remove(id)
		if err != nil {
			report.fail(id, err)
			continue
		}
		log.Debug("removed agent output", "id", id, "path", path, "found", removed)

		m.Delete(id)
		if err := e.store.Save(m); err != nil {
			m.Set(id, prev)
			report.fail(id, err)
			continue
		}
		report.add(ItemResult{ID: id, Action: ActionRemoved, Version: prev, Path: path})
	}

	return report, nil
}
