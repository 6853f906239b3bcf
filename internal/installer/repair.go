package installer

import (
	"context"

	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/logging"
	"github.com/thoreinstein/blue-gardener/internal/manifest"
)

// RepairOptions controls Repair.
type RepairOptions struct {
	// DryRun reports what would change without saving the manifest.
	DryRun bool

	// Prune drops manifest entries whose output no longer exists.
	Prune bool
}

// Repair rebuilds the manifest from the outputs on disk. Agents found on disk
// but missing from the manifest are recorded at their catalog version, or
// UnknownVersion when the catalog does not have them. An unreadable manifest
// is replaced. Repair never modifies or deletes agent outputs.
func (e *Engine) Repair(ctx context.Context, opts RepairOptions) (*Report, error) {
	log := logging.FromContext(ctx)
	report := e.newReport("repair")
	report.DryRun = opts.DryRun

	rebuilt := false
	m, err := e.loadManifest()
	if err != nil {
		if !errors.Is(err, errors.ErrConfiguration) {
			return nil, err
		}
		log.Warn("discarding unreadable manifest", "path", e.store.Path(), "error", err)
		m = manifest.New(string(e.adapter.Target()))
		rebuilt = true
	}

	onDisk, err := e.adapter.Installed()
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(onDisk))
	for _, id := range onDisk {
		if err := ctx.Err(); err != nil {
			return report, interrupted(err)
		}
		present[id] = struct{}{}
		if m.Has(id) {
			continue
		}

		version := UnknownVersion
		if def, err := e.catalog.Get(id); err == nil {
			version = def.Version
		}
		log.Debug("recovered agent", "id", id, "version", version)

		m.Set(id, version)
		report.add(ItemResult{ID: id, Action: ActionAdded, Version: version, Path: e.adapter.OutputPath(id)})
	}

	if opts.Prune {
		for _, id := range m.IDs() {
			if _, ok := present[id]; ok {
				continue
			}
			v, _ := m.Version(id)
			log.Debug("pruning missing agent", "id", id)
			m.Delete(id)
			report.add(ItemResult{ID: id, Action: ActionRemoved, Version: v})
		}
	}

	if opts.DryRun || (len(report.Items) == 0 && !rebuilt) {
		return report, nil
	}

	if err := e.store.Save(m); err != nil {
		return report, err
	}
	return report, nil
}
