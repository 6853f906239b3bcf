package installer

import (
	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/platform"
)

// Action is the outcome of one item in a batch operation.
type Action string

// Item outcomes.
const (
	ActionAdded     Action = "added"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
	ActionRemoved   Action = "removed"
	ActionSkipped   Action = "skipped"
	ActionFailed    Action = "failed"
)

// ItemResult is the outcome for one agent ID.
type ItemResult struct {
	ID      string `json:"id"`
	Action  Action `json:"action"`
	Version string `json:"version,omitempty"`
	Path    string `json:"path,omitempty"`
	Err     error  `json:"-"`
}

// Report collects the per-item outcomes of one operation.
type Report struct {
	Operation string          `json:"operation"`
	Platform  platform.Target `json:"platform"`
	Manifest  string          `json:"manifest"`
	DryRun    bool            `json:"dry_run,omitempty"`
	Items     []ItemResult    `json:"items"`
}

func (r *Report) add(item ItemResult) {
	r.Items = append(r.Items, item)
}

func (r *Report) fail(id string, err error) {
	r.Items = append(r.Items, ItemResult{ID: id, Action: ActionFailed, Err: err})
}

// Failed returns the items that failed.
func (r *Report) Failed() []ItemResult {
	var out []ItemResult
	for _, item := range r.Items {
		if item.Action == ActionFailed {
			out = append(out, item)
		}
	}
	return out
}

// Count returns how many items ended with action a.
func (r *Report) Count(a Action) int {
	n := 0
	for _, item := range r.Items {
		if item.Action == a {
			n++
		}
	}
	return n
}

// Err summarizes failed items as a single error, or returns nil when every
// item succeeded. A lone failure is returned with its ID prefixed. Several
// failures are summarized and classified by the most severe cause:
// filesystem, then configuration, then not found.
func (r *Report) Err() error {
	failed := r.Failed()
	switch len(failed) {
	case 0:
		return nil
	case 1:
		return errors.Wrap(failed[0].Err, failed[0].ID)
	}

	err := errors.Newf("%d of %d agents failed", len(failed), len(r.Items))
	for _, class := range []error{errors.ErrFilesystem, errors.ErrConfiguration, errors.ErrNotFound} {
		for _, item := range failed {
			if errors.Is(item.Err, class) {
				return errors.Mark(err, class)
			}
		}
	}
	return err
}
