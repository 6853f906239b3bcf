package platform

import (
	"io/fs"
	"os"
	"strings"

	"github.com/thoreinstein/blue-gardener/internal/catalog"
	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/paths"
	"github.com/thoreinstein/blue-gardener/pkg/fileutil"
)

// filePerm is applied to every generated file.
const filePerm = 0o644

// Adapter reads and writes agent outputs for one target under one project
// root.
type Adapter struct {
	spec Spec
	root string
}

// New returns an Adapter for t rooted at root.
func New(t Target, root string) (*Adapter, error) {
	spec, err := Lookup(t)
	if err != nil {
		return nil, err
	}
	if root == "" {
		return nil, errors.Configurationf("project root is required")
	}
	return &Adapter{spec: spec, root: root}, nil
}

// Spec returns the layout of the adapter's target.
func (a *Adapter) Spec() Spec {
	return a.spec
}

// Target returns the adapter's target.
func (a *Adapter) Target() Target {
	return a.spec.Target
}

// Root returns the project root.
func (a *Adapter) Root() string {
	return a.root
}

// ManifestPath returns where the manifest for this target lives.
func (a *Adapter) ManifestPath() string {
	return a.spec.ManifestPath(a.root)
}

// OutputPath returns the file holding agent id.
func (a *Adapter) OutputPath(id string) string {
	if a.spec.Cardinality == SingleFile {
		return paths.InstructionsPath(string(a.spec.Target), a.root)
	}
	return paths.AgentPath(string(a.spec.Target), a.root, id)
}

// Write installs def, replacing any previous output for the same id.
// It reports whether the file on disk changed.
func (a *Adapter) Write(def *catalog.AgentDefinition) (bool, error) {
	if def == nil || def.ID == "" {
		return false, errors.New("agent definition requires an id")
	}

	content, err := Render(a.spec.Dialect, def)
	if err != nil {
		return false, err
	}

	path := a.OutputPath(def.ID)
	if a.spec.Cardinality == SingleFile {
		doc, err := readDoc(path)
		if err != nil {
			return false, err
		}
		updated, err := UpsertSection(doc, def.ID, string(content))
		if err != nil {
			return false, errors.Wrapf(err, "updating %s", path)
		}
		content = []byte(updated)
	}

	changed, err := fileutil.WriteFileIfChanged(path, content, filePerm)
	if err != nil {
		return false, errors.Filesystem(errors.Wrapf(err, "writing %s", path))
	}
	return changed, nil
}

// Remove deletes the output for id. It reports whether anything was removed;
// a missing file or section is not an error. A shared instructions file left
// without content is deleted.
func (a *Adapter) Remove(id string) (bool, error) {
	path := a.OutputPath(id)
	if path == "" {
		return false, nil
	}

	if a.spec.Cardinality == MultiFile {
		err := os.Remove(path)
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, fs.ErrNotExist):
			return false, nil
		default:
			return false, errors.Filesystem(errors.Wrapf(err, "removing %s", path))
		}
	}

	doc, err := readDoc(path)
	if err != nil {
		return false, err
	}
	updated, found, err := RemoveSection(doc, id)
	if err != nil {
		return false, errors.Wrapf(err, "updating %s", path)
	}
	if !found {
		return false, nil
	}

	if updated == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return false, errors.Filesystem(errors.Wrapf(err, "removing %s", path))
		}
		return true, nil
	}

	if _, err := fileutil.WriteFileIfChanged(path, []byte(updated), filePerm); err != nil {
		return false, errors.Filesystem(errors.Wrapf(err, "writing %s", path))
	}
	return true, nil
}

// Installed lists the agent ids present on disk that follow the agent naming
// convention, in lexical order for multi-file targets and document order for
// single-file targets.
func (a *Adapter) Installed() ([]string, error) {
	if a.spec.Cardinality == SingleFile {
		path := a.OutputPath("")
		doc, err := readDoc(path)
		if err != nil {
			return nil, err
		}
		ids, err := SectionIDs(doc)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		out := ids[:0]
		for _, id := range ids {
			if catalog.ValidID(id) {
				out = append(out, id)
			}
		}
		return out, nil
	}

	dir := paths.AgentDir(string(a.spec.Target), a.root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Filesystem(errors.Wrapf(err, "reading %s", dir))
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".md")
		if catalog.ValidID(id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// readDoc returns the content of a shared instructions file, or "" when it
// does not exist yet.
func readDoc(path string) (string, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.Filesystem(errors.Wrapf(err, "reading %s", path))
	}
	return string(data), nil
}
