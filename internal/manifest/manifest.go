package manifest

import (
	"encoding/json"
	"io/fs"
	"maps"
	"slices"
	"strings"

	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/pkg/fileutil"
)

// ErrMissing is returned by Store.Load when no manifest file exists.
var ErrMissing = errors.New("manifest not found")

// Manifest records the active platform and the installed agent versions.
type Manifest struct {
	// Platform is the target the agents were installed for.
	Platform string `json:"platform"`

	// Agents maps agent ID to installed version.
	Agents map[string]string `json:"agents"`
}

// New returns an empty manifest for platform.
func New(platform string) *Manifest {
	return &Manifest{
		Platform: platform,
		Agents:   make(map[string]string),
	}
}

// Has reports whether id is installed.
func (m *Manifest) Has(id string) bool {
	_, ok := m.Agents[id]
	return ok
}

// Version returns the installed version of id.
func (m *Manifest) Version(id string) (string, bool) {
	v, ok := m.Agents[id]
	return v, ok
}

// Set records id as installed at version.
func (m *Manifest) Set(id, version string) {
	if m.Agents == nil {
		m.Agents = make(map[string]string)
	}
	m.Agents[id] = version
}

// Delete removes id. Deleting an absent id is a no-op.
func (m *Manifest) Delete(id string) {
	delete(m.Agents, id)
}

// IDs returns the installed agent IDs in lexical order.
func (m *Manifest) IDs() []string {
	return slices.Sorted(maps.Keys(m.Agents))
}

// Clone returns a deep copy of m.
func (m *Manifest) Clone() *Manifest {
	c := New(m.Platform)
	maps.Copy(c.Agents, m.Agents)
	return c
}

// Equal reports whether m and other record the same state.
func (m *Manifest) Equal(other *Manifest) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Platform == other.Platform && maps.Equal(m.Agents, other.Agents)
}

// Store reads and writes the manifest at one path.
type Store struct {
	path string
}

// NewStore returns a Store for the manifest file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the manifest file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the manifest. A missing file yields ErrMissing. Unparseable or
// schema-violating content yields an error classified as
// errors.ErrConfiguration.
func (s *Store) Load() (*Manifest, error) {
	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrMissing
		}
		return nil, errors.Filesystem(errors.Wrapf(err, "reading manifest %s", s.path))
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "manifest %s is malformed", s.path), errors.ErrConfiguration)
	}

	problems, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if len(problems) > 0 {
		return nil, errors.Configurationf("manifest %s is malformed: %s", s.path, strings.Join(problems, "; "))
	}

	if m.Agents == nil {
		m.Agents = make(map[string]string)
	}
	return &m, nil
}

// Save atomically replaces the manifest file with m. Missing parent
// directories are created. An unchanged manifest is not rewritten.
func (s *Store) Save(m *Manifest) error {
	if m == nil {
		return errors.New("manifest is nil")
	}

	out := m
	if out.Agents == nil {
		out = m.Clone()
	}

	data, err := fileutil.MarshalJSON(out)
	if err != nil {
		return errors.Wrap(err, "encoding manifest")
	}

	if _, err := fileutil.WriteFileIfChanged(s.path, data, 0o644); err != nil {
		return errors.Filesystem(errors.Wrapf(err, "writing manifest %s", s.path))
	}
	return nil
}
