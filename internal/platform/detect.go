package platform

import (
	"path/filepath"

	"github.com/thoreinstein/blue-gardener/internal/paths"
)

// Detection describes the evidence that a project uses a target.
type Detection struct {
	// Target is the detected tool.
	Target Target

	// Manifest is true when a blue-gardener manifest exists for Target.
	Manifest bool

	// Markers lists the project-relative marker paths that exist.
	Markers []string
}

// Detect inspects root and returns every target with a manifest or at least
// one marker present, in display order.
func Detect(root string) []Detection {
	var results []Detection

	for _, t := range All() {
		d := Detection{
			Target:   t,
			Manifest: paths.Exists(paths.ManifestPath(string(t), root)),
		}
		for _, m := range paths.Markers(string(t)) {
			if paths.Exists(filepath.Join(root, m)) {
				d.Markers = append(d.Markers, m)
			}
		}
		if d.Manifest || len(d.Markers) > 0 {
			results = append(results, d)
		}
	}

	return results
}

// Candidates narrows Detect down to the targets worth offering: those with a
// manifest when any exists, otherwise those with markers.
func Candidates(root string) []Target {
	detected := Detect(root)

	var withManifest, withMarkers []Target
	for _, d := range detected {
		if d.Manifest {
			withManifest = append(withManifest, d.Target)
		}
		withMarkers = append(withMarkers, d.Target)
	}

	if len(withManifest) > 0 {
		return withManifest
	}
	return withMarkers
}
