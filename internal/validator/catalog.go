package validator

import (
	"io/fs"
	"regexp"
	"strings"

	"github.com/thoreinstein/blue-gardener/internal/catalog"
	"github.com/thoreinstein/blue-gardener/internal/errors"
)

// maxDescriptionLen is the longest description that still fits a picker row.
const maxDescriptionLen = 160

var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

// Options controls CheckCatalog.
type Options struct {
	// Strict adds warnings for optional fields and style.
	Strict bool
}

// CheckCatalog inspects every agent file in fsys. The returned error covers
// only failures to read the tree; problems with individual files are issues
// in the Result.
func CheckCatalog(fsys fs.FS, opts Options) (*Result, error) {
	entries, err := catalog.Scan(fsys)
	if err != nil {
		return nil, err
	}

	result := &Result{Checked: len(entries)}
	seen := make(map[string]string, len(entries))

	for _, e := range entries {
		if e.Err != nil {
			field := ""
			if errors.Is(e.Err, catalog.ErrSectionMarker) {
				field = "body"
			}
			result.AddError(e.Path, field, e.Err.Error(), nil)
			continue
		}

		def := e.Agent
		if first, ok := seen[def.ID]; ok {
			result.AddError(e.Path, "name", "duplicate agent id, first defined in "+first, def.ID)
			continue
		}
		seen[def.ID] = e.Path

		checkAgent(result, def, opts)
	}

	if len(entries) == 0 {
		result.AddWarning("", "", "no agent files found", nil)
	}

	return result, nil
}

func checkAgent(result *Result, def *catalog.AgentDefinition, opts Options) {
	file := def.Path

	if def.Description == "" {
		result.AddError(file, "description", "description is required", nil)
	} else if opts.Strict && len(def.Description) > maxDescriptionLen {
		result.AddWarning(file, "description", "description is longer than 160 characters", len(def.Description))
	}

	if def.Body == "" {
		result.AddError(file, "body", "agent body is empty", nil)
	}

	if def.Version != "" && !semverPattern.MatchString(def.Version) {
		result.AddWarning(file, "version", "version should be semantic (MAJOR.MINOR.PATCH)", def.Version)
	}

	if len(def.Tags) == 0 {
		result.AddWarning(file, "tags", "tags are recommended for discoverability", nil)
	}

	if opts.Strict {
		for _, tag := range def.Tags {
			if tag != strings.ToLower(tag) || strings.ContainsAny(tag, " \t") {
				result.AddWarning(file, "tags", "tags should be lowercase without spaces", tag)
			}
		}
	}
}

