package platform

import (
	"strings"

	"github.com/thoreinstein/blue-gardener/internal/errors"
)

const (
	beginPrefix  = "<!-- blue-gardener:begin "
	endPrefix    = "<!-- blue-gardener:end "
	markerSuffix = " -->"
)

// ErrMalformedSection is returned when section markers in an instructions
// file do not pair up.
var ErrMalformedSection = errors.New("malformed section markers")

// span is the byte range of one section, including the newline after its
// end marker.
type span struct {
	id         string
	start, end int
}

func parseMarker(line, prefix string) (string, bool) {
	line = strings.TrimSpace(line)
	if len(line) <= len(prefix)+len(markerSuffix) {
		return "", false
	}
	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, markerSuffix) {
		return "", false
	}
	return line[len(prefix) : len(line)-len(markerSuffix)], true
}

func malformed(format string, args ...any) error {
	return errors.Mark(errors.Wrapf(ErrMalformedSection, format, args...), errors.ErrConfiguration)
}

// findSpans locates every section in doc, in document order.
func findSpans(doc string) ([]span, error) {
	var (
		spans []span
		open  *span
		seen  = make(map[string]bool)
	)

	for offset := 0; offset < len(doc); {
		lineEnd, next := len(doc), len(doc)
		if nl := strings.IndexByte(doc[offset:], '\n'); nl >= 0 {
			lineEnd = offset + nl
			next = lineEnd + 1
		}
		line := doc[offset:lineEnd]

		if id, ok := parseMarker(line, beginPrefix); ok {
			if open != nil {
				return nil, malformed("section %q is not terminated before %q begins", open.id, id)
			}
			if seen[id] {
				return nil, malformed("section %q appears twice", id)
			}
			seen[id] = true
			open = &span{id: id, start: offset}
		} else if id, ok := parseMarker(line, endPrefix); ok {
			if open == nil || open.id != id {
				return nil, malformed("end marker for %q has no matching begin", id)
			}
			open.end = next
			spans = append(spans, *open)
			open = nil
		}

		offset = next
	}

	if open != nil {
		return nil, malformed("section %q is not terminated", open.id)
	}
	return spans, nil
}

// SectionIDs returns the ids of every section in doc, in document order.
func SectionIDs(doc string) ([]string, error) {
	spans, err := findSpans(doc)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(spans))
	for _, s := range spans {
		ids = append(ids, s.id)
	}
	return ids, nil
}

// UpsertSection replaces the section for id with block, or appends block.
// An appended block follows a blank line, or a single newline when doc does
// not end in one, so RemoveSection can restore doc byte for byte.
func UpsertSection(doc, id, block string) (string, error) {
	spans, err := findSpans(doc)
	if err != nil {
		return "", err
	}

	for _, s := range spans {
		if s.id == id {
			return doc[:s.start] + block + doc[s.end:], nil
		}
	}

	if doc == "" {
		return block, nil
	}
	return doc + "\n" + block, nil
}

// RemoveSection splices the section for id out of doc together with the
// separator UpsertSection put before it. It reports whether a section was
// found.
func RemoveSection(doc, id string) (string, bool, error) {
	spans, err := findSpans(doc)
	if err != nil {
		return "", false, err
	}

	for _, s := range spans {
		if s.id != id {
			continue
		}
		before, after := doc[:s.start], doc[s.end:]
		if before == "" {
			after = strings.TrimPrefix(after, "\n")
		} else {
			// before ends in the separator newline, plus the newline that
			// terminated doc when there was one
			before = before[:len(before)-1]
		}
		return before + after, true, nil
	}

	return doc, false, nil
}
