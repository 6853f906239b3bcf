package validator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Severity ranks an Issue. Only errors fail validation.
type Severity int

// Severities, most severe first.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

var severityNames = [...]string{"error", "warning", "info"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	i := slices.Index(severityNames[:], string(text))
	if i < 0 {
		return fmt.Errorf("unknown severity %q", text)
	}
	*s = Severity(i)
	return nil
}

// Issue is one problem found in a catalog file.
type Issue struct {
	Severity Severity `json:"severity"`
	// File is the catalog-relative path; empty for catalog-wide issues.
	File    string `json:"file,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	// Value echoes the offending front-matter value, if any.
	Value any `json:"value,omitempty"`
}

// Error renders the issue as "file: severity: field "f": message (got v)",
// omitting the parts that are empty.
func (i Issue) Error() string {
	parts := make([]string, 0, 4)
	if i.File != "" {
		parts = append(parts, i.File)
	}
	parts = append(parts, i.Severity.String())
	if i.Field != "" {
		parts = append(parts, "field "+strconv.Quote(i.Field))
	}
	msg := i.Message
	if i.Value != nil {
		msg += fmt.Sprintf(" (got %v)", i.Value)
	}
	return strings.Join(append(parts, msg), ": ")
}

// Result collects the issues of one validation run.
type Result struct {
	// Checked counts the agent files inspected.
	Checked int     `json:"checked"`
	Issues  []Issue `json:"issues"`
}

// Add records an issue.
func (r *Result) Add(sev Severity, file, field, message string, value any) {
	r.Issues = append(r.Issues, Issue{sev, file, field, message, value})
}

// AddError records an error.
func (r *Result) AddError(file, field, message string, value any) {
	r.Add(SeverityError, file, field, message, value)
}

// AddWarning records a warning.
func (r *Result) AddWarning(file, field, message string, value any) {
	r.Add(SeverityWarning, file, field, message, value)
}

// HasErrors reports whether validation failed.
func (r *Result) HasErrors() bool { return r.has(SeverityError) }

// HasWarnings reports whether any warning was recorded.
func (r *Result) HasWarnings() bool { return r.has(SeverityWarning) }

// Errors returns the error issues in recording order.
func (r *Result) Errors() []Issue { return r.only(SeverityError) }

// Warnings returns the warning issues in recording order.
func (r *Result) Warnings() []Issue { return r.only(SeverityWarning) }

func (r *Result) has(sev Severity) bool {
	return r != nil && slices.ContainsFunc(r.Issues, func(i Issue) bool { return i.Severity == sev })
}

func (r *Result) only(sev Severity) []Issue {
	if r == nil {
		return nil
	}
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}
