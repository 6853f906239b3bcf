package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format selects how a Reporter renders a Result.
type Format string

// Report formats accepted by validate --format.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Reporter writes a Result for people (text) or tools (json).
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter returns a Reporter writing to out. Unknown formats render as
// text.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{out: out, format: format}
}

// Report writes result. A nil result writes nothing.
func (r *Reporter) Report(result *Result) error {
	switch {
	case result == nil:
		return nil
	case r.format == FormatJSON:
		return r.reportJSON(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	err := enc.Encode(struct {
		Valid bool `json:"valid"`
		*Result
	}{!result.HasErrors(), result})
	return errors.Wrap(err, "encoding JSON report")
}

var (
	fileStyle  = color.New(color.Bold)
	errorStyle = color.New(color.FgRed)
	warnStyle  = color.New(color.FgYellow)
	valueStyle = color.New(color.FgHiBlack)
)

// maxValueLen bounds the echoed offending value in text output.
const maxValueLen = 50

// reportText prints issues grouped by file, errors before warnings, then a
// one-line verdict.
func (r *Reporter) reportText(result *Result) error {
	errs, warnings := result.Errors(), result.Warnings()
	if len(errs)+len(warnings) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ %d agent(s) valid", result.Checked))
		return nil
	}

	var files []string
	grouped := make(map[string][]Issue)
	for _, issue := range append(errs, warnings...) {
		if grouped[issue.File] == nil {
			files = append(files, issue.File)
		}
		grouped[issue.File] = append(grouped[issue.File], issue)
	}

	for _, file := range files {
		name := file
		if name == "" {
			name = "(catalog)"
		}
		fileStyle.Fprintln(r.out, name)
		for _, issue := range grouped[file] {
			fmt.Fprintln(r.out, formatIssue(issue))
		}
		fmt.Fprintln(r.out)
	}

	var counts []string
	if n := len(errs); n > 0 {
		counts = append(counts, errorStyle.Sprintf("%d error(s)", n))
	}
	if n := len(warnings); n > 0 {
		counts = append(counts, warnStyle.Sprintf("%d warning(s)", n))
	}
	verdict := "Validation passed with"
	if result.HasErrors() {
		verdict = "Validation failed:"
	}
	fmt.Fprintf(r.out, "%s %s in %d agent(s)\n", verdict, strings.Join(counts, ", "), result.Checked)
	return nil
}

// formatIssue renders "  • <severity> <field>: <message> [<value>]".
func formatIssue(i Issue) string {
	style := warnStyle
	if i.Severity == SeverityError {
		style = errorStyle
	}

	line := "  • " + style.Sprint(i.Severity.String()) + " "
	if i.Field != "" {
		line += i.Field + ": "
	}
	line += i.Message

	if i.Value != nil {
		v := fmt.Sprint(i.Value)
		if len(v) > maxValueLen {
			v = v[:maxValueLen-3] + "..."
		}
		line += valueStyle.Sprintf(" [%s]", v)
	}
	return line
}
