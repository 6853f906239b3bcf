package frontmatter

import (
	"bytes"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/blue-gardener/internal/errors"
)

// Parse failures. Use errors.Is to tell them apart.
var (
	ErrMissingFrontmatter = errors.New("missing frontmatter")
	ErrUnterminated       = errors.New("missing closing frontmatter delimiter")
	ErrInvalidYAML        = errors.New("invalid frontmatter YAML")
)

const delimiter = "---"

// MustParse decodes the frontmatter of r into matter and returns the body
// that follows the closing delimiter. Content without frontmatter is an
// error.
func MustParse[T any](r io.Reader, matter *T) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading content")
	}

	header, body, err := split(content)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(header, matter); err != nil {
		return nil, errors.Mark(errors.Wrap(err, ErrInvalidYAML.Error()), ErrInvalidYAML)
	}
	return body, nil
}

// split walks content line by line. The first line must be the delimiter;
// the next delimiter line closes the header.
func split(content []byte) (header, body []byte, err error) {
	line, rest, _ := bytes.Cut(content, []byte("\n"))
	if !isDelimiter(line) {
		return nil, nil, ErrMissingFrontmatter
	}

	for off := 0; off < len(rest); {
		end := len(rest)
		if i := bytes.IndexByte(rest[off:], '\n'); i >= 0 {
			end = off + i + 1
		}
		if isDelimiter(bytes.TrimSuffix(rest[off:end], []byte("\n"))) {
			return rest[:off], rest[end:], nil
		}
		off = end
	}
	return nil, nil, ErrUnterminated
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimSuffix(line, []byte("\r"))) == delimiter
}

// Format renders matter as a YAML header followed by a blank line and body.
// A body without a trailing newline gets one.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, errors.Wrap(err, "encoding frontmatter")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding frontmatter")
	}
	buf.WriteString(delimiter + "\n")

	if body != "" {
		buf.WriteString("\n" + body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}
