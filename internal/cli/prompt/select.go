package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/blue-gardener/internal/errors"
)

// Sentinel errors for selection.
var (
	ErrNoOptions          = errors.New("no options to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Option is one numbered choice.
type Option struct {
	Label string
	// Detail is printed in parentheses after the label (optional).
	Detail string
}

// Selector handles numbered selection and confirmation prompts.
type Selector struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return NewSelectorWithIO(os.Stdin, os.Stdout)
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Select prompts the user to choose one of options and returns its index.
//
// Returns:
//   - ErrNoOptions if the list is empty
//   - 0 without prompting if only one option exists
//   - 0 on empty input
//   - ErrInvalidSelection if the selection is not a number or out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) Select(title string, options []Option) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}
	if len(options) == 1 {
		return 0, nil
	}

	fmt.Fprintf(s.writer, "%s:\n", title)
	for i, o := range options {
		if o.Detail != "" {
			fmt.Fprintf(s.writer, "  [%d] %s (%s)\n", i+1, o.Label, o.Detail)
		} else {
			fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, o.Label)
		}
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := s.readLine()
	if err != nil {
		return 0, err
	}

	if input == "" {
		return 0, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	// 1-indexed
	if selection < 1 || selection > len(options) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(options))
	}

	return selection - 1, nil
}

// Confirm asks a yes/no question. Anything other than y or yes, including
// EOF, is a no.
func (s *Selector) Confirm(question string) bool {
	fmt.Fprintf(s.writer, "%s [y/N]: ", question)

	input, err := s.readLine()
	if err != nil {
		return false
	}

	switch strings.ToLower(input) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (s *Selector) readLine() (string, error) {
	input, err := s.reader.ReadString('\n')
	if err != nil {
		// A final line without newline still counts.
		if errors.Is(err, io.EOF) && input != "" {
			return strings.TrimSpace(input), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "reading selection")
	}
	return strings.TrimSpace(input), nil
}
