package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Process exit codes.
const (
	ExitSuccess = 0
	// ExitUser covers bad arguments, unknown agents and configuration problems.
	ExitUser = 1
	// ExitSystem covers permission and I/O failures.
	ExitSystem = 2
)

// Sentinel errors for the installer taxonomy.
var (
	// ErrNotFound indicates the requested agent identifier is not in the catalog.
	ErrNotFound = crdb.New("not found")

	// ErrConfiguration indicates an unknown or undetectable platform, or a
	// malformed configuration or manifest file.
	ErrConfiguration = crdb.New("configuration error")

	// ErrFilesystem indicates a permission or I/O failure.
	ErrFilesystem = crdb.New("filesystem error")
)

// Re-exported helpers so callers need a single errors import.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Mark   = crdb.Mark
	Unwrap = crdb.Unwrap
)

// NotFoundf returns an error classified as ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return crdb.Mark(crdb.Newf(format, args...), ErrNotFound)
}

// Configurationf returns an error classified as ErrConfiguration.
func Configurationf(format string, args ...any) error {
	return crdb.Mark(crdb.Newf(format, args...), ErrConfiguration)
}

// Filesystem classifies err as ErrFilesystem, keeping its message verbatim.
// Returns nil if err is nil.
func Filesystem(err error) error {
	if err == nil {
		return nil
	}
	return crdb.Mark(err, ErrFilesystem)
}

// ExitError carries the process exit code and an optional hint for the
// user alongside the error that ends a command.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError returns err with exit code code and no suggestion.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError returns err as an ExitUser failure with a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError returns err as an ExitSystem failure with a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError returns err as an ExitUser failure pointing at --help.
func NewConfigError(err error) *ExitError {
	return NewUserError(err, "Run: blue-gardener --help")
}

// suggestions maps each classification to its exit code and hint. Order
// matters: an error marked twice takes the first match.
var suggestions = []struct {
	mark error
	code int
	hint string
}{
	{ErrFilesystem, ExitSystem, "Check permissions on the destination directory"},
	{ErrConfiguration, ExitUser, "Pass --platform or run: blue-gardener repair"},
	{ErrNotFound, ExitUser, "Run: blue-gardener list"},
}

// FromError converts err into an ExitError. An ExitError already in the
// chain wins; otherwise the code and hint follow the error's mark, with
// ExitUser for unclassified errors. Returns nil if err is nil.
func FromError(err error) *ExitError {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr
	}
	for _, s := range suggestions {
		if crdb.Is(err, s.mark) {
			return &ExitError{Err: err, Code: s.code, Suggestion: s.hint}
		}
	}
	return NewExitError(err, ExitUser)
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
