// Package errors provides error handling conventions for the blue-gardener CLI.
//
// This package defines the error taxonomy used across the installer, an
// ExitError type for CLI exit code handling, and exit code constants
// following standard Unix conventions.
//
// # Taxonomy
//
// Three sentinel errors classify every failure the tool reports:
//
//   - [ErrNotFound]: an agent identifier is not in the catalog
//   - [ErrConfiguration]: the platform is unknown or cannot be determined,
//     or the config/manifest file is malformed
//   - [ErrFilesystem]: a permission or I/O failure on the destination
//
// Errors are classified with [Mark], which keeps the original message intact
// while making the sentinel visible to [Is]:
//
//	err := errors.Mark(osErr, errors.ErrFilesystem)
//	if errors.Is(err, errors.ErrFilesystem) {
//	    // exit with ExitSystem
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (unknown agent, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion.
// [FromError] derives one from a classified error:
//
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
