// Package logging builds the slog loggers used by the blue-gardener CLI.
//
// Terminal output goes through [Handler], a compact colorized text format.
// [FormatJSON] switches the primary output to slog's JSON handler, and a log
// file, when given, always receives JSON through a [MultiHandler]:
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//
// Commands store the logger in their context with [NewContext]; library code
// retrieves it with [FromContext]. Tests use [ForTest].
package logging
