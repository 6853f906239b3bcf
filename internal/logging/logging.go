package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// Format is the --log-format value.
type Format string

// Supported log formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --log-format value. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown log format %q", s)
	}
}

// Config holds the configuration for creating a new logger.
type Config struct {
	// Level sets the minimum log level for every sink.
	Level slog.Level
	// Format selects the handler for Output.
	Format Format
	// Output is the primary sink. Defaults to os.Stderr if nil.
	Output io.Writer
	// File, when set, also receives every record as JSON.
	File io.Writer
	// BaseDir shortens path attributes in text output (optional).
	BaseDir string
}

// New creates a logger with the given configuration.
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = NewHandler(output, opts).WithBaseDir(cfg.BaseDir)
	}

	if cfg.File != nil {
		handler = NewMultiHandler(handler, slog.NewJSONHandler(cfg.File, opts))
	}

	return slog.New(handler)
}

// testWriter sends each handler write to t.Log, which adds its own newline.
type testWriter struct {
	t *testing.T
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest returns a trace-level text logger bound to t. Output shows only
// for failing tests or with go test -v.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{Level: LevelTrace, Output: &testWriter{t: t}})
}
