package commands

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/blue-gardener/internal/errors"
	"github.com/thoreinstein/blue-gardener/internal/logging"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	t.Setenv("BLUE_GARDENER_DEBUG", "")
	t.Cleanup(resetFlags)

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	t.Cleanup(resetFlags)

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"BLUE_GARDENER_DEBUG=1", "1", slog.LevelDebug},
		{"BLUE_GARDENER_DEBUG=true", "true", slog.LevelDebug},
		{"BLUE_GARDENER_DEBUG=2", "2", logging.LevelTrace},
		{"BLUE_GARDENER_DEBUG=0", "0", slog.LevelWarn},
		{"BLUE_GARDENER_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			t.Setenv("BLUE_GARDENER_DEBUG", tt.envVal)
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if logger.Enabled(t.Context(), tt.wantLevel-1) {
				t.Errorf("expected level %v to be disabled", tt.wantLevel-1)
			}
		})
	}
}

func TestSetupLogging_Errors(t *testing.T) {
	t.Cleanup(resetFlags)

	resetFlags()
	quiet, verbosity = true, 1
	err := setupLogging(rootCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot use --quiet and --verbose together")

	resetFlags()
	logFormat = "xml"
	err = setupLogging(rootCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log format "xml"`)
}

func TestSetupLogging_LogFile(t *testing.T) {
	t.Cleanup(resetFlags)

	resetFlags()
	logFile = filepath.Join(t.TempDir(), "blue-gardener.log")
	require.NoError(t, setupLogging(rootCmd))
	assert.FileExists(t, logFile)

	resetFlags()
	logFile = filepath.Join(t.TempDir(), "missing", "dir", "log")
	err := setupLogging(rootCmd)
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.FromError(err).Code)
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantOutput []string
	}{
		{
			name:     "nil",
			err:      nil,
			wantCode: errors.ExitSuccess,
		},
		{
			name:       "not found",
			err:        errors.NotFoundf("agent %q not found in catalog", "blue-x"),
			wantCode:   errors.ExitUser,
			wantOutput: []string{`Error: agent "blue-x" not found in catalog`, "Run: blue-gardener list"},
		},
		{
			name:       "configuration",
			err:        errors.Configurationf("unknown platform %q", "vim"),
			wantCode:   errors.ExitUser,
			wantOutput: []string{`Error: unknown platform "vim"`, "Pass --platform"},
		},
		{
			name:       "filesystem",
			err:        errors.Filesystem(errors.New("open AGENTS.md: permission denied")),
			wantCode:   errors.ExitSystem,
			wantOutput: []string{"Error: open AGENTS.md: permission denied", "Check permissions"},
		},
		{
			name:       "explicit suggestion",
			err:        errors.NewUserError(errNoIDs, "Pass agent IDs"),
			wantCode:   errors.ExitUser,
			wantOutput: []string{"Error: no agent IDs given\nPass agent IDs\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			assert.Equal(t, tt.wantCode, ReportError(&sb, tt.err))
			for _, want := range tt.wantOutput {
				assert.Contains(t, sb.String(), want)
			}
			if tt.err == nil {
				assert.Empty(t, sb.String())
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is far too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
