package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// handle formats one record without a timestamp.
func handle(t *testing.T, h slog.Handler, level slog.Level, msg string, attrs ...slog.Attr) {
	t.Helper()
	r := slog.NewRecord(time.Time{}, level, msg, 0)
	r.AddAttrs(attrs...)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
}

func TestHandler_Format(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		attrs []slog.Attr
		want  string
	}{
		{
			name:  "info with attrs",
			level: slog.LevelInfo,
			attrs: []slog.Attr{slog.String("id", "blue-go-developer"), slog.Int("agents", 2)},
			want:  "INFO  wrote agent id=blue-go-developer agents=2\n",
		},
		{
			name:  "trace label",
			level: LevelTrace,
			want:  "TRACE wrote agent\n",
		},
		{
			name:  "quoted value",
			level: slog.LevelWarn,
			attrs: []slog.Attr{slog.String("reason", "has spaces")},
			want:  "WARN  wrote agent reason=\"has spaces\"\n",
		},
		{
			name:  "empty value",
			level: slog.LevelError,
			attrs: []slog.Attr{slog.String("version", "")},
			want:  "ERROR wrote agent version=\"\"\n",
		},
		{
			name:  "error value",
			level: slog.LevelDebug,
			attrs: []slog.Attr{slog.Any("error", errors.New("boom"))},
			want:  "DEBUG wrote agent error=boom\n",
		},
		{
			name:  "group attr",
			level: slog.LevelInfo,
			attrs: []slog.Attr{slog.Group("report", slog.Int("added", 1), slog.Int("failed", 0))},
			want:  "INFO  wrote agent report.added=1 report.failed=0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace})
			handle(t, h, tt.level, "wrote agent", tt.attrs...)
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandler_Time(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("hello")

	stamp, rest, ok := strings.Cut(buf.String(), " ")
	if !ok || rest != "INFO  hello\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if _, err := time.Parse(time.Kitchen, stamp); err != nil {
		t.Errorf("timestamp %q is not in kitchen format: %v", stamp, err)
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}

	if !NewHandler(&bytes.Buffer{}, nil).Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info should be enabled by default")
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	var h slog.Handler = NewHandler(&buf, nil)

	h = h.WithAttrs([]slog.Attr{slog.String("platform", "cursor")})
	h = h.WithGroup("item")
	h = h.WithAttrs([]slog.Attr{slog.String("id", "blue-a")})

	handle(t, h, slog.LevelInfo, "done", slog.String("action", "added"))

	want := "INFO  done platform=cursor item.id=blue-a item.action=added\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHandler_WithAttrsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := NewHandler(&buf, nil)

	_ = base.WithAttrs([]slog.Attr{slog.String("a", "1")})
	handle(t, base, slog.LevelInfo, "base")

	if got := buf.String(); got != "INFO  base\n" {
		t.Errorf("base handler picked up derived attrs: %q", got)
	}
}

func TestHandler_BaseDir(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work", "project")
	outside := filepath.Join(string(filepath.Separator), "elsewhere", "x.md")

	var buf bytes.Buffer
	h := NewHandler(&buf, nil).WithBaseDir(root)

	handle(t, h, slog.LevelInfo, "wrote",
		slog.String("path", filepath.Join(root, ".cursor", "agents", "blue-a.md")),
		slog.String("manifest", outside),
		slog.String("id", filepath.Join(root, "not-a-path-key")),
	)

	want := "INFO  wrote path=" + filepath.Join(".cursor", "agents", "blue-a.md") +
		" manifest=" + outside +
		" id=" + filepath.Join(root, "not-a-path-key") + "\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
