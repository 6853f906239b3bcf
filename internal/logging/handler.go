package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// pathKeys are attribute keys shown relative to the handler's base dir.
var pathKeys = map[string]bool{
	"path":     true,
	"root":     true,
	"manifest": true,
}

// Handler implements slog.Handler for terminal text output:
//
//	3:04PM DEBUG wrote agent id=blue-go-developer path=.cursor/agents/blue-go-developer.md
//
// Colors are used only when the writer supports them.
type Handler struct {
	opts    slog.HandlerOptions
	out     io.Writer
	mu      *sync.Mutex
	attrs   []slog.Attr
	groups  []string
	baseDir string
	color   bool
}

var (
	timeColor  = color.New(color.FgHiBlack)
	traceColor = color.New(color.FgHiBlack)
	debugColor = color.New(color.FgMagenta)
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
	keyColor   = color.New(color.FgCyan)
)

// NewHandler creates a text handler writing to out.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		opts:  *opts,
		out:   out,
		mu:    &sync.Mutex{},
		color: SupportsColor(out),
	}
}

// WithBaseDir returns a copy of h that prints path attributes relative to
// dir. An empty dir disables shortening.
func (h *Handler) WithBaseDir(dir string) *Handler {
	newH := *h
	newH.baseDir = dir
	return &newH
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes r as a single line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	if !r.Time.IsZero() {
		sb.WriteString(h.paint(timeColor, r.Time.Format(time.Kitchen)))
		sb.WriteByte(' ')
	}

	label, c := levelLabel(r.Level)
	fmt.Fprintf(&sb, "%s %s", h.paint(c, fmt.Sprintf("%-5s", label)), r.Message)

	for _, a := range h.attrs {
		h.appendAttr(&sb, "", a)
	}
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&sb, prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func levelLabel(level slog.Level) (string, *color.Color) {
	switch {
	case level >= slog.LevelError:
		return "ERROR", errorColor
	case level >= slog.LevelWarn:
		return "WARN", warnColor
	case level >= slog.LevelInfo:
		return "INFO", infoColor
	case level >= slog.LevelDebug:
		return "DEBUG", debugColor
	default:
		return "TRACE", traceColor
	}
}

func (h *Handler) paint(c *color.Color, s string) string {
	if !h.color {
		return s
	}
	return c.Sprint(s)
}

func (h *Handler) appendAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.appendAttr(sb, key, ga)
		}
		return
	}

	fmt.Fprintf(sb, " %s=%s", h.paint(keyColor, key), h.formatValue(a))
}

func (h *Handler) formatValue(a slog.Attr) string {
	var s string
	switch v := a.Value.Any().(type) {
	case error:
		s = v.Error()
	case string:
		s = v
		if h.baseDir != "" && pathKeys[a.Key] && filepath.IsAbs(v) {
			if rel, err := filepath.Rel(h.baseDir, v); err == nil && !strings.HasPrefix(rel, "..") {
				s = rel
			}
		}
	default:
		s = fmt.Sprint(v)
	}

	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// WithAttrs returns a new Handler with the given attributes. Attributes
// keep the groups open at the time of the call.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	if len(h.groups) > 0 {
		attrs = []slog.Attr{{Key: strings.Join(h.groups, "."), Value: slog.GroupValue(attrs...)}}
	}
	newH := *h
	newH.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &newH
}

// WithGroup returns a new Handler that nests later attributes under name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = append(append([]string(nil), h.groups...), name)
	return &newH
}
