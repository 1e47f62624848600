package loghandler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

const (
	colorReset   = "\033[0m"
	colorDim     = "\033[2m"
	colorCyan    = "\033[36m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBoldRed = "\033[1;31m"
)

// Options configures the Handler.
type Options struct {
	Level slog.Level
	// UseColor enables ANSI colors; off for log files.
	UseColor bool
	// Timestamps switches between wall-clock-only output (terminal) and
	// full date-time output (log files).
	Timestamps bool
}

// Handler is a compact, optionally colored slog.Handler for CLI and log-file
// output.
type Handler struct {
	w      io.Writer
	opts   Options
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

// NewHandler creates a new Handler writing to w.
func NewHandler(w io.Writer, opts *Options) *Handler {
	h := &Handler{
		w:  w,
		mu: &sync.Mutex{},
	}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

// Handle formats and writes the log record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	h.formatTime(&buf, r.Time)
	buf.WriteByte(' ')
	h.formatLevel(&buf, r.Level)
	if r.Message != "" {
		buf.WriteByte(' ')
		buf.WriteString(r.Message)
	}

	for _, a := range h.attrs {
		h.writeAttr(&buf, a, nil)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, a, h.groups)
		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, prefixAttr(a, h.groups))
	}
	return h2
}

// WithGroup returns a new Handler with the given group name appended.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *Handler) clone() *Handler {
	return &Handler{
		w:      h.w,
		opts:   h.opts,
		mu:     h.mu,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

func (h *Handler) formatTime(buf *bytes.Buffer, t time.Time) {
	if h.opts.UseColor {
		buf.WriteString(colorDim)
	}
	if h.opts.Timestamps {
		buf.WriteString(t.Format("2006-01-02 15:04:05"))
	} else {
		buf.WriteString(t.Format("15:04:05"))
	}
	if h.opts.UseColor {
		buf.WriteString(colorReset)
	}
}

func (h *Handler) formatLevel(buf *bytes.Buffer, level slog.Level) {
	var label, color string
	switch {
	case level >= slog.LevelError:
		label, color = "ERR", colorBoldRed
	case level >= slog.LevelWarn:
		label, color = "WRN", colorYellow
	case level >= slog.LevelInfo:
		label, color = "INF", colorGreen
	default:
		label, color = "DBG", colorCyan
	}
	if h.opts.UseColor {
		buf.WriteString(color)
	}
	buf.WriteString(label)
	if h.opts.UseColor {
		buf.WriteString(colorReset)
	}
}

func (h *Handler) writeAttr(buf *bytes.Buffer, a slog.Attr, groups []string) {
	a = prefixAttr(a, groups)
	if a.Equal(slog.Attr{}) {
		return
	}
	buf.WriteByte(' ')
	if h.opts.UseColor {
		buf.WriteString(colorDim)
	}
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	writeValue(buf, a.Value)
	if h.opts.UseColor {
		buf.WriteString(colorReset)
	}
}

func prefixAttr(a slog.Attr, groups []string) slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return a
	}
	for i := len(groups) - 1; i >= 0; i-- {
		a.Key = groups[i] + "." + a.Key
	}
	return a
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		writeMaybeQuoted(buf, v.String())
	case slog.KindGroup:
		for i, a := range v.Group() {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(a.Key)
			buf.WriteByte('=')
			writeValue(buf, a.Value)
		}
	default:
		writeMaybeQuoted(buf, fmt.Sprint(v.Any()))
	}
}

func writeMaybeQuoted(buf *bytes.Buffer, s string) {
	if needsQuoting(s) {
		buf.WriteString(strconv.Quote(s))
		return
	}
	buf.WriteString(s)
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c == '"' || c == '\\' || c == '=' {
			return true
		}
	}
	return false
}

// Verify interface compliance at compile time.
var _ slog.Handler = (*Handler)(nil)
