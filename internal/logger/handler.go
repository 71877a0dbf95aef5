package logger

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var levelBadges = map[slog.Level]func(format string, a ...interface{}) string{
	slog.LevelDebug: color.HiBlackString,
	slog.LevelInfo:  color.CyanString,
	slog.LevelWarn:  color.YellowString,
	slog.LevelError: color.RedString,
}

// keyColors highlights the attributes worth spotting in a poll or save trace.
var keyColors = map[string]func(format string, a ...interface{}) string{
	"error":   color.RedString,
	"missing": color.RedString,
	"ticket":  color.CyanString,
	"project": color.CyanString,
	"page":    color.CyanString,
	"attempt": color.MagentaString,
	"pairs":   color.GreenString,
	"count":   color.GreenString,
}

// PrettyHandler writes one colored line per record: badge, message, then
// key=value fields. Groups become dotted key prefixes.
type PrettyHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	source bool

	prefix string
	fields []string
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{w: w, mu: &sync.Mutex{}, level: slog.LevelWarn}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		h.source = opts.AddSource
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	parts := []string{badge(r.Level), r.Message}

	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, field(h.prefix, a))
		return true
	})
	parts = append(parts, h.fields...)

	if h.source && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			parts = append(parts, color.HiBlackString("(%s:%d)", filepath.Base(frame.File), frame.Line))
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, strings.Join(parts, " ")+"\n")
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.fields = make([]string, 0, len(h.fields)+len(attrs))
	next.fields = append(next.fields, h.fields...)
	for _, a := range attrs {
		next.fields = append(next.fields, field(h.prefix, a))
	}
	return &next
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func badge(level slog.Level) string {
	label := "[" + level.String() + "]"
	if paint, ok := levelBadges[level]; ok {
		return paint("%-7s", label)
	}
	return label
}

func field(prefix string, a slog.Attr) string {
	paint, ok := keyColors[a.Key]
	if !ok {
		paint = color.HiBlackString
	}
	return paint("%s%s=%s", prefix, a.Key, a.Value.String())
}
