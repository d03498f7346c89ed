package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"
)

const colorReset = "\033[0m"

var levelColors = map[slog.Level]string{
	levelTrace:      "\033[36m",
	slog.LevelDebug: "\033[34m",
	slog.LevelInfo:  "\033[32m",
	slog.LevelWarn:  "\033[33m",
	slog.LevelError: "\033[31m",
	levelCritical:   "\033[41m\033[37m",
}

type replaceFunc func(groups []string, a slog.Attr) slog.Attr

// textHandler writes one "LEVEL message key="value" ..." line per record.
// Attributes added through WithAttrs are rendered once, with the groups
// active at that time, and shared by every derived handler.
type textHandler struct {
	mu          *sync.Mutex
	writer      io.Writer
	level       slog.Level
	colored     bool
	replaceAttr replaceFunc
	groups      []string
	preformat   string
}

func newTextHandler(writer io.Writer, colored bool, replaceAttr replaceFunc, level slog.Level) slog.Handler {
	return &textHandler{
		mu:          &sync.Mutex{},
		writer:      writer,
		level:       level,
		colored:     colored && isTerminal(writer),
		replaceAttr: replaceAttr,
	}
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	b.WriteString(h.levelLabel(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, h.groups, a)
		return true
	})
	b.WriteString(h.preformat)
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, b.String())
	return err
}

func (h *textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	for _, a := range attrs {
		h.appendAttr(&b, h.groups, a)
	}
	cp := *h
	cp.preformat = b.String() + h.preformat
	return &cp
}

func (h *textHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	cp := *h
	cp.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &cp
}

func (h *textHandler) levelLabel(level slog.Level) string {
	a := slog.Any(slog.LevelKey, level)
	if h.replaceAttr != nil {
		a = h.replaceAttr(nil, a)
	}
	label := a.Value.String()
	if l, ok := a.Value.Any().(slog.Level); ok {
		label = levelName(l)
	}
	if !h.colored {
		return label
	}
	return levelColor(level) + label + colorReset
}

func (h *textHandler) appendAttr(b *strings.Builder, groups []string, a slog.Attr) {
	if h.replaceAttr != nil {
		a = h.replaceAttr(groups, a)
	}
	a.Value = a.Value.Resolve()
	if a.Key == "" || a.Equal(slog.Attr{}) {
		return
	}

	b.WriteByte(' ')
	for _, g := range groups {
		b.WriteString(g)
		b.WriteByte('.')
	}
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(strconv.Quote(a.Value.String()))
}

// levelColor picks the colour of the closest known level at or below
// level.
func levelColor(level slog.Level) string {
	if c, ok := levelColors[level]; ok {
		return c
	}
	switch {
	case level < slog.LevelDebug:
		return levelColors[levelTrace]
	case level < slog.LevelInfo:
		return levelColors[slog.LevelDebug]
	case level < slog.LevelWarn:
		return levelColors[slog.LevelInfo]
	case level < slog.LevelError:
		return levelColors[slog.LevelWarn]
	default:
		return levelColors[slog.LevelError]
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
