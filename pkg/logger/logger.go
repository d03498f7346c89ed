package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shuldan/voyage/pkg/container"
	"github.com/shuldan/voyage/pkg/contracts"
)

// Logger adapts a slog.Handler to contracts.Logger with the extra trace and
// critical levels.
type Logger struct {
	handler slog.Handler
	source  bool
}

var _ contracts.Logger = (*Logger)(nil)

func NewLogger(opts ...Option) (contracts.Logger, error) {
	s := &settings{level: slog.LevelInfo, writer: os.Stdout}
	for _, opt := range opts {
		opt(s)
	}
	if s.err != nil {
		return nil, s.err
	}

	var h slog.Handler
	if s.json {
		h = slog.NewJSONHandler(s.writer, &slog.HandlerOptions{
			Level:       s.level,
			AddSource:   s.source,
			ReplaceAttr: s.replaceAttr,
		})
	} else {
		h = newTextHandler(s.writer, s.color, s.replaceAttr, s.level)
	}
	return &Logger{handler: h, source: s.source}, nil
}

// Nop returns a logger that discards everything.
func Nop() contracts.Logger {
	return &Logger{handler: slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: levelCritical + 1})}
}

// From resolves the logger bound in the active container, or Nop when none
// is bound.
func From(ctx context.Context) contracts.Logger {
	v, err := container.Make(ctx, contracts.LoggerName)
	if err != nil {
		return Nop()
	}
	if l, ok := v.(contracts.Logger); ok && l != nil {
		return l
	}
	return Nop()
}

func (l *Logger) Trace(msg string, args ...any)    { l.log(levelTrace, msg, args) }
func (l *Logger) Debug(msg string, args ...any)    { l.log(slog.LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)     { l.log(slog.LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)     { l.log(slog.LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any)    { l.log(slog.LevelError, msg, args) }
func (l *Logger) Critical(msg string, args ...any) { l.log(levelCritical, msg, args) }

func (l *Logger) With(args ...any) contracts.Logger {
	return &Logger{handler: l.handler.WithAttrs(convertArgs(args)), source: l.source}
}

// log skips itself and the level method so source points at the caller.
func (l *Logger) log(level slog.Level, msg string, args []any) {
	ctx := context.Background()
	if !l.handler.Enabled(ctx, level) {
		return
	}

	var pc uintptr
	if l.source {
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), level, msg, pc)
	r.AddAttrs(convertArgs(args)...)
	_ = l.handler.Handle(ctx, r)
}

// convertArgs pairs args into attributes the way slog does. A trailing
// value without a key is kept under MISSING_KEY.
func convertArgs(args []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		if a, ok := args[i].(slog.Attr); ok {
			attrs = append(attrs, a)
			i--
			continue
		}
		if i+1 == len(args) {
			attrs = append(attrs, slog.Any("MISSING_KEY", args[i]))
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("NON_STRING_KEY_%T", args[i])
		}
		attrs = append(attrs, slog.Any(key, args[i+1]))
	}
	return attrs
}
