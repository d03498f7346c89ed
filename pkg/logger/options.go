package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Option func(*settings)

type settings struct {
	level   slog.Level
	json    bool
	source  bool
	color   bool
	writer  io.Writer
	labels  map[slog.Level]string
	replace replaceFunc
	err     error
}

func (s *settings) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// replaceAttr runs the user hook, then renders levels with their labels.
func (s *settings) replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if s.replace != nil {
		if a = s.replace(groups, a); a.Equal(slog.Attr{}) {
			return a
		}
	}
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	if label, ok := s.labels[level]; ok {
		return slog.String(slog.LevelKey, label)
	}
	return slog.String(slog.LevelKey, levelName(level))
}

func WithLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithLevelName sets the level from its name, e.g. "debug" or "critical".
// An unknown name makes NewLogger fail.
func WithLevelName(name string) Option {
	return func(s *settings) {
		level, err := ParseLevel(name)
		if err != nil {
			s.fail(err)
			return
		}
		s.level = level
	}
}

// WithFormat selects "json" or "text" output.
func WithFormat(format string) Option {
	return func(s *settings) {
		switch strings.ToLower(format) {
		case "json":
			s.json = true
		case "text", "":
			s.json = false
		default:
			s.fail(ErrInvalidFormat.WithDetail("format", format))
		}
	}
}

func WithJSON() Option {
	return WithFormat("json")
}

// WithOutput selects "stdout", "stderr" or "discard".
func WithOutput(output string) Option {
	return func(s *settings) {
		switch strings.ToLower(output) {
		case "stdout":
			s.writer = os.Stdout
		case "stderr", "":
			s.writer = os.Stderr
		case "discard", "none":
			s.writer = io.Discard
		default:
			s.fail(ErrInvalidOutput.WithDetail("output", output))
		}
	}
}

func WithWriter(w io.Writer) Option {
	return func(s *settings) {
		if w == nil {
			w = io.Discard
		}
		s.writer = w
	}
}

// WithSource records the caller of each log method.
func WithSource() Option {
	return func(s *settings) { s.source = true }
}

// WithColor colours text output when the writer is a terminal.
func WithColor() Option {
	return func(s *settings) { s.color = true }
}

// WithLevelNames overrides the labels printed for the given levels.
func WithLevelNames(names map[slog.Level]string) Option {
	return func(s *settings) {
		if s.labels == nil {
			s.labels = make(map[slog.Level]string, len(names))
		}
		for level, label := range names {
			s.labels[level] = label
		}
	}
}

// WithReplaceAttr installs a hook applied to every attribute before level
// labels are rendered. Returning an empty Attr drops it.
func WithReplaceAttr(f func(groups []string, a slog.Attr) slog.Attr) Option {
	return func(s *settings) { s.replace = f }
}
