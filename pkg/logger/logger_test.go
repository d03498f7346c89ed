package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/shuldan/voyage/pkg/contracts"
)

func newBufferLogger(t *testing.T, opts ...Option) (contracts.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	l, err := NewLogger(append(opts, WithWriter(buf))...)
	if err != nil {
		t.Fatal(err)
	}
	return l, buf
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newBufferLogger(t, WithLevel(levelTrace))

	tests := []struct {
		log   func(string, ...any)
		label string
	}{
		{l.Trace, "TRACE"},
		{l.Debug, "DEBUG"},
		{l.Info, "INFO"},
		{l.Warn, "WARN"},
		{l.Error, "ERROR"},
		{l.Critical, "CRITICAL"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			buf.Reset()
			tt.log("phase done", "phase", "boot")
			want := tt.label + ` phase done phase="boot"` + "\n"
			if buf.String() != want {
				t.Errorf("expected %q, got %q", want, buf.String())
			}
		})
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	l, buf := newBufferLogger(t, WithLevelName("warn"))

	l.Info("hidden")
	l.Warn("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newBufferLogger(t)

	l.With("plugin", "mail").Info("booted")
	l.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], `plugin="mail"`) || strings.Contains(lines[1], "plugin") {
		t.Errorf("With should only affect the derived logger: %q", lines)
	}
}

func TestLogger_JSON(t *testing.T) {
	l, buf := newBufferLogger(t, WithFormat("json"), WithSource())

	l.Critical("down", "code", "APP_0001")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if entry["level"] != "CRITICAL" || entry["msg"] != "down" || entry["code"] != "APP_0001" {
		t.Errorf("unexpected entry %v", entry)
	}
	if _, ok := entry["source"].(map[string]any); !ok {
		t.Error("expected source location")
	}
}

func TestLogger_LevelNames(t *testing.T) {
	l, buf := newBufferLogger(t, WithJSON(), WithLevelNames(map[slog.Level]string{
		slog.LevelWarn: "WARNING",
	}))

	l.Warn("careful")
	l.Critical("down")

	out := buf.String()
	if !strings.Contains(out, `"level":"WARNING"`) || !strings.Contains(out, `"level":"CRITICAL"`) {
		t.Errorf("unexpected level names %q", out)
	}
}

func TestNewLogger_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"level", WithLevelName("loud"), ErrInvalidLevel},
		{"format", WithFormat("xml"), ErrInvalidFormat},
		{"output", WithOutput("printer"), ErrInvalidOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLogger(tt.opt); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Critical("ignored")
	if l.With("k", "v") == nil {
		t.Error("Nop should support With")
	}
}

func TestConvertArgs(t *testing.T) {
	attrs := convertArgs([]any{"key", "val", 42, "answer", "dangling"})

	if len(attrs) != 3 {
		t.Fatalf("expected 3 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != "key" {
		t.Errorf("expected key, got %q", attrs[0].Key)
	}
	if attrs[1].Key != "NON_STRING_KEY_int" {
		t.Errorf("expected non-string key marker, got %q", attrs[1].Key)
	}
	if attrs[2].Key != "MISSING_KEY" {
		t.Errorf("expected missing key marker, got %q", attrs[2].Key)
	}
}

func TestLogger_SourcePointsAtCaller(t *testing.T) {
	l, buf := newBufferLogger(t, WithJSON(), WithSource())

	l.Info("here")

	var entry struct {
		Source struct {
			File string `json:"file"`
		} `json:"source"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(entry.Source.File, "logger_test.go") {
		t.Errorf("expected caller file, got %q", entry.Source.File)
	}
}

func TestConvertArgs_Attrs(t *testing.T) {
	attrs := convertArgs([]any{slog.Int("n", 1), "k", "v", slog.Bool("b", true)})
	if len(attrs) != 3 || attrs[0].Key != "n" || attrs[1].Key != "k" || attrs[2].Key != "b" {
		t.Errorf("unexpected attrs %v", attrs)
	}
}
