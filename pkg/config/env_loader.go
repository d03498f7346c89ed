package config

import (
	"context"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

const envNestingSeparator = "__"

// EnvConfigLoader maps prefixed environment variables onto config paths.
type EnvConfigLoader struct {
	prefix  string
	environ func() []string
}

// NewEnvConfigLoader reads variables starting with prefix. APP_DB__HOST
// with prefix APP_ becomes db.host. Without a prefix nothing is read, so
// the whole process environment never leaks into the config.
func NewEnvConfigLoader(prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{prefix: prefix, environ: os.Environ}
}

func (l *EnvConfigLoader) Load(context.Context) (map[string]any, error) {
	values := make(map[string]any)
	if l.prefix == "" {
		return values, nil
	}

	for _, kv := range l.environ() {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		rest, ok := strings.CutPrefix(name, l.prefix)
		if !ok || rest == "" {
			continue
		}

		path := strings.ReplaceAll(strings.ToLower(rest), envNestingSeparator, ".")
		setPath(values, strings.Split(path, "."), envValue(raw))
	}
	return values, nil
}

// envValue reads raw as a YAML scalar or flow sequence so that env values
// type the same way file values do. Anything else stays a string.
func envValue(raw string) any {
	if raw == "" {
		return raw
	}
	var parsed any
	if err := yaml.Unmarshal([]byte(raw), &parsed); err != nil {
		return raw
	}
	switch parsed.(type) {
	case bool, float64, int64, uint64, int, []any:
		return normalize(parsed)
	default:
		return raw
	}
}

func setPath(m map[string]any, keys []string, value any) {
	for _, k := range keys[:len(keys)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[k] = next
		}
		m = next
	}
	m[keys[len(keys)-1]] = value
}
