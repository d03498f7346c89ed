package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/shuldan/voyage/pkg/container"
	"github.com/shuldan/voyage/pkg/contracts"
)

type mockLoader struct {
	config map[string]any
	err    error
}

func (m *mockLoader) Load(context.Context) (map[string]any, error) {
	return m.config, m.err
}

type mockPlugin struct {
	name     string
	paths    []string
	defaults map[string]any
}

func (m *mockPlugin) Name() string { return m.name }

func (m *mockPlugin) ConfigPaths() []string { return m.paths }

func (m *mockPlugin) DefaultConfigs() map[string]any { return m.defaults }

func (m *mockPlugin) Boot(context.Context, *container.Container) error {
	return nil
}

func (m *mockPlugin) PreLaunch(context.Context, *container.Container) error {
	return nil
}

func (m *mockPlugin) PostLaunch(context.Context, *container.Container) error {
	return nil
}

func (m *mockPlugin) PreAction(context.Context, *container.Container) error {
	return nil
}

func (m *mockPlugin) PostAction(context.Context, *container.Container) error {
	return nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestChainLoader_MergesInOrder(t *testing.T) {
	first := &mockLoader{config: map[string]any{
		"app": map[string]any{"name": "test", "port": 8080},
	}}
	second := &mockLoader{config: map[string]any{
		"app": map[string]any{"port": 9000, "env": "prod"},
		"db":  "localhost",
	}}

	result, err := NewChainLoader(first, nil, second).Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := map[string]any{
		"app": map[string]any{"name": "test", "port": 9000, "env": "prod"},
		"db":  "localhost",
	}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %v, got %v", expected, result)
	}
	if first.config["app"].(map[string]any)["port"] != 8080 {
		t.Error("merging should not mutate loader output")
	}
}

func TestChainLoader_StopsOnError(t *testing.T) {
	testErr := errors.New("load failed")
	_, err := NewChainLoader(
		&mockLoader{config: map[string]any{"a": 1}},
		&mockLoader{err: testErr},
	).Load(context.Background())
	if !errors.Is(err, testErr) {
		t.Errorf("expected loader error, got %v", err)
	}

	result, err := NewChainLoader().Load(context.Background())
	if err != nil || len(result) != 0 {
		t.Errorf("empty chain should load nothing, got %v (%v)", result, err)
	}
}

func TestMerge(t *testing.T) {
	dst := map[string]any{
		"keep":   1,
		"nested": map[string]any{"a": 1, "b": 2},
		"scalar": map[string]any{"x": 1},
	}
	src := map[string]any{
		"nested": map[string]any{"b": 3, "c": 4},
		"scalar": "replaced",
		"new":    []any{1, 2},
	}

	got := Merge(dst, src)
	expected := map[string]any{
		"keep":   1,
		"nested": map[string]any{"a": 1, "b": 3, "c": 4},
		"scalar": "replaced",
		"new":    []any{1, 2},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	inner := map[string]any{"k": "v"}
	out := Merge(nil, map[string]any{"m": inner})
	out["m"].(map[string]any)["k"] = "changed"
	if inner["k"] != "v" {
		t.Error("merged maps should not alias the source")
	}
}

func TestFileLoader_Variants(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.json", `{"name": "jsonapp", "port": 8080}`)
	writeFile(t, dir, "database.yaml", "host: localhost\nport: 5432\nreplicas:\n  - a\n  - b\n")
	writeFile(t, dir, "cache.yml", "driver: memory\n")
	writeFile(t, dir, "queue.toml", "driver = \"redis\"\n[retry]\nattempts = 3\n")
	writeFile(t, dir, "plain", `{"raw": true}`)

	result, err := NewFileLoader(dir, "app", "database", "cache", "queue", "plain", "missing").Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := NewAccessor(result, true)
	tests := []struct {
		path     string
		expected any
	}{
		{"app.name", "jsonapp"},
		{"app.port", float64(8080)},
		{"database.host", "localhost"},
		{"database.port", 5432},
		{"database.replicas.1", "b"},
		{"cache.driver", "memory"},
		{"queue.driver", "redis"},
		{"queue.retry.attempts", 3},
		{"plain.raw", true},
	}
	for _, tt := range tests {
		if got := cfg.Get(tt.path); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Get(%s) = %#v, expected %#v", tt.path, got, tt.expected)
		}
	}
	if cfg.Has("missing") {
		t.Error("missing files should be skipped")
	}
}

func TestFileLoader_ExplicitExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mail.yaml", "host: smtp\n")

	result, err := NewFileLoader(dir, "mail.json").Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if NewAccessor(result, true).Get("mail.host") != "smtp" {
		t.Errorf("expected the yaml variant to load into section mail, got %v", result)
	}
}

func TestFileLoader_FirstVariantWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.json", `{"from": "json"}`)
	writeFile(t, dir, "app.yaml", "from: yaml\n")

	result, err := NewFileLoader(dir, "app").Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got := NewAccessor(result, true).Get("app.from"); got != "json" {
		t.Errorf("expected json to win, got %v", got)
	}
}

func TestFileLoader_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		expected error
	}{
		{"bad json", "bad.json", `{"unterminated"`, ErrParseJSON},
		{"bad yaml", "bad.yaml", "key: [unclosed", ErrParseYAML},
		{"bad toml", "bad.toml", "key = ", ErrParseTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)

			_, err := NewFileLoader(dir, "bad").Load(context.Background())
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}

	_, err := NewFileLoader(t.TempDir(), "../outside").Load(context.Background())
	if !errors.Is(err, ErrUnsafePath) {
		t.Errorf("expected ErrUnsafePath, got %v", err)
	}
}

func TestEnvConfigLoader_Load(t *testing.T) {
	t.Setenv("APP_NAME", "testapp")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_FEATURES__ENABLED", "true")
	t.Setenv("APP_DB__HOST", "localhost")
	t.Setenv("APP_RATIO", "0.5")
	t.Setenv("PREFIX_IGNORED", "x")

	config, err := NewEnvConfigLoader("APP_").Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := NewAccessor(config, true)
	if cfg.Get("name") != "testapp" {
		t.Errorf("expected name = testapp, got %v", cfg.Get("name"))
	}
	if cfg.Get("port") != 8080 {
		t.Errorf("expected port = 8080, got %v", cfg.Get("port"))
	}
	if cfg.Get("features.enabled") != true {
		t.Errorf("expected features.enabled = true, got %v", cfg.Get("features.enabled"))
	}
	if cfg.Get("db.host") != "localhost" {
		t.Errorf("expected db.host = localhost, got %v", cfg.Get("db.host"))
	}
	if cfg.Get("ratio") != 0.5 {
		t.Errorf("expected ratio = 0.5, got %v", cfg.Get("ratio"))
	}
	if cfg.Has("ignored") || cfg.Has("prefix_ignored") {
		t.Error("variables without the prefix should be ignored")
	}
}

func TestEnvConfigLoader_EmptyPrefixLoadsNothing(t *testing.T) {
	t.Setenv("SOME_VAR", "x")
	config, err := NewEnvConfigLoader("").Load(context.Background())
	if err != nil || len(config) != 0 {
		t.Errorf("expected empty config, got %v (%v)", config, err)
	}
}

func TestEnvConfigLoader_Values(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"", ""},
		{"plain", "plain"},
		{"42", 42},
		{"-3", -3},
		{"false", false},
		{"[a, b]", []any{"a", "b"}},
		{"key: value", "key: value"},
		{"http://example.com:8080", "http://example.com:8080"},
		{"[unclosed", "[unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			l := &EnvConfigLoader{
				prefix:  "X_",
				environ: func() []string { return []string{"X_V=" + tt.raw, "X_=skipped", "malformed"} },
			}
			values, err := l.Load(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if len(values) != 1 || !reflect.DeepEqual(values["v"], tt.want) {
				t.Errorf("expected %#v, got %#v", tt.want, values)
			}
		})
	}
}

func TestEnvFiles(t *testing.T) {
	t.Setenv("APP_ENV", "")
	if got := EnvFiles(); !reflect.DeepEqual(got, []string{".env"}) {
		t.Errorf("expected [.env], got %v", got)
	}

	t.Setenv("APP_ENV", "Testing")
	if got := EnvFiles(); !reflect.DeepEqual(got, []string{".env.testing", ".env"}) {
		t.Errorf("expected [.env.testing .env], got %v", got)
	}

	if got := EnvFiles("custom.env"); !reflect.DeepEqual(got, []string{"custom.env"}) {
		t.Errorf("explicit files should win, got %v", got)
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env.local", "VOYAGE_TEST_FIRST=local\n")
	writeFile(t, dir, ".env", "VOYAGE_TEST_FIRST=base\nVOYAGE_TEST_SECOND=base\n")

	t.Setenv("VOYAGE_TEST_FIRST", "")
	t.Setenv("VOYAGE_TEST_SECOND", "")
	_ = os.Unsetenv("VOYAGE_TEST_FIRST")
	_ = os.Unsetenv("VOYAGE_TEST_SECOND")

	err := LoadEnvFiles(
		filepath.Join(dir, ".env.local"),
		filepath.Join(dir, ".env"),
		filepath.Join(dir, ".env.missing"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := os.Getenv("VOYAGE_TEST_FIRST"); got != "local" {
		t.Errorf("earlier file should win, got %q", got)
	}
	if got := os.Getenv("VOYAGE_TEST_SECOND"); got != "base" {
		t.Errorf("expected base, got %q", got)
	}
}

func TestDefaultsLoader(t *testing.T) {
	calls := 0
	first := &mockPlugin{
		name:  "first",
		paths: []string{"mail", "cache", "empty"},
		defaults: map[string]any{
			"mail":   map[string]any{"host": "localhost", "port": 25},
			"cache":  contracts.ConfigProducer(func(context.Context) (any, error) { calls++; return "memory", nil }),
			"unused": "ignored",
		},
	}
	second := &mockPlugin{
		name:  "second",
		paths: []string{"mail"},
		defaults: map[string]any{
			"mail": map[string]any{"port": 587},
		},
	}

	result, err := NewDefaultsLoader(first, second).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	expected := map[string]any{
		"mail":  map[string]any{"host": "localhost", "port": 587},
		"cache": "memory",
	}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %v, got %v", expected, result)
	}
	if calls != 1 {
		t.Errorf("producer should run once, ran %d times", calls)
	}

	if got := Paths(first, second); !reflect.DeepEqual(got, []string{"mail", "cache", "empty"}) {
		t.Errorf("unexpected paths %v", got)
	}
}

func TestDefaultsLoader_ProducerError(t *testing.T) {
	testErr := errors.New("no default")
	p := &mockPlugin{
		paths: []string{"broken"},
		defaults: map[string]any{
			"broken": func(context.Context) (any, error) { return nil, testErr },
		},
	}

	_, err := NewDefaultsLoader(p).Load(context.Background())
	if !errors.Is(err, ErrDefaultFailed) || !errors.Is(err, testErr) {
		t.Errorf("expected ErrDefaultFailed caused by producer error, got %v", err)
	}
}

func TestStaticLoader_Copies(t *testing.T) {
	values := map[string]any{"nested": map[string]any{"k": "v"}}
	result, err := StaticLoader(values).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	result["nested"].(map[string]any)["k"] = "changed"
	if values["nested"].(map[string]any)["k"] != "v" {
		t.Error("static loader should hand out copies")
	}
}
