package config

import (
	"context"

	"github.com/shuldan/voyage/pkg/contracts"
)

type defaultsLoader struct {
	plugins []contracts.Plugin
}

// NewDefaultsLoader collects the default sections of plugins in order.
// Only sections a plugin lists in ConfigPaths are taken. Producers are
// invoked; nil defaults are skipped.
func NewDefaultsLoader(plugins ...contracts.Plugin) Loader {
	return &defaultsLoader{plugins: plugins}
}

func (l *defaultsLoader) Load(ctx context.Context) (map[string]any, error) {
	config := make(map[string]any)

	for _, p := range l.plugins {
		defaults := p.DefaultConfigs()
		for _, path := range p.ConfigPaths() {
			value, err := produce(ctx, defaults[path])
			if err != nil {
				return nil, ErrDefaultFailed.WithDetail("path", path).WithCause(err)
			}
			if value == nil {
				continue
			}
			config = Merge(config, map[string]any{path: value})
		}
	}

	return config, nil
}

// Paths returns every config path declared by plugins, in order and
// without duplicates.
func Paths(plugins ...contracts.Plugin) []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, p := range plugins {
		for _, path := range p.ConfigPaths() {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			paths = append(paths, path)
		}
	}
	return paths
}

func produce(ctx context.Context, v any) (any, error) {
	switch fn := v.(type) {
	case contracts.ConfigProducer:
		return fn(ctx)
	case func(context.Context) (any, error):
		return fn(ctx)
	case func() any:
		return fn(), nil
	default:
		return v, nil
	}
}
