package config

import "context"

type Loader interface {
	Load(ctx context.Context) (map[string]any, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (map[string]any, error)

func (f LoaderFunc) Load(ctx context.Context) (map[string]any, error) {
	return f(ctx)
}

// StaticLoader always yields a copy of values.
func StaticLoader(values map[string]any) Loader {
	return LoaderFunc(func(context.Context) (map[string]any, error) {
		return Merge(nil, values), nil
	})
}
