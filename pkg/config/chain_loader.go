package config

import "context"

type chainLoader struct {
	loaders []Loader
}

// NewChainLoader merges the output of loaders in order; later layers win.
// The first failing loader aborts the chain.
func NewChainLoader(loaders ...Loader) Loader {
	return &chainLoader{loaders: loaders}
}

func (c *chainLoader) Load(ctx context.Context) (map[string]any, error) {
	final := make(map[string]any)

	for _, loader := range c.loaders {
		if loader == nil {
			continue
		}
		config, err := loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		final = Merge(final, config)
	}

	return final, nil
}
