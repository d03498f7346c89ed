package plugin

import (
	"maps"

	"github.com/shuldan/voyage/pkg/contracts"
)

type configPlugin struct {
	Base
	name     string
	defaults any
}

// RegisterConfig contributes the config section name without any hooks.
// defaults is the section's default value: a literal, a map of keys, or a
// contracts.ConfigProducer. Maps are copied on registration.
func RegisterConfig(name string, defaults any) contracts.Plugin {
	if m, ok := defaults.(map[string]any); ok {
		defaults = maps.Clone(m)
	}
	return &configPlugin{name: name, defaults: defaults}
}

func (p *configPlugin) Name() string {
	return "ConfigPlugin<" + p.name + ">"
}

func (p *configPlugin) ConfigPaths() []string {
	return []string{p.name}
}

func (p *configPlugin) DefaultConfigs() map[string]any {
	return map[string]any{p.name: p.defaults}
}
