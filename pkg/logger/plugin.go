package logger

import (
	"context"

	"github.com/shuldan/voyage/pkg/container"
	"github.com/shuldan/voyage/pkg/contracts"
	"github.com/shuldan/voyage/pkg/plugin"
)

type loggerPlugin struct {
	plugin.Base
	opts []Option
}

// NewPlugin binds "logger" as a singleton built from the "logger" config
// section. opts are applied after the config and win over it.
func NewPlugin(opts ...Option) contracts.Plugin {
	return &loggerPlugin{opts: opts}
}

func (p *loggerPlugin) Name() string {
	return "LoggerPlugin"
}

func (p *loggerPlugin) ConfigPaths() []string {
	return []string{ConfigSection}
}

func (p *loggerPlugin) DefaultConfigs() map[string]any {
	return map[string]any{ConfigSection: DefaultConfig()}
}

func (p *loggerPlugin) Boot(_ context.Context, c *container.Container) error {
	def := container.Type(func(_ context.Context, args []any) (contracts.Logger, error) {
		var section contracts.Config
		if cfg := container.Arg[contracts.Config](args, 0); cfg != nil {
			section, _ = cfg.GetSub(ConfigSection)
		}
		opts, err := OptionsFromConfig(section)
		if err != nil {
			return nil, err
		}
		return NewLogger(append(opts, p.opts...)...)
	}).Requires(contracts.ConfigName)

	c.When(contracts.LoggerName).Singleton(def)
	return nil
}
