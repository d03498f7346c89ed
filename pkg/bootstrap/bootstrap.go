package bootstrap

import (
	"os"

	"github.com/shuldan/voyage/pkg/app"
	"github.com/shuldan/voyage/pkg/console"
	"github.com/shuldan/voyage/pkg/contracts"
	"github.com/shuldan/voyage/pkg/logger"
)

// Bootstrap assembles an application from the stock plugins.
type Bootstrap struct {
	info     app.AppInfo
	options  []app.Option
	plugins  []contracts.Plugin
	commands []console.Command
	console  []console.Option
}

func New(appName string, appVersion string, envPrefix string) *Bootstrap {
	appEnvironment := os.Getenv("APP_ENVIRONMENT")
	if appEnvironment == "" {
		appEnvironment = "development"
	}

	info := app.AppInfo{
		AppName:     appName,
		Version:     appVersion,
		Environment: appEnvironment,
	}

	return &Bootstrap{
		info: info,
		options: []app.Option{
			app.WithInfo(info),
			app.WithEnvPrefix(envPrefix),
		},
	}
}

func (b *Bootstrap) WithOptions(opts ...app.Option) *Bootstrap {
	b.options = append(b.options, opts...)
	return b
}

// WithLogger replaces the default "logger" binding with one configured
// from the logger config section.
func (b *Bootstrap) WithLogger(opts ...logger.Option) *Bootstrap {
	b.plugins = append(b.plugins, logger.NewPlugin(opts...))
	return b
}

func (b *Bootstrap) WithPlugins(plugins ...contracts.Plugin) *Bootstrap {
	b.plugins = append(b.plugins, plugins...)
	return b
}

func (b *Bootstrap) WithCommands(commands ...console.Command) *Bootstrap {
	b.commands = append(b.commands, commands...)
	return b
}

func (b *Bootstrap) WithConsoleOptions(opts ...console.Option) *Bootstrap {
	b.console = append(b.console, opts...)
	return b
}

func (b *Bootstrap) Info() app.AppInfo {
	return b.info
}

// CreateApp builds an application driven by the console kernel.
func (b *Bootstrap) CreateApp() (*app.Application, error) {
	a := app.New(console.Factory(b.console...), b.options...)

	plugins := b.plugins
	if len(b.commands) > 0 {
		plugins = append(plugins, console.Commands(b.commands...))
	}

	if err := a.Register(plugins...); err != nil {
		return nil, err
	}
	return a, nil
}
