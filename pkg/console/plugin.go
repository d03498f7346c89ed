package console

import (
	"context"

	"github.com/shuldan/voyage/pkg/container"
	"github.com/shuldan/voyage/pkg/contracts"
	"github.com/shuldan/voyage/pkg/plugin"
)

type registrar interface {
	Register(commands ...Command) error
}

type commandsPlugin struct {
	plugin.Base
	commands []Command
}

// Commands registers commands into the application's kernel before it
// launches. The kernel must be a console Kernel or embed one.
func Commands(commands ...Command) contracts.Plugin {
	return &commandsPlugin{commands: commands}
}

func (p *commandsPlugin) Name() string {
	return "ConsolePlugin"
}

func (p *commandsPlugin) PreLaunch(ctx context.Context, c *container.Container) error {
	kernel, err := container.ResolveAs[registrar](ctx, c, contracts.KernelName)
	if err != nil {
		return err
	}
	if kernel == nil {
		return ErrNoConsoleKernel
	}
	return kernel.Register(p.commands...)
}
