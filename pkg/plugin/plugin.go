package plugin

import (
	"context"

	"github.com/shuldan/voyage/pkg/container"
	"github.com/shuldan/voyage/pkg/contracts"
)

// Hook is the signature shared by every lifecycle hook.
type Hook func(ctx context.Context, c *container.Container) error

// Base implements contracts.Plugin with no-op hooks. Embed it and override
// only the hooks a plugin needs.
type Base struct{}

func (Base) Name() string {
	return "plugin"
}

func (Base) ConfigPaths() []string {
	return nil
}

func (Base) DefaultConfigs() map[string]any {
	return nil
}

func (Base) Boot(context.Context, *container.Container) error {
	return nil
}

func (Base) PreLaunch(context.Context, *container.Container) error {
	return nil
}

func (Base) PostLaunch(context.Context, *container.Container) error {
	return nil
}

func (Base) PreAction(context.Context, *container.Container) error {
	return nil
}

func (Base) PostAction(context.Context, *container.Container) error {
	return nil
}

var _ contracts.Plugin = Base{}
