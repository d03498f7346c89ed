package contracts

import (
	"context"

	"github.com/shuldan/voyage/pkg/container"
)

const (
	AppName    = "app"
	ConfigName = "config"
	EventsName = "events"
	LoggerName = "logger"
	KernelName = "kernel"
)

// ConfigProducer lazily computes a default config section during boot.
type ConfigProducer func(ctx context.Context) (any, error)

// Plugin is a unit of extensibility registered into an application. Every
// hook receives the container active for its phase.
type Plugin interface {
	Name() string

	// ConfigPaths names the config sections the plugin reads.
	ConfigPaths() []string
	// DefaultConfigs maps section names to a literal value or a
	// ConfigProducer.
	DefaultConfigs() map[string]any

	Boot(ctx context.Context, c *container.Container) error
	PreLaunch(ctx context.Context, c *container.Container) error
	PostLaunch(ctx context.Context, c *container.Container) error
	PreAction(ctx context.Context, c *container.Container) error
	PostAction(ctx context.Context, c *container.Container) error
}

// Kernel drives the application once it has launched, e.g. by serving
// requests or running a command.
type Kernel interface {
	Launch(ctx context.Context) error
}

// Lifecycle is the part of an application a kernel needs to wrap its units
// of work in the per-action phases.
type Lifecycle interface {
	Container() *container.Container
	Processing(ctx context.Context) error
	Processed(ctx context.Context) error
}
