package app

import (
	"github.com/shuldan/voyage/pkg/contracts"
)

const defaultConfigRoot = "config"

type Option func(*Application)

// WithConfig merges values over every other config layer.
func WithConfig(values map[string]any) Option {
	return func(a *Application) {
		a.staticConfig = values
	}
}

// WithConfigRoot sets the directory config files are read from.
func WithConfigRoot(root string) Option {
	return func(a *Application) {
		if root != "" {
			a.configRoot = root
		}
	}
}

func WithoutFileConfig() Option {
	return func(a *Application) {
		a.disableFiles = true
	}
}

func WithoutEnvFiles() Option {
	return func(a *Application) {
		a.disableEnvFiles = true
	}
}

// WithEnvFiles replaces the default .env file list.
func WithEnvFiles(files ...string) Option {
	return func(a *Application) {
		a.envFiles = files
	}
}

// WithEnvPrefix enables the environment config layer for variables with
// this prefix.
func WithEnvPrefix(prefix string) Option {
	return func(a *Application) {
		a.envPrefix = prefix
	}
}

func WithLogger(l contracts.Logger) Option {
	return func(a *Application) {
		if l != nil {
			a.logger = l
		}
	}
}

func WithBus(b contracts.Bus) Option {
	return func(a *Application) {
		if b != nil {
			a.bus = b
		}
	}
}

func WithInfo(info AppInfo) Option {
	return func(a *Application) {
		a.info = info
	}
}
