package events

import "github.com/shuldan/voyage/pkg/container"

// Phase is implemented by every lifecycle event. Subscribing to
// (*Phase)(nil) receives all of them.
type Phase interface {
	Name() string
	Scope() *container.Container
}

// Lifecycle events are published by the application before the plugin
// hooks of the matching phase run. Container is the one the hooks receive.
type (
	Booting struct {
		Container *container.Container
	}

	Launching struct {
		Container *container.Container
	}

	Launched struct {
		Container *container.Container
	}

	Processing struct {
		Container *container.Container
	}

	Processed struct {
		Container *container.Container
	}
)

func (Booting) Name() string    { return "app:booting" }
func (Launching) Name() string  { return "app:launching" }
func (Launched) Name() string   { return "app:launched" }
func (Processing) Name() string { return "app:processing" }
func (Processed) Name() string  { return "app:processed" }

func (e Booting) Scope() *container.Container    { return e.Container }
func (e Launching) Scope() *container.Container  { return e.Container }
func (e Launched) Scope() *container.Container   { return e.Container }
func (e Processing) Scope() *container.Container { return e.Container }
func (e Processed) Scope() *container.Container  { return e.Container }
