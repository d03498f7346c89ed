package app

import (
	"context"

	"github.com/shuldan/voyage/pkg/container"
	"github.com/shuldan/voyage/pkg/contracts"
)

// Kernel is a base for application kernels. Embed it and override Launch
// to do real work; wrap each unit of work in Action.
type Kernel struct {
	lifecycle contracts.Lifecycle
}

var _ contracts.Kernel = (*Kernel)(nil)

func NewKernel(lifecycle contracts.Lifecycle) *Kernel {
	return &Kernel{lifecycle: lifecycle}
}

func (k *Kernel) Lifecycle() contracts.Lifecycle {
	return k.lifecycle
}

func (k *Kernel) Launch(context.Context) error {
	return nil
}

func (k *Kernel) StartAction(ctx context.Context) error {
	return k.lifecycle.Processing(ctx)
}

func (k *Kernel) EndAction(ctx context.Context) error {
	return k.lifecycle.Processed(ctx)
}

// Action runs fn in a fork of the current container, between the pre and
// post action phases. A failing phase or fn stops the sequence and its
// error is returned.
func (k *Kernel) Action(ctx context.Context, fn func(ctx context.Context) error) error {
	scope := container.Current(ctx).Fork()

	return container.Run(ctx, scope, func(ctx context.Context) error {
		if err := k.StartAction(ctx); err != nil {
			return err
		}
		if err := fn(ctx); err != nil {
			return err
		}
		return k.EndAction(ctx)
	})
}
