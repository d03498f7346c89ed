package facade

import (
	"context"

	"github.com/shuldan/voyage/pkg/container"
)

// Facade gives static access to whatever the active container has bound to
// the canonical name of T. Embed it in an interface's companion type or use
// it as a zero value:
//
//	var Mailer facade.Facade[mail.Sender]
//	sender, err := Mailer.Resolve(ctx)
type Facade[T any] struct{}

// Name is the container name looked up for T.
func (Facade[T]) Name() string {
	return container.NameOf[T]()
}

// Resolve looks up T in the active container. A type without a usable name
// or without a binding yields the zero T and no error.
func (f Facade[T]) Resolve(ctx context.Context) (T, error) {
	var zero T
	name := f.Name()
	if name == "" || name == "null" {
		return zero, nil
	}
	return container.ResolveAs[T](ctx, container.Current(ctx), name)
}

// Of is shorthand for Facade[T]{}.Resolve(ctx).
func Of[T any](ctx context.Context) (T, error) {
	return Facade[T]{}.Resolve(ctx)
}

// MustOf is like Of but panics on a construction error. Intended for
// program setup where a failure is unrecoverable.
func MustOf[T any](ctx context.Context) T {
	v, err := Of[T](ctx)
	if err != nil {
		panic(err)
	}
	return v
}
