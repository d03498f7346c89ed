package container

import (
	"context"
	"sync/atomic"
)

type activeKey struct{}

type resolvingKey struct{}

type resolvingFrame struct {
	container *Container
	name      string
	next      *resolvingFrame
}

var entered atomic.Pointer[Container]

// WithContainer returns a context in which c is the active container.
// Nested calls shadow the outer container for the derived context only.
func WithContainer(ctx context.Context, c *Container) context.Context {
	return context.WithValue(ctx, activeKey{}, c)
}

// Run calls fn with c active for everything reachable from fn's context.
func Run(ctx context.Context, c *Container, fn func(ctx context.Context) error) error {
	return fn(WithContainer(ctx, c))
}

// EnterWith makes c the active container for every context that has no
// container of its own, for the rest of the process. Passing nil clears it.
func EnterWith(c *Container) {
	entered.Store(c)
}

// FromContext returns the container scoped into ctx, if any.
func FromContext(ctx context.Context) (*Container, bool) {
	if ctx == nil {
		return nil, false
	}
	c, ok := ctx.Value(activeKey{}).(*Container)
	return c, ok && c != nil
}

// Current returns the active container: the one scoped into ctx, else the
// one set by EnterWith, else a new empty container. It never returns nil.
func Current(ctx context.Context) *Container {
	if c, ok := FromContext(ctx); ok {
		return c
	}
	if c := entered.Load(); c != nil {
		return c
	}
	return New()
}

// Make resolves name from the active container.
func Make(ctx context.Context, name any) (any, error) {
	return Current(ctx).Resolve(ctx, name)
}

func withResolving(ctx context.Context, c *Container, name string) context.Context {
	next, _ := ctx.Value(resolvingKey{}).(*resolvingFrame)
	return context.WithValue(ctx, resolvingKey{}, &resolvingFrame{container: c, name: name, next: next})
}

func isResolving(ctx context.Context, c *Container, name string) bool {
	frame, _ := ctx.Value(resolvingKey{}).(*resolvingFrame)
	for ; frame != nil; frame = frame.next {
		if frame.container == c && frame.name == name {
			return true
		}
	}
	return false
}
