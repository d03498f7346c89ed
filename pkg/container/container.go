package container

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Container maps names to construction methods. A container created with
// Fork delegates unknown names to its parent but keeps its own registry and
// its own singleton cache.
type Container struct {
	id      string
	parent  *Container
	mu      sync.RWMutex
	mapping map[string]ConstructionMethod
	cache   map[string]any
	flight  singleflight.Group
}

func New() *Container {
	return newContainer(nil)
}

func newContainer(parent *Container) *Container {
	return &Container{
		id:      uuid.NewString(),
		parent:  parent,
		mapping: make(map[string]ConstructionMethod),
		cache:   make(map[string]any),
	}
}

func (c *Container) ID() string {
	return c.id
}

func (c *Container) Parent() *Container {
	return c.parent
}

// Fork returns a child container. Nothing is copied.
func (c *Container) Fork() *Container {
	return newContainer(c)
}

// Register stores method under the canonical form of name, replacing any
// previous registration in this container.
func (c *Container) Register(name any, method ConstructionMethod) {
	if method == nil {
		method = NewValueMethod(nil)
	}
	key := ResolveName(name)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mapping[key] = method
}

func (c *Container) When(name any) *DependencyBuilder {
	return &DependencyBuilder{name: name, container: c}
}

// Has reports whether this container, ignoring its parents, has a mapping.
func (c *Container) Has(name any) bool {
	_, ok := c.lookup(ResolveName(name))
	return ok
}

// CanResolve reports whether this container or one of its ancestors has a
// mapping for name.
func (c *Container) CanResolve(name any) bool {
	key := ResolveName(name)
	for cur := c; cur != nil; cur = cur.parent {
		if _, ok := cur.lookup(key); ok {
			return true
		}
	}
	return false
}

// Resolve builds the value for name. Own registrations win; otherwise a
// Definition with declared dependencies is built in place; otherwise the
// closest ancestor registration is used. Methods always construct in c, so
// singletons registered on a parent are cached per resolving container, and
// a parent's Factory receives c while a parent's Instance or Singleton
// resolves its dependencies against c. Overrides made on a fork therefore
// reach registrations inherited from its ancestors.
// A name nobody can build resolves to nil without error. Errors raised
// while constructing are returned unchanged.
func (c *Container) Resolve(ctx context.Context, name any) (any, error) {
	key := ResolveName(name)

	if method, ok := c.lookup(key); ok {
		return c.construct(ctx, key, method)
	}

	if def, ok := name.(*Definition); ok && def.HasDependencies() {
		args, err := c.ResolveDependenciesOf(ctx, def)
		if err != nil {
			return nil, err
		}
		return def.Build(ctx, args)
	}

	for cur := c.parent; cur != nil; cur = cur.parent {
		if method, ok := cur.lookup(key); ok {
			return c.construct(ctx, key, method)
		}
	}
	return nil, nil
}

// ResolveAll resolves every name concurrently. Results keep the order of
// names; the first construction error is returned.
func (c *Container) ResolveAll(ctx context.Context, names ...any) ([]any, error) {
	results := make([]any, len(names))

	switch len(names) {
	case 0:
		return results, nil
	case 1:
		v, err := c.Resolve(ctx, names[0])
		if err != nil {
			return nil, err
		}
		results[0] = v
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			v, err := c.Resolve(gctx, name)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ResolveDependenciesOf resolves the declared dependencies of item, which
// is usually a *Definition. Items without declarations have none.
func (c *Container) ResolveDependenciesOf(ctx context.Context, item any) ([]any, error) {
	dep, ok := item.(Dependent)
	if !ok {
		return []any{}, nil
	}
	deps := dep.Dependencies()
	names := make([]any, len(deps))
	for i, d := range deps {
		names[i] = d
	}
	return c.ResolveAll(ctx, names...)
}

// IfExists resolves name and passes it to fn only when this container owns
// a mapping for it. It reports whether fn was called.
func (c *Container) IfExists(ctx context.Context, name any, fn func(value any) error) (bool, error) {
	if !c.Has(name) {
		return false, nil
	}
	v, err := c.Resolve(ctx, name)
	if err != nil {
		return false, err
	}
	return true, fn(v)
}

func (c *Container) String() string {
	return fmt.Sprintf("Container(%s)", c.id)
}

func (c *Container) construct(ctx context.Context, key string, method ConstructionMethod) (any, error) {
	if isResolving(ctx, c, key) {
		return nil, ErrCircularDependency.WithDetail("name", key)
	}
	return method.Construct(withResolving(ctx, c, key), c)
}

func (c *Container) lookup(key string) (ConstructionMethod, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	method, ok := c.mapping[key]
	return method, ok
}

func (c *Container) cached(key string, build func() (any, error)) (any, error) {
	c.mu.RLock()
	v, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		c.mu.RLock()
		v, ok := c.cache[key]
		c.mu.RUnlock()
		if ok {
			return v, nil
		}

		v, err := build()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[key] = v
		c.mu.Unlock()
		return v, nil
	})
	return v, err
}

// ResolveAs resolves name and asserts the result to T. A missing value
// yields the zero T without error.
func ResolveAs[T any](ctx context.Context, c *Container, name any) (T, error) {
	var zero T
	v, err := c.Resolve(ctx, name)
	if err != nil || v == nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, ErrTypeMismatch.
			WithDetail("name", ResolveName(name)).
			WithDetail("actual", fmt.Sprintf("%T", v)).
			WithDetail("expected", reflect.TypeFor[T]().String())
	}
	return out, nil
}
