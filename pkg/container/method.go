package container

import "context"

// ConstructionMethod describes how a registered name is turned into a value.
type ConstructionMethod interface {
	Construct(ctx context.Context, c *Container) (any, error)
}

// FactoryFunc builds a value from the container it is resolved in.
type FactoryFunc func(ctx context.Context, c *Container) (any, error)

type ValueMethod struct {
	value any
}

func NewValueMethod(value any) *ValueMethod {
	return &ValueMethod{value: value}
}

func (m *ValueMethod) Construct(context.Context, *Container) (any, error) {
	return m.value, nil
}

type InstanceMethod struct {
	name any
	def  *Definition
}

func NewInstanceMethod(name any, def *Definition) *InstanceMethod {
	return &InstanceMethod{name: name, def: def}
}

func (m *InstanceMethod) Construct(ctx context.Context, c *Container) (any, error) {
	if m.def == nil {
		return nil, ErrMissingDefinition.WithDetail("name", ResolveName(m.name))
	}
	if m.def.Kind() != KindType {
		return nil, ErrNotConstructible.WithDetail("name", ResolveName(m.name))
	}
	args, err := c.ResolveDependenciesOf(ctx, m.def)
	if err != nil {
		return nil, err
	}
	return m.def.Build(ctx, args)
}

// SingletonMethod caches its value in the container that constructs it.
// Forks have their own cache, so resolving the same name through a child
// builds a separate instance.
type SingletonMethod struct {
	name     any
	instance *InstanceMethod
}

func NewSingletonMethod(name any, def *Definition) *SingletonMethod {
	return &SingletonMethod{name: name, instance: NewInstanceMethod(name, def)}
}

func (m *SingletonMethod) Construct(ctx context.Context, c *Container) (any, error) {
	return c.cached(ResolveName(m.name), func() (any, error) {
		return m.instance.Construct(ctx, c)
	})
}

// FactoryMethod calls a function each time the name is resolved. Definitions
// with declared dependencies receive them positionally; anything else
// receives the resolving container.
type FactoryMethod struct {
	fn  FactoryFunc
	def *Definition
}

func NewFactoryMethod(fn FactoryFunc) *FactoryMethod {
	return &FactoryMethod{fn: fn}
}

func NewDefinitionFactoryMethod(def *Definition) *FactoryMethod {
	return &FactoryMethod{def: def}
}

func (m *FactoryMethod) Construct(ctx context.Context, c *Container) (any, error) {
	switch {
	case m.def != nil && m.def.HasDependencies():
		args, err := c.ResolveDependenciesOf(ctx, m.def)
		if err != nil {
			return nil, err
		}
		return m.def.Build(ctx, args)
	case m.def != nil:
		return m.def.Build(ctx, []any{c})
	case m.fn != nil:
		return m.fn(ctx, c)
	}
	return nil, nil
}
