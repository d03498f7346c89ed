package container

// DependencyBuilder registers a single name into a container. Nothing is
// registered until one of its methods is called.
type DependencyBuilder struct {
	name      any
	container *Container
}

// Value always resolves to v.
func (b *DependencyBuilder) Value(v any) *Container {
	b.container.Register(b.name, NewValueMethod(v))
	return b.container
}

// Instance builds a new value from def on every resolution.
func (b *DependencyBuilder) Instance(def *Definition) *Container {
	b.container.Register(b.name, NewInstanceMethod(b.name, def))
	return b.container
}

// Singleton builds def once per container that resolves it.
func (b *DependencyBuilder) Singleton(def *Definition) *Container {
	b.container.Register(b.name, NewSingletonMethod(b.name, def))
	return b.container
}

// Result calls fn with the resolving container on every resolution.
func (b *DependencyBuilder) Result(fn FactoryFunc) *Container {
	b.container.Register(b.name, NewFactoryMethod(fn))
	return b.container
}

// ResultOf calls def on every resolution, passing its declared dependencies
// or, when it declares none, the resolving container.
func (b *DependencyBuilder) ResultOf(def *Definition) *Container {
	b.container.Register(b.name, NewDefinitionFactoryMethod(def))
	return b.container
}
