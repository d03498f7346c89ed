package container

import (
	"context"
	"reflect"
)

// Kind tells the container how a Definition is built when it is resolved
// directly.
type Kind int

const (
	// KindType definitions are constructed: they produce a new value of a
	// declared type.
	KindType Kind = iota
	// KindFunc definitions are invoked: they are plain functions whose
	// result is returned as-is.
	KindFunc
)

func (k Kind) String() string {
	if k == KindFunc {
		return "func"
	}
	return "type"
}

// BuildFunc receives the resolved dependencies of a Definition in the order
// they were declared. Unresolvable dependencies are passed as nil.
type BuildFunc func(ctx context.Context, args []any) (any, error)

// Definition is the explicit metadata describing something the container
// can build: its kind, the type it produces, an optional alias and the
// names of its dependencies.
type Definition struct {
	kind     Kind
	typ      reflect.Type
	alias    string
	deps     []string
	declared bool
	build    BuildFunc
}

// Type describes a constructible type. A nil constructor builds new(T) for
// struct types and the zero T otherwise.
func Type[T any](ctor func(ctx context.Context, args []any) (T, error)) *Definition {
	typ := reflect.TypeFor[T]()
	if ctor == nil {
		ctor = func(context.Context, []any) (T, error) {
			var zero T
			if typ.Kind() == reflect.Pointer && typ.Elem().Kind() == reflect.Struct {
				return reflect.New(typ.Elem()).Interface().(T), nil
			}
			return zero, nil
		}
	}
	return &Definition{
		kind: KindType,
		typ:  typ,
		build: func(ctx context.Context, args []any) (any, error) {
			return ctor(ctx, args)
		},
	}
}

// Func describes an invoke-style entry. It has no type name, so it is only
// addressable by name once given an alias with As.
func Func(fn BuildFunc) *Definition {
	return &Definition{kind: KindFunc, build: fn}
}

// Requires declares the dependency names resolved for this definition. A
// definition with declared dependencies can be resolved directly even when
// it was never registered.
func (d *Definition) Requires(names ...string) *Definition {
	d.deps = append([]string(nil), names...)
	d.declared = true
	return d
}

// As gives the definition an explicit container name.
func (d *Definition) As(alias string) *Definition {
	d.alias = alias
	return d
}

func (d *Definition) Kind() Kind {
	return d.kind
}

func (d *Definition) ContainerName() string {
	if d == nil {
		return ""
	}
	if d.alias != "" {
		return d.alias
	}
	if d.typ == nil {
		return ""
	}
	if name := typeName(d.typ); name != nullName {
		return name
	}
	return ""
}

func (d *Definition) Dependencies() []string {
	if d == nil {
		return nil
	}
	return d.deps
}

// HasDependencies reports whether Requires was called, even with no names.
func (d *Definition) HasDependencies() bool {
	return d != nil && d.declared
}

func (d *Definition) Build(ctx context.Context, args []any) (any, error) {
	if d == nil || d.build == nil {
		return nil, ErrMissingDefinition.WithDetail("name", nullName)
	}
	return d.build(ctx, args)
}

// Arg returns the i-th resolved argument as T, or the zero T when it is
// missing or of another type.
func Arg[T any](args []any, i int) T {
	var zero T
	if i < 0 || i >= len(args) {
		return zero
	}
	v, ok := args[i].(T)
	if !ok {
		return zero
	}
	return v
}
