package container

import (
	"reflect"
	"sync"
)

const nullName = "null"

// Named is implemented by anything that carries its own container name.
type Named interface {
	ContainerName() string
}

// Dependent is implemented by anything that declares the names it needs
// resolved before it can be built.
type Dependent interface {
	Dependencies() []string
}

var aliases sync.Map

// Alias assigns the container name used for T wherever T is used as a key.
func Alias[T any](name string) {
	AliasType(reflect.TypeFor[T](), name)
}

func AliasType(t reflect.Type, name string) {
	if t == nil {
		return
	}
	if name == "" {
		aliases.Delete(t)
		return
	}
	aliases.Store(t, name)
}

// NameOf returns the canonical name of T: its alias, else its type name.
func NameOf[T any]() string {
	return typeName(reflect.TypeFor[T]())
}

// ResolveName turns a registration key into the string used for lookups.
// Strings are used as-is, Named values report their own name, types and
// other values resolve to an alias or their declared type name. Anything
// without a usable name becomes "null". ResolveName never panics.
func ResolveName(name any) (out string) {
	defer func() {
		if recover() != nil {
			out = nullName
		}
	}()

	switch n := name.(type) {
	case nil:
		return nullName
	case string:
		return n
	case Named:
		if s := n.ContainerName(); s != "" {
			return s
		}
		return nullName
	case reflect.Type:
		return typeName(n)
	}

	v := reflect.ValueOf(name)
	if v.Kind() == reflect.String {
		return v.String()
	}
	return typeName(v.Type())
}

func typeName(t reflect.Type) string {
	for t != nil {
		if alias, ok := aliases.Load(t); ok {
			return alias.(string)
		}
		if t.Kind() != reflect.Pointer {
			break
		}
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return nullName
	}
	return t.Name()
}
