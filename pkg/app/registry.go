package app

import (
	"reflect"
	"sync"

	"github.com/shuldan/voyage/pkg/contracts"
)

type registry struct {
	plugins []contracts.Plugin
	mu      sync.RWMutex
}

func newRegistry() *registry {
	return &registry{
		plugins: make([]contracts.Plugin, 0),
	}
}

// Register appends plugins in order. Nothing is added if any of them is
// nil.
func (r *registry) Register(plugins ...contracts.Plugin) error {
	for i, p := range plugins {
		if isNilPlugin(p) {
			return ErrInvalidPlugin.WithDetail("index", i)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins = append(r.plugins, plugins...)
	return nil
}

func (r *registry) All() []contracts.Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]contracts.Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

func isNilPlugin(p contracts.Plugin) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}
