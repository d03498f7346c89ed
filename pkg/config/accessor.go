package config

import (
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"

	"github.com/shuldan/voyage/pkg/contracts"
)

// Accessor reads a loaded config snapshot by dotted path. When replaceNull
// is set, explicit nulls are treated like missing values and yield the
// caller's fallback.
type Accessor struct {
	values      map[string]any
	replaceNull bool
}

var _ contracts.Config = (*Accessor)(nil)

func NewAccessor(values map[string]any, replaceNull bool) *Accessor {
	if values == nil {
		values = make(map[string]any)
	}
	return &Accessor{values: values, replaceNull: replaceNull}
}

// Has reports whether path exists, even when it holds nil.
func (c *Accessor) Has(path string) bool {
	_, ok := c.find(path)
	return ok
}

// Get returns the value at path. Missing paths, and nulls when null
// replacement is on, return the first fallback or nil. An empty path
// returns the whole snapshot.
func (c *Accessor) Get(path string, fallback ...any) any {
	v, ok := c.value(path)
	if !ok {
		return getFirst(fallback)
	}
	return v
}

func (c *Accessor) GetString(path string, defaultVal ...string) string {
	v, ok := c.value(path)
	if !ok {
		return getFirst(defaultVal)
	}
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func (c *Accessor) GetInt(path string, defaultVal ...int) int {
	return typed(c, path, defaultVal, func(v any) (int, bool) {
		n, ok := asInt64(v)
		if !ok || n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	})
}

func (c *Accessor) GetInt64(path string, defaultVal ...int64) int64 {
	return typed(c, path, defaultVal, asInt64)
}

func (c *Accessor) GetFloat64(path string, defaultVal ...float64) float64 {
	return typed(c, path, defaultVal, asFloat64)
}

func (c *Accessor) GetBool(path string, defaultVal ...bool) bool {
	return typed(c, path, defaultVal, asBool)
}

// typed converts the value at path, falling back to the first default when
// the path is missing or the value does not convert.
func typed[T any](c *Accessor, path string, defaults []T, convert func(any) (T, bool)) T {
	if v, ok := c.value(path); ok {
		if out, ok := convert(v); ok {
			return out
		}
	}
	return getFirst(defaults)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float64:
		return int64(n), n >= math.MinInt64 && n <= math.MaxInt64
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(b) {
		case "true", "1", "on", "yes", "y":
			return true, true
		case "false", "0", "off", "no", "n":
			return false, true
		}
	case float64:
		return b != 0, true
	case int:
		return b != 0, true
	case int64:
		return b != 0, true
	case uint64:
		return b != 0, true
	}
	return false, false
}

func (c *Accessor) GetStringSlice(path string, separator ...string) []string {
	v, ok := c.find(path)
	if !ok || v == nil {
		return nil
	}

	sep := ","
	if len(separator) > 0 {
		sep = separator[0]
	}

	switch val := v.(type) {
	case []string:
		return val
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			result[i] = fmt.Sprintf("%v", item)
		}
		return result
	case string:
		parts := strings.Split(val, sep)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}

func (c *Accessor) GetSub(path string) (contracts.Config, bool) {
	sub, ok := c.find(path)
	if !ok {
		return nil, false
	}
	if subMap, ok := sub.(map[string]any); ok {
		return NewAccessor(subMap, c.replaceNull), true
	}
	return nil, false
}

// All returns a shallow copy of the snapshot.
func (c *Accessor) All() map[string]any {
	return maps.Clone(c.values)
}

func (c *Accessor) value(path string) (any, bool) {
	v, ok := c.find(path)
	if !ok || (v == nil && c.replaceNull) {
		return nil, false
	}
	return v, true
}

// find walks path through nested maps and slices. Blank segments refer to
// the current value, so "" is the whole snapshot and "a..b" equals "a.b".
func (c *Accessor) find(path string) (any, bool) {
	var current any = c.values

	for _, k := range strings.Split(path, ".") {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if current == nil {
			return nil, false
		}

		switch cur := current.(type) {
		case map[string]any:
			next, exists := cur[k]
			if !exists {
				return nil, false
			}
			current = next
		case map[any]any:
			next, exists := cur[k]
			if !exists {
				return nil, false
			}
			current = next
		case []any:
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 || i >= len(cur) {
				return nil, false
			}
			current = cur[i]
		default:
			return nil, false
		}
	}

	return current, true
}

func getFirst[T any](values []T) T {
	var zero T
	if len(values) > 0 {
		return values[0]
	}
	return zero
}
