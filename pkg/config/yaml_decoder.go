package config

import "github.com/goccy/go-yaml"

func decodeYAML(path string, data []byte) (any, error) {
	var config any
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.UseJSONUnmarshaler()); err != nil {
		return nil, ErrParseYAML.
			WithDetail("path", path).
			WithDetail("reason", err.Error()).
			WithCause(err)
	}
	return normalize(config), nil
}

// normalize turns the map[any]any and integer variants a YAML decoder may
// produce into the shapes the accessor walks.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalize(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[toKey(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalize(item)
		}
		return val
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case uint64:
		if val <= uint64(^uint(0)>>1) {
			return int(val)
		}
		return val
	case int64:
		return int(val)
	default:
		return v
	}
}
