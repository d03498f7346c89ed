package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

func decodeTOML(path string, data []byte) (any, error) {
	var config map[string]any
	if _, err := toml.Decode(string(data), &config); err != nil {
		return nil, ErrParseTOML.
			WithDetail("path", path).
			WithDetail("reason", err.Error()).
			WithCause(err)
	}
	return normalize(config), nil
}

func toKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
