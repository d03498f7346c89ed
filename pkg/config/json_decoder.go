package config

import "encoding/json"

func decodeJSON(path string, data []byte) (any, error) {
	var config any
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, ErrParseJSON.
			WithDetail("path", path).
			WithDetail("reason", err.Error()).
			WithCause(err)
	}
	return config, nil
}
