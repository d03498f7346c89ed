package logger

import "github.com/shuldan/voyage/pkg/contracts"

// ConfigSection is the config section read by OptionsFromConfig.
const ConfigSection = "logger"

// DefaultConfig is contributed by the logger plugin when no file or env
// layer overrides it.
func DefaultConfig() map[string]any {
	return map[string]any{
		"level":          "info",
		"format":         "text",
		"output":         "stderr",
		"include_caller": false,
		"enable_colors":  true,
	}
}

// OptionsFromConfig maps a logger config section onto options. Keys that
// are absent keep the logger defaults.
func OptionsFromConfig(cfg contracts.Config) ([]Option, error) {
	if cfg == nil {
		return nil, nil
	}

	var opts []Option
	if cfg.Has("level") {
		level, err := ParseLevel(cfg.GetString("level"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithLevel(level))
	}
	if cfg.Has("format") {
		opts = append(opts, WithFormat(cfg.GetString("format")))
	}
	if cfg.Has("output") {
		opts = append(opts, WithOutput(cfg.GetString("output")))
	}
	if cfg.GetBool("include_caller", false) {
		opts = append(opts, WithSource())
	}
	if cfg.GetBool("enable_colors", false) {
		opts = append(opts, WithColor())
	}

	probe := &settings{}
	for _, opt := range opts {
		opt(probe)
	}
	if probe.err != nil {
		return nil, probe.err
	}
	return opts, nil
}
