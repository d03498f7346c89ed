package config

import "github.com/shuldan/voyage/pkg/errors"

var newConfigCode = errors.WithPrefix("CONFIG")

var (
	ErrParseYAML      = newConfigCode().New("failed to parse YAML file {{.path}}: {{.reason}}")
	ErrParseJSON      = newConfigCode().New("failed to parse JSON file {{.path}}: {{.reason}}")
	ErrParseTOML      = newConfigCode().New("failed to parse TOML file {{.path}}: {{.reason}}")
	ErrReadFile       = newConfigCode().New("failed to read config file {{.path}}")
	ErrUnsafePath     = newConfigCode().New("config path {{.path}} escapes the config root")
	ErrDefaultFailed  = newConfigCode().New("default config for {{.path}} could not be produced")
	ErrEnvFile        = newConfigCode().New("failed to load env file {{.path}}")
	ErrTemplateRender = newConfigCode().New("failed to render config template {{.value}}")
)
