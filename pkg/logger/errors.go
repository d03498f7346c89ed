package logger

import "github.com/shuldan/voyage/pkg/errors"

var newLoggerCode = errors.WithPrefix("LOGGER")

var (
	ErrInvalidLevel  = newLoggerCode().New("unknown log level {{.level}}")
	ErrInvalidFormat = newLoggerCode().New("unknown log format {{.format}}")
	ErrInvalidOutput = newLoggerCode().New("unknown log output {{.output}}")
)
