package app

import "github.com/shuldan/voyage/pkg/errors"

var newAppCode = errors.WithPrefix("APP")

var (
	ErrInvalidPlugin   = newAppCode().New("can only register a non-nil plugin (position {{.index}})")
	ErrAlreadyBooted   = newAppCode().New("application has already booted")
	ErrAlreadyLaunched = newAppCode().New("application has already launched")
)
