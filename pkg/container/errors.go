package container

import "github.com/shuldan/voyage/pkg/errors"

var newContainerCode = errors.WithPrefix("CONTAINER")

var (
	ErrCircularDependency = newContainerCode().New("circular dependency detected while constructing {{.name}}")
	ErrTypeMismatch       = newContainerCode().New("{{.name}} resolved to {{.actual}}, expected {{.expected}}")
	ErrNotConstructible   = newContainerCode().New("{{.name}} is not a constructible type")
	ErrMissingDefinition  = newContainerCode().New("no definition given for {{.name}}")
)
