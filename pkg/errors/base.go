package errors

var newCoreCode = WithPrefix("CORE")

var (
	ErrInvalidArgument = newCoreCode().New("invalid argument: {{.reason}}")
	ErrNotFound        = newCoreCode().New("{{.name}} not found")
)
