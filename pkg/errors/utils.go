package errors

import (
	"errors"
)

// CodeOf returns the code of the outermost coded error in err's chain, or
// "" when there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
